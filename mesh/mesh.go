// SPDX-License-Identifier: Unlicense OR MIT

/*
Package mesh holds the indexed triangle geometry drawn by the renderer.

Vertices are in normalized device coordinates: x and y in [-1, 1]
with the origin at the center of the window and y pointing up.
*/
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// A Mesh is a list of vertex positions and a list of triangles
// indexing into it, three indices per triangle.
type Mesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
}

const sqrt3 = 1.73205080756887729352744634150587236694280525381038062805580

// The outer triangle is equilateral with unit sides, centered on
// its centroid. The inner vertices are the midpoints of its edges.
var sierpinskiVertices = [...]mgl32.Vec3{
	{-0.5, -0.5 * sqrt3 / 3, 0},    // lower left
	{0.5, -0.5 * sqrt3 / 3, 0},     // lower right
	{0.0, 0.5 * sqrt3 * 2 / 3, 0},  // apex
	{-0.5 / 2, 0.5 * sqrt3 / 6, 0}, // inner left
	{0.5 / 2, 0.5 * sqrt3 / 6, 0},  // inner right
	{0.0, -0.5 * sqrt3 / 3, 0},     // inner bottom
}

var sierpinskiIndices = [...]uint32{
	0, 3, 5, // lower left
	3, 2, 4, // upper
	5, 4, 1, // lower right
}

// Sierpinski returns the first subdivision of the Sierpinski triangle:
// the outer triangle minus its central medial triangle. Each call
// returns a fresh copy.
func Sierpinski() Mesh {
	return Mesh{
		Vertices: append([]mgl32.Vec3(nil), sierpinskiVertices[:]...),
		Indices:  append([]uint32(nil), sierpinskiIndices[:]...),
	}
}

// Validate reports whether m describes whole triangles whose indices
// all refer to existing vertices.
func (m Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return errors.New("mesh: no vertices")
	}
	if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh: %d indices is not a whole number of triangles", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("mesh: index %d at position %d out of range [0, %d)", idx, i, len(m.Vertices))
		}
	}
	return nil
}

// Count returns the number of indices to draw.
func (m Mesh) Count() int {
	return len(m.Indices)
}

// Triangles resolves the index list into vertex triples. The mesh
// must be valid.
func (m Mesh) Triangles() [][3]mgl32.Vec3 {
	tris := make([][3]mgl32.Vec3, 0, len(m.Indices)/3)
	for i := 0; i+3 <= len(m.Indices); i += 3 {
		tris = append(tris, [3]mgl32.Vec3{
			m.Vertices[m.Indices[i]],
			m.Vertices[m.Indices[i+1]],
			m.Vertices[m.Indices[i+2]],
		})
	}
	return tris
}

// Floats returns the vertex positions tightly packed, three float32
// per vertex.
func (m Mesh) Floats() []float32 {
	fs := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		fs = append(fs, v[0], v[1], v[2])
	}
	return fs
}

// Area returns the signed area of the triangle in the xy plane,
// positive for counter-clockwise winding.
func Area(t [3]mgl32.Vec3) float32 {
	ab := t[1].Sub(t[0])
	ac := t[2].Sub(t[0])
	return ab.Cross(ac).Z() / 2
}
