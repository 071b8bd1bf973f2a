// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"fmt"

	"github.com/gljourney/sierpinski/internal/gl"
	"github.com/gljourney/sierpinski/mesh"
	"github.com/gljourney/sierpinski/shader"
)

// Mesh is an indexed triangle list resident on the GPU. The vertex
// array records the position attribute layout and the index buffer
// binding.
type Mesh struct {
	funcs gl.Functions
	vao   gl.VertexArray
	vbo   gl.Buffer
	ebo   gl.Buffer
	count int
}

const positionAttrib = gl.Attrib(shader.PositionAttrib)

// NewMesh uploads m and records its layout: attribute 0 reads three
// tightly packed floats per vertex.
func (d *Device) NewMesh(m mesh.Mesh) (*Mesh, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	f := d.funcs
	// Clear stale errors so the check below only sees our own.
	drainErrors(f)
	// Some drivers require a bound vertex array before buffers are
	// associated with attributes, so create it first.
	gm := &Mesh{funcs: f, count: m.Count()}
	gm.vao = f.CreateVertexArray()
	gm.vbo = f.CreateBuffer()
	gm.ebo = f.CreateBuffer()
	if !gm.vao.Valid() || !gm.vbo.Valid() || !gm.ebo.Valid() {
		gm.Release()
		return nil, errors.New("gpu: failed to create mesh objects")
	}
	f.BindVertexArray(gm.vao)

	f.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	f.BufferData(gl.ARRAY_BUFFER, gl.Float32Bytes(m.Floats()), gl.STATIC_DRAW)

	f.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	f.BufferData(gl.ELEMENT_ARRAY_BUFFER, gl.Uint32Bytes(m.Indices), gl.STATIC_DRAW)

	f.VertexAttribPointer(positionAttrib, 3, gl.FLOAT, false, 3*4, 0)
	f.EnableVertexAttribArray(positionAttrib)

	f.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{})
	// The vertex array keeps the index buffer binding only if it is
	// unbound first.
	f.BindVertexArray(gl.VertexArray{})
	f.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gl.Buffer{})

	if err := glErr(f); err != nil {
		gm.Release()
		return nil, fmt.Errorf("gpu: mesh setup: %w", err)
	}
	return gm, nil
}

// Count returns the number of indices drawn.
func (m *Mesh) Count() int {
	return m.count
}

// Release deletes the vertex array and both buffers. Subsequent calls
// do nothing.
func (m *Mesh) Release() {
	if m.vao.Valid() {
		m.funcs.DeleteVertexArray(m.vao)
		m.vao = gl.VertexArray{}
	}
	if m.vbo.Valid() {
		m.funcs.DeleteBuffer(m.vbo)
		m.vbo = gl.Buffer{}
	}
	if m.ebo.Valid() {
		m.funcs.DeleteBuffer(m.ebo)
		m.ebo = gl.Buffer{}
	}
}
