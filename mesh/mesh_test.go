// SPDX-License-Identifier: Unlicense OR MIT

package mesh

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func TestSierpinskiCounts(t *testing.T) {
	m := Sierpinski()
	if n := len(m.Vertices); n != 6 {
		t.Errorf("got %d vertices, expected 6", n)
	}
	if n := m.Count(); n != 9 {
		t.Errorf("got %d indices, expected 9", n)
	}
	for i, idx := range m.Indices {
		if idx >= 6 {
			t.Errorf("index %d at %d out of range", idx, i)
		}
	}
	if err := m.Validate(); err != nil {
		t.Error(err)
	}
	if n := len(m.Floats()); n != 18 {
		t.Errorf("got %d floats, expected 18", n)
	}
}

func TestSierpinskiCoordinates(t *testing.T) {
	const (
		base  = -0.5 * sqrt3 / 3
		apex  = 0.5 * sqrt3 * 2 / 3
		inner = 0.5 * sqrt3 / 6
	)
	want := []mgl32.Vec3{
		{-0.5, base, 0},
		{0.5, base, 0},
		{0, apex, 0},
		{-0.25, inner, 0},
		{0.25, inner, 0},
		{0, base, 0},
	}
	// Inner vertices lie at 0.1443, not 0.0962.
	if inner < 0.14433 || inner > 0.14434 {
		t.Fatalf("inner vertex height %v", float32(inner))
	}
	for i, v := range Sierpinski().Vertices {
		if d := v.Sub(want[i]).Len(); d > 1e-6 {
			t.Errorf("vertex %d: got %v expected %v", i, v, want[i])
		}
	}
}

func TestSierpinskiMedialPartition(t *testing.T) {
	m := Sierpinski()
	a, b, c := m.Vertices[0], m.Vertices[1], m.Vertices[2]
	mid := func(p, q mgl32.Vec3) mgl32.Vec3 {
		return p.Add(q).Mul(.5)
	}
	mab, mbc, mca := mid(a, b), mid(b, c), mid(c, a)
	medial := map[string][3]mgl32.Vec3{
		"lower left":  {a, mab, mca},
		"lower right": {mab, b, mbc},
		"upper":       {mca, mbc, c},
	}
	central := [3]mgl32.Vec3{mab, mbc, mca}

	tris := m.Triangles()
	if len(tris) != 3 {
		t.Fatalf("got %d triangles, expected 3", len(tris))
	}
	found := make(map[string]bool)
	for i, tri := range tris {
		if sameTriangle(tri, central) {
			t.Errorf("triangle %d is the central subtriangle", i)
			continue
		}
		matched := false
		for name, want := range medial {
			if sameTriangle(tri, want) {
				if found[name] {
					t.Errorf("%s subtriangle drawn twice", name)
				}
				found[name] = true
				matched = true
			}
		}
		if !matched {
			t.Errorf("triangle %d %v is not a medial subtriangle", i, tri)
		}
	}
	if len(found) != 3 {
		t.Errorf("got subtriangles %v, expected all of lower left, lower right and upper", found)
	}

	var sum float32
	for _, tri := range tris {
		sum += abs(Area(tri))
	}
	outer := abs(Area([3]mgl32.Vec3{a, b, c}))
	if d := sum - outer*3/4; abs(d) > eps {
		t.Errorf("drawn area %v, expected 3/4 of %v", sum, outer)
	}
}

func TestSierpinskiIsCopy(t *testing.T) {
	m := Sierpinski()
	m.Vertices[0] = mgl32.Vec3{9, 9, 9}
	m.Indices[0] = 7
	if n := Sierpinski(); n.Vertices[0][0] == 9 || n.Indices[0] == 7 {
		t.Error("modifying a returned mesh changed the package geometry")
	}
}

func TestValidate(t *testing.T) {
	tri := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	tests := []struct {
		name string
		m    Mesh
		want string
	}{
		{"ok", Mesh{Vertices: tri, Indices: []uint32{0, 1, 2}}, ""},
		{"no vertices", Mesh{Indices: []uint32{0, 1, 2}}, "no vertices"},
		{"no indices", Mesh{Vertices: tri}, "not a whole number"},
		{"partial triangle", Mesh{Vertices: tri, Indices: []uint32{0, 1, 2, 0}}, "not a whole number"},
		{"out of range", Mesh{Vertices: tri, Indices: []uint32{0, 1, 3}}, "index 3 at position 2 out of range [0, 3)"},
	}
	for _, test := range tests {
		err := test.m.Validate()
		switch {
		case test.want == "" && err != nil:
			t.Errorf("%s: unexpected error %v", test.name, err)
		case test.want != "" && err == nil:
			t.Errorf("%s: expected error", test.name)
		case err != nil && !strings.Contains(err.Error(), test.want):
			t.Errorf("%s: got %q, expected it to contain %q", test.name, err, test.want)
		}
	}
}

func sameTriangle(t1, t2 [3]mgl32.Vec3) bool {
	for _, p := range t1 {
		found := false
		for _, q := range t2 {
			if p.Sub(q).Len() < eps {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
