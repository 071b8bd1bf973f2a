// SPDX-License-Identifier: Unlicense OR MIT

// Package shader contains the GLSL 330 core sources of the triangle
// pipeline.
package shader

import (
	_ "embed"

	"github.com/gljourney/sierpinski/internal/f32color"
)

// Stage identifies a programmable pipeline stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
)

// Source is shader source text tagged with its stage.
type Source struct {
	Stage Stage
	Text  string
}

var (
	// Vertex passes the position at attribute location 0 through
	// unmodified.
	//go:embed triangle.vert
	Vertex string
	// Fragment fills every fragment with Color.
	//go:embed triangle.frag
	Fragment string
)

// Color is the constant output of the fragment stage.
var Color = f32color.RGBA{R: .8, G: .3, B: .02, A: 1}

// PositionAttrib is the attribute location of the vertex position.
const PositionAttrib = 0

// Sources returns the vertex and fragment sources, in that order.
func Sources() [2]Source {
	return [2]Source{
		{Stage: StageVertex, Text: Vertex},
		{Stage: StageFragment, Text: Fragment},
	}
}

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		panic("unknown shader stage")
	}
}
