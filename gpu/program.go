// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"github.com/gljourney/sierpinski/internal/gl"
	"github.com/gljourney/sierpinski/shader"
)

// Program is a linked vertex and fragment shader pair.
type Program struct {
	funcs gl.Functions
	obj   gl.Program
}

// NewProgram compiles and links a program from a vertex and a fragment
// source, given in any order.
func (d *Device) NewProgram(srcs [2]shader.Source) (*Program, error) {
	var texts [2]string
	var seen [2]bool
	for _, src := range srcs {
		var i int
		switch src.Stage {
		case shader.StageVertex:
			i = 0
		case shader.StageFragment:
			i = 1
		default:
			return nil, fmt.Errorf("gpu: unknown shader stage %d", src.Stage)
		}
		if seen[i] {
			return nil, fmt.Errorf("gpu: duplicate %v shader", src.Stage)
		}
		seen[i] = true
		texts[i] = src.Text
	}
	p, err := gl.CreateProgram(d.funcs, texts[0], texts[1])
	if err != nil {
		return nil, err
	}
	return &Program{funcs: d.funcs, obj: p}, nil
}

// Object returns the underlying program object, or the zero object
// after Release.
func (p *Program) Object() gl.Program {
	return p.obj
}

// Release deletes the program. Subsequent calls do nothing.
func (p *Program) Release() {
	if !p.obj.Valid() {
		return
	}
	p.funcs.DeleteProgram(p.obj)
	p.obj = gl.Program{}
}
