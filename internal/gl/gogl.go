// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// GoGL implements Functions on top of the go-gl bindings. The entry
// points must be loaded with LoadGoGL once a context is current.
type GoGL struct{}

var _ Functions = (*GoGL)(nil)

// LoadGoGL resolves the OpenGL entry points for the current context.
func LoadGoGL() (*GoGL, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	return new(GoGL), nil
}

func (f *GoGL) AttachShader(p Program, s Shader) {
	gl.AttachShader(uint32(p.V), uint32(s.V))
}

func (f *GoGL) BindBuffer(target Enum, b Buffer) {
	gl.BindBuffer(uint32(target), uint32(b.V))
}

func (f *GoGL) BindVertexArray(a VertexArray) {
	gl.BindVertexArray(uint32(a.V))
}

func (f *GoGL) BufferData(target Enum, src []byte, usage Enum) {
	var p unsafe.Pointer
	if len(src) > 0 {
		p = unsafe.Pointer(&src[0])
	}
	gl.BufferData(uint32(target), len(src), p, uint32(usage))
}

func (f *GoGL) Clear(mask Enum) {
	gl.Clear(uint32(mask))
}

func (f *GoGL) ClearColor(red, green, blue, alpha float32) {
	gl.ClearColor(red, green, blue, alpha)
}

func (f *GoGL) CompileShader(s Shader) {
	gl.CompileShader(uint32(s.V))
}

func (f *GoGL) CreateBuffer() Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return Buffer{uint(b)}
}

func (f *GoGL) CreateProgram() Program {
	return Program{uint(gl.CreateProgram())}
}

func (f *GoGL) CreateShader(ty Enum) Shader {
	return Shader{uint(gl.CreateShader(uint32(ty)))}
}

func (f *GoGL) CreateVertexArray() VertexArray {
	var a uint32
	gl.GenVertexArrays(1, &a)
	return VertexArray{uint(a)}
}

func (f *GoGL) DeleteBuffer(v Buffer) {
	b := uint32(v.V)
	gl.DeleteBuffers(1, &b)
}

func (f *GoGL) DeleteProgram(p Program) {
	gl.DeleteProgram(uint32(p.V))
}

func (f *GoGL) DeleteShader(s Shader) {
	gl.DeleteShader(uint32(s.V))
}

func (f *GoGL) DeleteVertexArray(v VertexArray) {
	a := uint32(v.V)
	gl.DeleteVertexArrays(1, &a)
}

func (f *GoGL) DrawElements(mode Enum, count int, ty Enum, offset int) {
	gl.DrawElements(uint32(mode), int32(count), uint32(ty), gl.PtrOffset(offset))
}

func (f *GoGL) EnableVertexAttribArray(a Attrib) {
	gl.EnableVertexAttribArray(uint32(a))
}

func (f *GoGL) GetError() Enum {
	return Enum(gl.GetError())
}

func (f *GoGL) GetProgrami(p Program, pname Enum) int {
	var i int32
	gl.GetProgramiv(uint32(p.V), uint32(pname), &i)
	return int(i)
}

func (f *GoGL) GetProgramInfoLog(p Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p.V), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 1 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(p.V), logLength, nil, gl.Str(log))
	// The length includes the terminating NUL.
	return log[:logLength-1]
}

func (f *GoGL) GetShaderi(s Shader, pname Enum) int {
	var i int32
	gl.GetShaderiv(uint32(s.V), uint32(pname), &i)
	return int(i)
}

func (f *GoGL) GetShaderInfoLog(s Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s.V), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 1 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(s.V), logLength, nil, gl.Str(log))
	return log[:logLength-1]
}

func (f *GoGL) GetString(pname Enum) string {
	return gl.GoStr(gl.GetString(uint32(pname)))
}

func (f *GoGL) LinkProgram(p Program) {
	gl.LinkProgram(uint32(p.V))
}

func (f *GoGL) ReadPixels(x, y, width, height int, format, ty Enum, data []byte) {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = unsafe.Pointer(&data[0])
	}
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), p)
}

func (f *GoGL) ShaderSource(s Shader, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(uint32(s.V), 1, csources, nil)
	free()
}

func (f *GoGL) UseProgram(p Program) {
	gl.UseProgram(uint32(p.V))
}

func (f *GoGL) VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(uint32(dst), int32(size), uint32(ty), normalized, int32(stride), gl.PtrOffset(offset))
}

func (f *GoGL) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}
