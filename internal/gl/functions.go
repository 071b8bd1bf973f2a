// SPDX-License-Identifier: Unlicense OR MIT

package gl

// Functions is the subset of the OpenGL 3.3 core API needed to set up
// and draw an indexed mesh. Implementations must be called from the
// thread that owns the current context.
type Functions interface {
	AttachShader(p Program, s Shader)
	BindBuffer(target Enum, b Buffer)
	BindVertexArray(a VertexArray)
	BufferData(target Enum, src []byte, usage Enum)
	Clear(mask Enum)
	ClearColor(red, green, blue, alpha float32)
	CompileShader(s Shader)
	CreateBuffer() Buffer
	CreateProgram() Program
	CreateShader(ty Enum) Shader
	CreateVertexArray() VertexArray
	DeleteBuffer(b Buffer)
	DeleteProgram(p Program)
	DeleteShader(s Shader)
	DeleteVertexArray(a VertexArray)
	DrawElements(mode Enum, count int, ty Enum, offset int)
	EnableVertexAttribArray(a Attrib)
	GetError() Enum
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	GetString(pname Enum) string
	LinkProgram(p Program)
	ReadPixels(x, y, width, height int, format, ty Enum, data []byte)
	ShaderSource(s Shader, src string)
	UseProgram(p Program)
	VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int)
	Viewport(x, y, width, height int)
}
