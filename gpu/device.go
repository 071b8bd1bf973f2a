// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gpu sets up and draws indexed meshes through an OpenGL 3.3
core context.

All methods must be called from the goroutine that owns the current
context. Objects created by a Device are released explicitly, usually
by registering them with a Scope.
*/
package gpu

import (
	"fmt"
	"image"

	"github.com/gljourney/sierpinski/internal/f32color"
	"github.com/gljourney/sierpinski/internal/gl"
)

// Device wraps the OpenGL functions of a context.
type Device struct {
	funcs gl.Functions
}

// Info describes the OpenGL implementation behind a Device.
type Info struct {
	Version  [2]int
	Renderer string
}

func NewDevice(f gl.Functions) *Device {
	return &Device{funcs: f}
}

// Info queries the version and renderer strings of the context.
func (d *Device) Info() (Info, error) {
	glVer := d.funcs.GetString(gl.VERSION)
	ver, err := gl.ParseGLVersion(glVer)
	if err != nil {
		return Info{}, err
	}
	return Info{Version: ver, Renderer: d.funcs.GetString(gl.RENDERER)}, nil
}

func (d *Device) Viewport(x, y, width, height int) {
	d.funcs.Viewport(x, y, width, height)
}

// Clear fills the color buffer with col.
func (d *Device) Clear(col f32color.RGBA) {
	c := col.Array()
	d.funcs.ClearColor(c[0], c[1], c[2], c[3])
	d.funcs.Clear(gl.COLOR_BUFFER_BIT)
}

// Draw draws every triangle of m with p.
func (d *Device) Draw(p *Program, m *Mesh) {
	d.funcs.UseProgram(p.obj)
	d.funcs.BindVertexArray(m.vao)
	d.funcs.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
}

// Screenshot reads back the size.X by size.Y lower left region of the
// current framebuffer. The returned image has its origin in the top
// left corner.
func (d *Device) Screenshot(size image.Point) (*image.RGBA, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("gpu: invalid screenshot size %v", size)
	}
	drainErrors(d.funcs)
	pixels := make([]byte, size.X*size.Y*4)
	d.funcs.ReadPixels(0, 0, size.X, size.Y, gl.RGBA, gl.UNSIGNED_BYTE, pixels)
	if err := glErr(d.funcs); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rectangle{Max: size})
	stride := size.X * 4
	// OpenGL rows are stored bottom up.
	for y := 0; y < size.Y; y++ {
		src := pixels[(size.Y-1-y)*stride : (size.Y-y)*stride]
		copy(img.Pix[y*img.Stride:], src)
	}
	return img, nil
}

// maxErrorFlags bounds drainErrors. Without a current context some
// drivers report an error from every GetError call.
const maxErrorFlags = 16

// drainErrors clears every pending error flag. An implementation may
// record one flag per error kind.
func drainErrors(f gl.Functions) {
	for i := 0; i < maxErrorFlags; i++ {
		if f.GetError() == gl.NO_ERROR {
			return
		}
	}
}

func glErr(f gl.Functions) error {
	if st := f.GetError(); st != gl.NO_ERROR {
		return fmt.Errorf("glGetError: %#x", st)
	}
	return nil
}
