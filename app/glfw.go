// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gljourney/sierpinski/internal/gl"
)

// GLFW implements Platform with GLFW 3.3.
type GLFW struct{}

type glfwWindow struct {
	w *glfw.Window
}

func NewGLFW() *GLFW {
	return new(GLFW)
}

func (*GLFW) Init() error {
	return glfwCall(glfw.Init)
}

func (*GLFW) CreateWindow(cfg Config) (Window, error) {
	var w *glfw.Window
	err := glfwCall(func() error {
		glfw.WindowHint(glfw.ContextVersionMajor, 3)
		glfw.WindowHint(glfw.ContextVersionMinor, 3)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		if runtime.GOOS == "darwin" {
			// macOS only provides core profiles that are forward compatible.
			glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		}
		var err error
		w, err = glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
		if err != nil {
			return err
		}
		// Platform errors are logged by the bindings, not returned.
		if w == nil {
			return errNoWindow
		}
		w.MakeContextCurrent()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &glfwWindow{w: w}, nil
}

func (*GLFW) LoadGL() (gl.Functions, error) {
	f, err := gl.LoadGoGL()
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (*GLFW) Terminate() {
	glfwCall(func() error {
		glfw.Terminate()
		return nil
	})
}

var errNoWindow = errors.New("glfw: window creation failed")

// glfwCall runs f, converting a panic from the GLFW bindings into an
// error. The bindings panic when used after a failed glfw.Init, which
// itself only logs platform errors.
func glfwCall(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("glfw: %w", e)
			} else {
				err = fmt.Errorf("glfw: %v", r)
			}
		}
	}()
	return f()
}

func (w *glfwWindow) ShouldClose() bool {
	return w.w.ShouldClose()
}

func (w *glfwWindow) SwapBuffers() {
	w.w.SwapBuffers()
}

func (w *glfwWindow) PollEvents() {
	glfw.PollEvents()
}

func (w *glfwWindow) FramebufferSize() (width, height int) {
	return w.w.GetFramebufferSize()
}

func (w *glfwWindow) Destroy() {
	w.w.Destroy()
}
