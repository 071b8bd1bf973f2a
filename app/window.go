// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"

	"github.com/gljourney/sierpinski/internal/gl"
)

// ErrCreateWindow is returned by Run when the window or its context
// could not be created.
var ErrCreateWindow = errors.New("app: failed to create window")

// Platform is a windowing system able to create windows with an
// OpenGL context.
type Platform interface {
	// Init initializes the windowing system.
	Init() error
	// CreateWindow creates a window with an OpenGL 3.3 core context
	// and makes the context current on the calling thread.
	CreateWindow(cfg Config) (Window, error)
	// LoadGL returns the OpenGL functions of the current context.
	LoadGL() (gl.Functions, error)
	// Terminate destroys any remaining windows and shuts down the
	// windowing system.
	Terminate()
}

// Window is an operating system window with a double buffered
// OpenGL context.
type Window interface {
	// ShouldClose reports whether the user asked to close the window.
	ShouldClose() bool
	// SwapBuffers presents the back buffer.
	SwapBuffers()
	// PollEvents processes pending events without blocking.
	PollEvents()
	// FramebufferSize returns the size of the drawable in pixels.
	FramebufferSize() (width, height int)
	Destroy()
}
