// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app opens a window with an OpenGL 3.3 core context and draws
the Sierpinski mesh into it until the window is closed.

Lifecycle

Run initializes the windowing system, creates the window, compiles the
shader program and uploads the mesh, then runs a Loop. When the loop
ends every GPU object is released, the window is destroyed and the
windowing system is shut down, in that order.

For example:

	if err := app.Run(app.NewGLFW(), app.DefaultConfig()); err != nil {
		log.Fatal(err)
	}

Main thread

OpenGL contexts and GLFW are bound to the thread that created them.
Run must be called from the main goroutine, and the program must call
runtime.LockOSThread before Run, typically from an init function of
package main.
*/
package app
