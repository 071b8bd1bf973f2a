// SPDX-License-Identifier: Unlicense OR MIT

// Command sierpinski draws the first subdivision of the Sierpinski
// triangle in an OpenGL 3.3 window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/gljourney/sierpinski/app"
)

var (
	width      = flag.Int("width", 800, "window width in screen coordinates")
	height     = flag.Int("height", 800, "window height in screen coordinates")
	title      = flag.String("title", "Open GL Journey", "window title")
	frames     = flag.Int("frames", 0, "exit after drawing this many frames (0 draws until the window is closed)")
	screenshot = flag.String("screenshot", "", "write the final frame to this PNG file")
)

func init() {
	// Required by the OpenGL threading model.
	runtime.LockOSThread()
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: sierpinski [flags]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	cfg := app.DefaultConfig()
	cfg.Width = *width
	cfg.Height = *height
	cfg.Title = *title
	cfg.Frames = *frames
	cfg.Screenshot = *screenshot
	if *screenshot != "" && *frames == 0 {
		log.Print("sierpinski: -screenshot reads back every frame; use -frames to capture only the last")
	}
	os.Exit(run(app.NewGLFW(), cfg))
}

// run draws until the window closes and returns the process exit
// status: 0 on a normal close, -1 when no window could be created and
// 1 for any other failure.
func run(p app.Platform, cfg app.Config) int {
	if err := app.Run(p, cfg); err != nil {
		if errors.Is(err, app.ErrCreateWindow) {
			log.Printf("Failed to create GLFW window: %v", err)
			return -1
		}
		log.Printf("sierpinski: %v", err)
		return 1
	}
	return 0
}
