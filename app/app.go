// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/gljourney/sierpinski/gpu"
	"github.com/gljourney/sierpinski/mesh"
	"github.com/gljourney/sierpinski/shader"
)

// Run opens a window on p and draws the Sierpinski mesh until the
// window is closed. Every object created is released before Run
// returns. If the window cannot be created the returned error wraps
// ErrCreateWindow and no OpenGL function has been called.
func Run(p Platform, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := p.Init(); err != nil {
		return fmt.Errorf("app: init: %w", err)
	}
	defer p.Terminate()
	w, err := p.CreateWindow(cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateWindow, err)
	}
	if w == nil {
		return ErrCreateWindow
	}
	defer w.Destroy()
	f, err := p.LoadGL()
	if err != nil {
		return fmt.Errorf("app: load OpenGL: %w", err)
	}
	dev := gpu.NewDevice(f)
	if info, err := dev.Info(); err == nil {
		log.Printf("OpenGL %d.%d, %s", info.Version[0], info.Version[1], info.Renderer)
	} else {
		log.Printf("app: %v", err)
	}
	width, height := w.FramebufferSize()
	dev.Viewport(0, 0, width, height)

	var scope gpu.Scope
	defer scope.Release()
	prog, err := dev.NewProgram(shader.Sources())
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	scope.Add(prog)
	m, err := dev.NewMesh(mesh.Sierpinski())
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	scope.Add(m)

	loop := NewLoop(w, dev, prog, m, cfg)
	if err := loop.Run(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if img := loop.LastFrame(); img != nil {
		if err := writePNG(cfg.Screenshot, img); err != nil {
			return fmt.Errorf("app: screenshot: %w", err)
		}
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
