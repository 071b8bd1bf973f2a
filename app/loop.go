// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"image"

	"github.com/gljourney/sierpinski/gpu"
	"github.com/gljourney/sierpinski/internal/f32color"
)

// State is the state of a Loop.
type State uint8

const (
	StateRunning State = iota
	StateClosed
)

// Loop draws the same frame into a window until it is closed.
type Loop struct {
	win  Window
	dev  *gpu.Device
	prog *gpu.Program
	mesh *gpu.Mesh

	background f32color.RGBA
	maxFrames  int
	capture    bool

	state  State
	frames int
	last   *image.RGBA
	err    error
}

// NewLoop returns a running loop drawing mesh with prog. If
// cfg.Screenshot is set, the loop keeps a copy of the final frame.
func NewLoop(w Window, d *gpu.Device, prog *gpu.Program, mesh *gpu.Mesh, cfg Config) *Loop {
	return &Loop{
		win:        w,
		dev:        d,
		prog:       prog,
		mesh:       mesh,
		background: cfg.Background,
		maxFrames:  cfg.Frames,
		capture:    cfg.Screenshot != "",
		state:      StateRunning,
	}
}

// Run presents a cleared first frame, then draws frames until the
// window should close or the frame limit is reached.
func (l *Loop) Run() error {
	l.dev.Clear(l.background)
	l.win.SwapBuffers()
	for l.state == StateRunning {
		if l.win.ShouldClose() || (l.maxFrames > 0 && l.frames >= l.maxFrames) {
			l.state = StateClosed
			break
		}
		l.frame()
	}
	return l.err
}

func (l *Loop) frame() {
	l.dev.Clear(l.background)
	l.dev.Draw(l.prog, l.mesh)
	if l.capture && l.capturing() {
		l.last, l.err = l.dev.Screenshot(image.Pt(l.win.FramebufferSize()))
		if l.err != nil {
			l.state = StateClosed
		}
	}
	l.win.SwapBuffers()
	l.win.PollEvents()
	l.frames++
}

// capturing reports whether the current frame may be the last.
func (l *Loop) capturing() bool {
	return l.maxFrames == 0 || l.frames == l.maxFrames-1
}

// State returns the current state of the loop.
func (l *Loop) State() State {
	return l.state
}

// Frames returns the number of frames drawn, not counting the initial
// cleared frame.
func (l *Loop) Frames() int {
	return l.frames
}

// LastFrame returns the contents of the final frame, or nil if no
// screenshot was requested or no frame was drawn.
func (l *Loop) LastFrame() *image.RGBA {
	return l.last
}

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateClosed:
		return "closed"
	default:
		panic("invalid state")
	}
}
