// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"

	"github.com/gljourney/sierpinski/internal/f32color"
)

// Config describes the window and what the loop draws into it.
type Config struct {
	// Width and Height are the window size in screen coordinates.
	Width, Height int
	Title         string
	// Background is the clear color of every frame.
	Background f32color.RGBA
	// Frames limits the number of frames drawn. Zero means draw
	// until the window is closed.
	Frames int
	// Screenshot is the path of a PNG file receiving the final frame.
	// Empty means no screenshot.
	Screenshot string
}

// DefaultConfig returns the configuration of an 800x800 window cleared
// to a dark blue-gray.
func DefaultConfig() Config {
	return Config{
		Width:      800,
		Height:     800,
		Title:      "Open GL Journey",
		Background: f32color.RGBA{R: .07, G: .13, B: .17, A: 1},
	}
}

// Validate reports whether c can be used to create a window.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("app: invalid window size %dx%d", c.Width, c.Height)
	}
	if c.Frames < 0 {
		return fmt.Errorf("app: negative frame limit %d", c.Frames)
	}
	return nil
}
