// SPDX-License-Identifier: Unlicense OR MIT

package f32color

import (
	"image/color"
	"math"
)

// RGBA is a 32 bit floating point color with components in [0, 1].
// The components are passed to OpenGL as is; no color space
// conversion takes place.
type RGBA struct {
	R, G, B, A float32
}

// Array returns rgba values in a [4]float32 array.
func (rgba RGBA) Array() [4]float32 {
	return [4]float32{rgba.R, rgba.G, rgba.B, rgba.A}
}

// NRGBA converts the color to 8 bit components, rounding to the
// nearest value the way an UNORM8 framebuffer stores it.
func (col RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: unorm8(col.R),
		G: unorm8(col.G),
		B: unorm8(col.B),
		A: unorm8(col.A),
	}
}

func unorm8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	}
	return uint8(math.Round(float64(v) * 0xff))
}
