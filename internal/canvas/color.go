package canvas

import (
	"image/color"
	"math"
)

// Color is one pixel. Field order matches the byte order in the buffer.
type Color struct {
	B, G, R, A uint8
}

var (
	Transparent = Color{}
	Black       = Color{A: 255}
	White       = Color{B: 255, G: 255, R: 255, A: 255}
)

// RGBA builds a Color from channels in the usual reading order.
func RGBA(r, g, b, a uint8) Color {
	return Color{B: b, G: g, R: r, A: a}
}

// Gray returns a color with every channel, alpha included, set to n.
func Gray(n uint8) Color {
	return Color{B: n, G: n, R: n, A: n}
}

// Uint32 returns the pixel as the little-endian word 0xAARRGGBB.
func (c Color) Uint32() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// NRGBA converts to the standard library's non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts any color.Color, un-premultiplying alpha.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{B: n.B, G: n.G, R: n.R, A: n.A}
}

// SetIntensity scales the red, green and blue channels by factor, clamped to
// [0, 1]. Results are truncated toward zero; alpha is unchanged.
func SetIntensity(c Color, factor float64) Color {
	if math.IsNaN(factor) || factor < 0 {
		factor = 0
	} else if factor > 1 {
		factor = 1
	}
	return Color{
		B: uint8(float64(c.B) * factor),
		G: uint8(float64(c.G) * factor),
		R: uint8(float64(c.R) * factor),
		A: c.A,
	}
}
