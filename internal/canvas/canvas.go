package canvas

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// BytesPerPixel is the size of one Color in the buffer.
const BytesPerPixel = 4

// MaxPixels caps the buffer at 1 GiB.
const MaxPixels = 1 << 28

// Canvas owns a width*height grid of pixels, row-major with the origin at the
// top-left corner.
type Canvas struct {
	width, height int
	pix           []byte
}

// New allocates a zeroed canvas. Non-positive or oversized dimensions are
// rejected before any allocation happens.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, &AllocationError{Width: width, Height: height, Reason: "dimensions must be positive"}
	}
	if width > math.MaxInt/BytesPerPixel/height {
		return nil, &AllocationError{Width: width, Height: height, Reason: "size overflows"}
	}
	if width*height > MaxPixels {
		return nil, &AllocationError{Width: width, Height: height, Reason: fmt.Sprintf("more than %d pixels", MaxPixels)}
	}
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*BytesPerPixel),
	}, nil
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Contains reports whether (x, y) addresses a pixel of the canvas.
func (c *Canvas) Contains(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

func (c *Canvas) offset(x, y int) (int, error) {
	if !c.Contains(x, y) {
		return 0, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfBounds, x, y, c.width, c.height)
	}
	return (y*c.width + x) * BytesPerPixel, nil
}

// Set writes col at (x, y). Out-of-range coordinates leave the buffer
// untouched and return an error wrapping ErrOutOfBounds.
func (c *Canvas) Set(x, y int, col Color) error {
	i, err := c.offset(x, y)
	if err != nil {
		return err
	}
	p := c.pix[i : i+BytesPerPixel : i+BytesPerPixel]
	p[0], p[1], p[2], p[3] = col.B, col.G, col.R, col.A
	return nil
}

// ColorAt reads the pixel at (x, y).
func (c *Canvas) ColorAt(x, y int) (Color, error) {
	i, err := c.offset(x, y)
	if err != nil {
		return Color{}, err
	}
	p := c.pix[i : i+BytesPerPixel : i+BytesPerPixel]
	return Color{B: p[0], G: p[1], R: p[2], A: p[3]}, nil
}

// Clear fills every pixel with col.
func (c *Canvas) Clear(col Color) {
	if len(c.pix) == 0 {
		return
	}
	c.pix[0], c.pix[1], c.pix[2], c.pix[3] = col.B, col.G, col.R, col.A
	for filled := BytesPerPixel; filled < len(c.pix); filled *= 2 {
		copy(c.pix[filled:], c.pix[:filled])
	}
}

// Pix returns the backing buffer without copying. Callers must treat it as
// read-only and must not keep it after the call that received it returns.
func (c *Canvas) Pix() []byte {
	return c.pix
}

// image.Image

func (c *Canvas) ColorModel() color.Model { return color.NRGBAModel }

func (c *Canvas) Bounds() image.Rectangle { return image.Rect(0, 0, c.width, c.height) }

func (c *Canvas) At(x, y int) color.Color {
	col, err := c.ColorAt(x, y)
	if err != nil {
		return color.NRGBA{}
	}
	return col.NRGBA()
}
