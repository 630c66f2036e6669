// Package raster draws primitives into a canvas.
package raster

import (
	"image"

	"github.com/san-kum/gfx/internal/canvas"
)

// LinePoints returns the pixels DrawLine would write for the segment p0-p1,
// in increasing order along the dominant axis.
//
// The dominant axis is x only when |dx| > |dy|; equal deltas walk y. The
// secondary coordinate is interpolated with a constant float step and
// truncated at each pixel, so results are reproducible bit for bit.
func LinePoints(p0, p1 image.Point) []image.Point {
	if absInt(p1.X-p0.X) > absInt(p1.Y-p0.Y) {
		if p0.X > p1.X {
			p0, p1 = p1, p0
		}
		ys := interpolate(p0.X, p0.Y, p1.X, p1.Y)
		pts := make([]image.Point, 0, len(ys))
		for i, y := range ys {
			pts = append(pts, image.Pt(p0.X+i, y))
		}
		return pts
	}

	if p0.Y > p1.Y {
		p0, p1 = p1, p0
	}
	xs := interpolate(p0.Y, p0.X, p1.Y, p1.X)
	pts := make([]image.Point, 0, len(xs))
	for i, x := range xs {
		pts = append(pts, image.Pt(x, p0.Y+i))
	}
	return pts
}

// DrawLine draws a white one-pixel segment from p0 to p1. There is no
// clipping: the first point outside the canvas stops drawing and its error is
// returned.
func DrawLine(c *canvas.Canvas, p0, p1 image.Point) error {
	return DrawLineColor(c, p0, p1, canvas.White)
}

// DrawLineColor is DrawLine with a caller-chosen color.
func DrawLineColor(c *canvas.Canvas, p0, p1 image.Point, col canvas.Color) error {
	for _, p := range LinePoints(p0, p1) {
		if err := c.Set(p.X, p.Y, col); err != nil {
			return err
		}
	}
	return nil
}

// interpolate returns one dependent value per integer step from i0 to i1
// inclusive. i0 must not exceed i1.
func interpolate(i0, d0, i1, d1 int) []int {
	if i0 == i1 {
		return []int{d0}
	}

	values := make([]int, 0, i1-i0+1)
	a := float64(d1-d0) / float64(i1-i0)
	d := float64(d0)
	for i := i0; i <= i1; i++ {
		values = append(values, int(d))
		d += a
	}
	return values
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
