// Package graph plots the frame-time history as a boxed polyline.
package graph

import (
	"image"
	"math"

	"github.com/san-kum/gfx/internal/canvas"
	"github.com/san-kum/gfx/internal/raster"
)

// DefaultMargin insets the plot inside the border.
const DefaultMargin = 10

// Draw outlines area and plots h inside it. It returns how many polyline
// segments were drawn; fewer than two samples draw only the border.
// The border runs through area.Min and area.Max inclusive, so both must lie
// on the canvas.
func Draw(c *canvas.Canvas, area image.Rectangle, h *History, margin int) (int, error) {
	x0, y0, x1, y1 := area.Min.X, area.Min.Y, area.Max.X, area.Max.Y
	border := [][2]image.Point{
		{{x0, y0}, {x1, y0}},
		{{x0, y1}, {x1, y1}},
		{{x0, y0}, {x0, y1}},
		{{x1, y0}, {x1, y1}},
	}
	for _, seg := range border {
		if err := raster.DrawLine(c, seg[0], seg[1]); err != nil {
			return 0, err
		}
	}

	pts := Points(area, h, margin)
	segments := 0
	for i := 1; i < len(pts); i++ {
		if err := raster.DrawLine(c, pts[i-1], pts[i]); err != nil {
			return segments, err
		}
		segments++
	}
	return segments, nil
}

// Points maps the history into pixel coordinates inside area, newest sample
// first. The x axis spans the full capacity so the newest sample sits at the
// right edge and older ones scroll left; the y axis spans the current min and
// max frame time in milliseconds, larger values higher up.
func Points(area image.Rectangle, h *History, margin int) []image.Point {
	n := h.Len()
	if n == 0 {
		return nil
	}

	minX, maxX := float64(area.Min.X+margin), float64(area.Max.X-margin)
	minY, maxY := float64(area.Min.Y+margin), float64(area.Max.Y-margin)

	lo, hi := math.MaxFloat64, -math.MaxFloat64
	for i := 0; i < n; i++ {
		ms := h.At(i) * 1000
		lo, hi = math.Min(lo, ms), math.Max(hi, ms)
	}

	xFrom := raster.Range{Start: 0, End: float64(h.Cap() - 1)}
	xTo := raster.Range{Start: maxX, End: minX}
	yFrom := raster.Range{Start: lo, End: hi}
	yTo := raster.Range{Start: maxY, End: minY}

	pts := make([]image.Point, 0, n)
	for i := 0; i < n; i++ {
		px := maxX
		if !xFrom.Degenerate() {
			px = raster.Map(float64(i), xFrom, xTo)
		}
		// flat history: nothing to scale against, plot mid-height
		py := (minY + maxY) / 2
		if !yFrom.Degenerate() {
			py = raster.Map(h.Recent(i)*1000, yFrom, yTo)
		}
		pts = append(pts, image.Pt(int(px), int(py)))
	}
	return pts
}
