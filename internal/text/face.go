// Package text draws strings onto a canvas from glyph coverage produced by a
// font rasterizer.
package text

import "image"

// Glyph is one positioned, rasterized glyph.
type Glyph interface {
	// Bounds is the pixel bounding box with y measured from the baseline
	// the layout was started on. An empty box means nothing to draw.
	Bounds() image.Rectangle

	// Draw calls fn for every pixel of the box with x and y relative to
	// Bounds().Min and coverage in [0, 1].
	Draw(fn func(x, y int, coverage float64))
}

// Face lays out strings into glyphs.
type Face interface {
	// Ascent is the distance in pixels from the top of a line to its
	// baseline.
	Ascent() float64

	Layout(s string, origin image.Point) []Glyph
}
