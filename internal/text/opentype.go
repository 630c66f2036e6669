package text

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the HUD text size in pixels per em.
const DefaultSize = 20

// OpenTypeFace rasterizes TrueType/OpenType fonts with golang.org/x/image.
type OpenTypeFace struct {
	face   font.Face
	ascent float64
}

// NewOpenTypeFace parses ttf and prepares a face of the given size in pixels
// per em.
func NewOpenTypeFace(ttf []byte, size float64) (*OpenTypeFace, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return &OpenTypeFace{
		face:   face,
		ascent: fixedToFloat64(face.Metrics().Ascent),
	}, nil
}

// DefaultFace returns Go Mono at the given size.
func DefaultFace(size float64) (*OpenTypeFace, error) {
	return NewOpenTypeFace(gomono.TTF, size)
}

func (f *OpenTypeFace) Ascent() float64 { return f.ascent }

func (f *OpenTypeFace) Close() error { return f.face.Close() }

// Layout places s on a baseline through origin, applying kerning.
func (f *OpenTypeFace) Layout(s string, origin image.Point) []Glyph {
	glyphs := make([]Glyph, 0, len(s))
	dot := fixed.P(origin.X, origin.Y)
	prev := rune(-1)
	for _, r := range s {
		if prev >= 0 {
			dot.X += f.face.Kern(prev, r)
		}
		dr, mask, maskp, advance, ok := f.face.Glyph(dot, r)
		if !ok {
			dr, mask, maskp, advance, _ = f.face.Glyph(dot, '\ufffd')
		}
		glyphs = append(glyphs, newMaskGlyph(dr, mask, maskp))
		dot.X += advance
		prev = r
	}
	return glyphs
}

// maskGlyph owns a copy of the coverage mask; the face reuses its buffer on
// every Glyph call.
type maskGlyph struct {
	bounds image.Rectangle
	alpha  *image.Alpha
}

func newMaskGlyph(dr image.Rectangle, mask image.Image, maskp image.Point) *maskGlyph {
	g := &maskGlyph{bounds: dr}
	if dr.Empty() || mask == nil {
		return g
	}
	g.alpha = image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	draw.Draw(g.alpha, g.alpha.Bounds(), mask, maskp, draw.Src)
	return g
}

func (g *maskGlyph) Bounds() image.Rectangle { return g.bounds }

func (g *maskGlyph) Draw(fn func(x, y int, coverage float64)) {
	if g.alpha == nil {
		return
	}
	b := g.alpha.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			fn(x, y, float64(g.alpha.AlphaAt(x, y).A)/255)
		}
	}
}

func fixedToFloat64(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
