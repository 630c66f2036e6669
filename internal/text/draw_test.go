package text

import (
	"image"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/gfx/internal/canvas"
)

type stubGlyph struct {
	bounds   image.Rectangle
	coverage [][]float64
}

func (g stubGlyph) Bounds() image.Rectangle { return g.bounds }

func (g stubGlyph) Draw(fn func(x, y int, coverage float64)) {
	for y, row := range g.coverage {
		for x, v := range row {
			fn(x, y, v)
		}
	}
}

type stubFace struct {
	ascent float64
	glyphs []Glyph
}

func (f stubFace) Ascent() float64 { return f.ascent }

func (f stubFace) Layout(s string, origin image.Point) []Glyph {
	out := make([]Glyph, 0, len(f.glyphs))
	for _, g := range f.glyphs {
		sg := g.(stubGlyph)
		sg.bounds = sg.bounds.Add(origin)
		out = append(out, sg)
	}
	return out
}

func TestDrawString_CoverageToGray(t *testing.T) {
	g := NewWithT(t)
	c, _ := canvas.New(10, 10)
	face := stubFace{
		ascent: 4,
		glyphs: []Glyph{
			stubGlyph{
				bounds:   image.Rect(1, -2, 3, 0),
				coverage: [][]float64{{0, 0.5}, {1, 0.25}},
			},
			stubGlyph{bounds: image.Rectangle{}},
		},
	}

	g.Expect(DrawString(c, face, "ab", image.Pt(0, 0))).To(Succeed())

	// y = ascent + bounds.Min.Y + row = 4 - 2 + row
	expect := map[image.Point]canvas.Color{
		{1, 2}: canvas.Gray(0),
		{2, 2}: canvas.Gray(127),
		{1, 3}: canvas.Gray(255),
		{2, 3}: canvas.Gray(63),
	}
	for p, want := range expect {
		got, _ := c.ColorAt(p.X, p.Y)
		g.Expect(got).To(Equal(want), "pixel %v", p)
	}
}

func TestDrawString_DropsOffCanvasSamples(t *testing.T) {
	g := NewWithT(t)
	c, _ := canvas.New(4, 4)
	face := stubFace{
		ascent: 0,
		glyphs: []Glyph{stubGlyph{
			bounds:   image.Rect(-1, -1, 5, 0),
			coverage: [][]float64{{1, 1, 1, 1, 1, 1}},
		}},
	}
	// the row lands at y=2; x=-1 and x=4 fall off the canvas
	g.Expect(DrawString(c, face, "x", image.Pt(0, 3))).To(Succeed())
	for x := 0; x < 4; x++ {
		got, _ := c.ColorAt(x, 2)
		g.Expect(got).To(Equal(canvas.White))
	}
}

func TestDefaultFace_Draws(t *testing.T) {
	g := NewWithT(t)
	face, err := DefaultFace(DefaultSize)
	g.Expect(err).NotTo(HaveOccurred())
	defer face.Close()

	g.Expect(face.Ascent()).To(BeNumerically(">", 0))
	g.Expect(face.Ascent()).To(BeNumerically("<=", DefaultSize))

	glyphs := face.Layout("A A", image.Pt(0, 0))
	g.Expect(glyphs).To(HaveLen(3))
	g.Expect(glyphs[2].Bounds().Min.X).To(BeNumerically(">", glyphs[0].Bounds().Min.X))

	c, _ := canvas.New(120, 30)
	g.Expect(DrawString(c, face, "12.345 ms", image.Pt(0, 0))).To(Succeed())

	lit := 0
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if col, _ := c.ColorAt(x, y); col.R > 0 {
				lit++
				g.Expect(col.R).To(Equal(col.G))
				g.Expect(col.A).To(Equal(col.R))
			}
		}
	}
	g.Expect(lit).To(BeNumerically(">", 20))
}

func TestNewOpenTypeFace_BadData(t *testing.T) {
	if _, err := NewOpenTypeFace([]byte("not a font"), 12); err == nil {
		t.Error("expected parse error")
	}
}
