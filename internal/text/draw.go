package text

import (
	"image"

	"github.com/san-kum/gfx/internal/canvas"
)

// DrawString lays s out with its line top at origin and writes every
// coverage sample as a gray pixel whose channels and alpha all equal
// 255*coverage. Samples that fall outside the canvas are dropped.
func DrawString(c *canvas.Canvas, face Face, s string, origin image.Point) error {
	ascent := face.Ascent()

	var err error
	for _, g := range face.Layout(s, origin) {
		bb := g.Bounds()
		if bb.Empty() {
			continue
		}
		g.Draw(func(x, y int, v float64) {
			if err != nil {
				return
			}
			px := bb.Min.X + x
			py := int(ascent + float64(bb.Min.Y+y))
			if !c.Contains(px, py) {
				return
			}
			err = c.Set(px, py, canvas.Gray(coverageToByte(v)))
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func coverageToByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(255 * v)
}
