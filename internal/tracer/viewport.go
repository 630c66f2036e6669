package tracer

import "github.com/san-kum/gfx/internal/geom"

// Viewport is the rectangle in camera space, Distance in front of the
// origin, that the canvas is projected onto.
type Viewport struct {
	Width    float64
	Height   float64
	Distance float64
}

func DefaultViewport() Viewport {
	return Viewport{Width: 16.0 / 9.0, Height: 1, Distance: 1}
}

// CanvasToViewport converts canvas coordinates relative to the canvas center
// (x right, y up) into a ray direction.
func (v Viewport) CanvasToViewport(x, y, canvasW, canvasH int) geom.Vec3 {
	return geom.Vec3{
		X: float64(x) / float64(canvasW) * v.Width,
		Y: float64(y) / float64(canvasH) * v.Height,
		Z: v.Distance,
	}
}
