package geom

import (
	"math"

	"github.com/san-kum/gfx/internal/canvas"
)

type Sphere struct {
	Center Vec3
	Radius float64
	Color  canvas.Color
}

// IntersectRaySphere returns both parameters t where origin + t*dir meets the
// sphere surface, from the closed-form quadratic formula. A ray that misses
// yields (+Inf, +Inf); a tangent ray yields two equal roots.
func IntersectRaySphere(origin, dir Vec3, s Sphere) (t1, t2 float64) {
	oc := origin.Sub(s.Center)

	a := dir.Dot(dir)
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return math.Inf(1), math.Inf(1)
	}

	sq := math.Sqrt(disc)
	t1 = (-b + sq) / (2 * a)
	t2 = (-b - sq) / (2 * a)
	return t1, t2
}
