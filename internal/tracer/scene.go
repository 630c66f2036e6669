package tracer

import (
	"math"

	"github.com/san-kum/gfx/internal/canvas"
	"github.com/san-kum/gfx/internal/geom"
)

type Scene struct {
	Origin     geom.Vec3
	Spheres    []geom.Sphere
	Background canvas.Color
}

// DefaultScene returns three unit spheres in front of the camera above a
// large ground sphere.
func DefaultScene() *Scene {
	return &Scene{
		Spheres: []geom.Sphere{
			{Center: geom.V(0, -1, 3), Radius: 1, Color: canvas.RGBA(255, 0, 0, 255)},
			{Center: geom.V(2, 0, 4), Radius: 1, Color: canvas.RGBA(0, 0, 255, 255)},
			{Center: geom.V(-2, 0, 4), Radius: 1, Color: canvas.RGBA(0, 255, 0, 255)},
			{Center: geom.V(0, -5001, 0), Radius: 5000, Color: canvas.RGBA(255, 255, 0, 255)},
		},
		Background: canvas.Black,
	}
}

// Hit is the closest accepted intersection along a ray.
type Hit struct {
	T      float64
	Sphere int
}

// Nearest finds the closest root t with tMin <= t < tMax over all spheres.
// Only a strictly closer root replaces the current best, so on equal
// distances the earlier sphere wins.
func (s *Scene) Nearest(origin, dir geom.Vec3, tMin, tMax float64) (Hit, bool) {
	best := Hit{T: math.Inf(1), Sphere: -1}
	for i, sp := range s.Spheres {
		t1, t2 := geom.IntersectRaySphere(origin, dir, sp)
		if inRange(t1, tMin, tMax) && t1 < best.T {
			best = Hit{T: t1, Sphere: i}
		}
		if inRange(t2, tMin, tMax) && t2 < best.T {
			best = Hit{T: t2, Sphere: i}
		}
	}
	return best, best.Sphere >= 0
}

// TraceRay returns the color of the nearest sphere hit in [tMin, tMax), or
// the background.
func (s *Scene) TraceRay(origin, dir geom.Vec3, tMin, tMax float64) canvas.Color {
	hit, ok := s.Nearest(origin, dir, tMin, tMax)
	if !ok {
		return s.Background
	}
	return s.Spheres[hit.Sphere].Color
}

func inRange(t, tMin, tMax float64) bool {
	return t >= tMin && t < tMax
}
