package render

import "github.com/san-kum/gfx/internal/tracer"

// Animation moves one sphere along one axis by Step every frame.
type Animation struct {
	Enabled bool
	Sphere  int
	Axis    int
	Step    float64
}

func (a Animation) Advance(sc *tracer.Scene) {
	if !a.Enabled || a.Sphere < 0 || a.Sphere >= len(sc.Spheres) {
		return
	}
	s := &sc.Spheres[a.Sphere]
	s.Center = s.Center.WithAxis(a.Axis, s.Center.Axis(a.Axis)+a.Step)
}
