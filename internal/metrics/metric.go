// Package metrics reduces frame times to the numbers stored with a run.
package metrics

import "github.com/san-kum/gfx/internal/graph"

// Metric accumulates frame durations, in seconds, one at a time.
type Metric interface {
	Name() string
	Observe(seconds float64)
	Value() float64
	Reset()
}

// DefaultBudget is the frame time OnBudget measures against, 30 fps.
const DefaultBudget = 1.0 / 30

// Standard returns the metrics recorded for every run.
func Standard() []Metric {
	return []Metric{
		NewMean(),
		NewMin(),
		NewMax(),
		NewFPS(),
		NewJitter(),
		NewOnBudget(DefaultBudget),
	}
}

// Collect feeds every sample of h, oldest first, to each metric and returns
// the results by name. Metrics are reset first.
func Collect(h *graph.History, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	if h.Len() == 0 {
		return out
	}
	for _, m := range ms {
		m.Reset()
		for i := 0; i < h.Len(); i++ {
			m.Observe(h.At(i))
		}
		out[m.Name()] = m.Value()
	}
	return out
}
