package metrics

import "math"

// Mean is the average frame time in milliseconds.
type Mean struct {
	sum     float64
	samples int
}

func NewMean() *Mean { return &Mean{} }

func (m *Mean) Name() string { return "mean_ms" }

func (m *Mean) Observe(seconds float64) {
	m.sum += seconds
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples) * 1000
}

func (m *Mean) Reset() { *m = Mean{} }

// Min is the fastest frame in milliseconds.
type Min struct{ v float64 }

func NewMin() *Min { return &Min{v: math.Inf(1)} }

func (m *Min) Name() string            { return "min_ms" }
func (m *Min) Observe(seconds float64) { m.v = math.Min(m.v, seconds) }
func (m *Min) Reset()                  { m.v = math.Inf(1) }

func (m *Min) Value() float64 {
	if math.IsInf(m.v, 1) {
		return 0
	}
	return m.v * 1000
}

// Max is the slowest frame in milliseconds.
type Max struct{ v float64 }

func NewMax() *Max { return &Max{} }

func (m *Max) Name() string            { return "max_ms" }
func (m *Max) Observe(seconds float64) { m.v = math.Max(m.v, seconds) }
func (m *Max) Value() float64          { return m.v * 1000 }
func (m *Max) Reset()                  { m.v = 0 }

// FPS is frames per second over the whole run, the inverse of the mean
// frame time rather than the mean of per-frame rates.
type FPS struct{ mean Mean }

func NewFPS() *FPS { return &FPS{} }

func (f *FPS) Name() string            { return "mean_fps" }
func (f *FPS) Observe(seconds float64) { f.mean.Observe(seconds) }
func (f *FPS) Reset()                  { f.mean.Reset() }

func (f *FPS) Value() float64 {
	ms := f.mean.Value()
	if ms <= 0 {
		return 0
	}
	return 1000 / ms
}

// Jitter is the standard deviation of the frame time in milliseconds.
type Jitter struct {
	samples  int
	mean, m2 float64
}

func NewJitter() *Jitter { return &Jitter{} }

func (j *Jitter) Name() string { return "jitter_ms" }

// Observe uses Welford's update so long runs don't lose precision.
func (j *Jitter) Observe(seconds float64) {
	ms := seconds * 1000
	j.samples++
	d := ms - j.mean
	j.mean += d / float64(j.samples)
	j.m2 += d * (ms - j.mean)
}

func (j *Jitter) Value() float64 {
	if j.samples < 2 {
		return 0
	}
	return math.Sqrt(j.m2 / float64(j.samples))
}

func (j *Jitter) Reset() { *j = Jitter{} }

// OnBudget is the fraction of frames that finished within budget seconds.
type OnBudget struct {
	budget     float64
	violations int
	samples    int
}

func NewOnBudget(budget float64) *OnBudget {
	return &OnBudget{budget: budget}
}

func (b *OnBudget) Name() string { return "on_budget" }

func (b *OnBudget) Observe(seconds float64) {
	b.samples++
	if seconds > b.budget {
		b.violations++
	}
}

func (b *OnBudget) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *OnBudget) Reset() {
	b.violations = 0
	b.samples = 0
}
