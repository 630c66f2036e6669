package graph

// DefaultCapacity is the number of frame times kept by default.
const DefaultCapacity = 500

// History is a fixed-capacity ring of frame durations in seconds. Pushing to
// a full history evicts the oldest sample.
type History struct {
	buf   []float64
	head  int
	count int
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{buf: make([]float64, capacity)}
}

func (h *History) Push(seconds float64) {
	h.buf[(h.head+h.count)%len(h.buf)] = seconds
	if h.count < len(h.buf) {
		h.count++
		return
	}
	h.head = (h.head + 1) % len(h.buf)
}

func (h *History) Len() int { return h.count }
func (h *History) Cap() int { return len(h.buf) }

// At returns the i-th sample in insertion order, 0 being the oldest kept.
func (h *History) At(i int) float64 {
	return h.buf[(h.head+i)%len(h.buf)]
}

// Recent returns the i-th most recent sample, 0 being the newest.
func (h *History) Recent(i int) float64 {
	return h.At(h.count - 1 - i)
}

// Last returns the newest sample, or 0 when empty.
func (h *History) Last() float64 {
	if h.count == 0 {
		return 0
	}
	return h.Recent(0)
}

// Values copies the samples out, oldest first.
func (h *History) Values() []float64 {
	out := make([]float64, h.count)
	for i := range out {
		out[i] = h.At(i)
	}
	return out
}

// Reset drops every sample.
func (h *History) Reset() {
	h.head, h.count = 0, 0
}
