package render

// Display receives each finished frame: width*height BGRA8 pixels, rows
// top-down. pix is only valid during the call; the loop overwrites it on the
// next frame.
type Display interface {
	Blit(pix []byte, width, height int) error
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(pix []byte, width, height int) error

func (f DisplayFunc) Blit(pix []byte, width, height int) error { return f(pix, width, height) }

// Pump is polled once per frame; false means the host asked to quit.
type Pump interface {
	Dispatch() bool
}

// PumpFunc adapts a function to Pump.
type PumpFunc func() bool

func (f PumpFunc) Dispatch() bool { return f() }

// FrameLimit returns a pump that allows exactly n frames.
func FrameLimit(n int) Pump {
	left := n
	return PumpFunc(func() bool {
		if left <= 0 {
			return false
		}
		left--
		return true
	})
}
