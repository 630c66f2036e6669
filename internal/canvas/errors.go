package canvas

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocation indicates the requested buffer cannot be allocated.
	ErrAllocation = errors.New("canvas: cannot allocate pixel buffer")

	// ErrOutOfBounds indicates a pixel coordinate outside the canvas.
	ErrOutOfBounds = errors.New("canvas: pixel out of bounds")
)

// AllocationError reports the dimensions rejected by New.
type AllocationError struct {
	Width, Height int
	Reason        string
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("%v: %dx%d: %s", ErrAllocation, e.Width, e.Height, e.Reason)
}

func (e *AllocationError) Unwrap() error {
	return ErrAllocation
}
