package raster

// Range is a numeric interval from Start to End. End may be below Start, in
// which case Map flips direction.
type Range struct {
	Start, End float64
}

// Span returns End - Start.
func (r Range) Span() float64 { return r.End - r.Start }

// Degenerate reports whether the range has zero width and cannot be used as
// the source range of Map.
func (r Range) Degenerate() bool { return r.Start == r.End }

// Map linearly remaps x from one range to another. The source range must not
// be degenerate; Map does not check.
func Map(x float64, from, to Range) float64 {
	return to.Start + (x-from.Start)*(to.Span()/from.Span())
}
