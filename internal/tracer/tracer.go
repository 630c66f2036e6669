package tracer

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/san-kum/gfx/internal/canvas"
)

// Tracer renders full frames. TMin and TMax bound the accepted ray
// parameter; Workers > 1 splits the rows across goroutines.
type Tracer struct {
	Viewport Viewport
	TMin     float64
	TMax     float64
	Workers  int
}

func New(vp Viewport, tMin, tMax float64) *Tracer {
	return &Tracer{Viewport: vp, TMin: tMin, TMax: tMax, Workers: 1}
}

// Render writes one traced color to every pixel of c. Each worker owns a
// disjoint band of rows; Render returns only after all of them finish.
func (t *Tracer) Render(ctx context.Context, c *canvas.Canvas, sc *Scene) error {
	w, h := c.Width(), c.Height()
	workers := t.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return parallelRows(ctx, h, workers, func(y0, y1 int) error {
		for py := y0; py < y1; py++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			y := h/2 - py
			for px := 0; px < w; px++ {
				x := px - w/2
				dir := t.Viewport.CanvasToViewport(x, y, w, h)
				col := sc.TraceRay(sc.Origin, dir, t.TMin, t.TMax)
				if err := c.Set(px, py, col); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// parallelRows runs fn over [0, n) split into at most workers contiguous
// chunks and joins the errors.
func parallelRows(ctx context.Context, n, workers int, fn func(start, end int) error) error {
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return fn(0, n)
	}

	chunkSize := (n + workers - 1) / workers
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(idx, s, e int) {
			defer wg.Done()
			errs[idx] = fn(s, e)
		}(w, start, end)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}
	return ctx.Err()
}
