package tracer

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/gfx/internal/canvas"
	"github.com/san-kum/gfx/internal/geom"
)

var (
	red   = canvas.RGBA(255, 0, 0, 255)
	green = canvas.RGBA(0, 255, 0, 255)
	blue  = canvas.RGBA(0, 0, 255, 255)
)

func TestTraceRay_EmptyScene(t *testing.T) {
	g := NewWithT(t)
	sc := &Scene{Background: canvas.Black}
	c, err := canvas.New(8, 6)
	g.Expect(err).NotTo(HaveOccurred())

	tr := New(DefaultViewport(), 0, math.Inf(1))
	g.Expect(tr.Render(context.Background(), c, sc)).To(Succeed())

	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			col, _ := c.ColorAt(x, y)
			g.Expect(col).To(Equal(canvas.Black))
		}
	}
}

func TestTraceRay_TieBreakFirstWins(t *testing.T) {
	g := NewWithT(t)
	sc := &Scene{
		Spheres: []geom.Sphere{
			{Center: geom.V(0, 0, 5), Radius: 1, Color: red},
			{Center: geom.V(0, 0, 5), Radius: 1, Color: green},
		},
		Background: canvas.Black,
	}
	g.Expect(sc.TraceRay(geom.V(0, 0, 0), geom.V(0, 0, 1), 0, math.Inf(1))).To(Equal(red))

	sc.Spheres[0], sc.Spheres[1] = sc.Spheres[1], sc.Spheres[0]
	g.Expect(sc.TraceRay(geom.V(0, 0, 0), geom.V(0, 0, 1), 0, math.Inf(1))).To(Equal(green))
}

func TestNearest(t *testing.T) {
	sc := &Scene{
		Spheres: []geom.Sphere{
			{Center: geom.V(0, 0, 10), Radius: 1, Color: red},
			{Center: geom.V(0, 0, 5), Radius: 1, Color: blue},
		},
	}
	origin, dir := geom.V(0, 0, 0), geom.V(0, 0, 1)

	tests := []struct {
		name       string
		tMin, tMax float64
		ok         bool
		sphere     int
		t          float64
	}{
		{"closest of two", 0, math.Inf(1), true, 1, 4},
		{"lower bound inclusive", 4, math.Inf(1), true, 1, 4},
		{"skips entry behind tMin", 4.5, math.Inf(1), true, 1, 6},
		{"upper bound exclusive", 0, 4, false, -1, 0},
		{"far sphere only", 7, 100, true, 0, 9},
		{"nothing in range", 12, 100, false, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			hit, ok := sc.Nearest(origin, dir, tt.tMin, tt.tMax)
			g.Expect(ok).To(Equal(tt.ok))
			if tt.ok {
				g.Expect(hit.Sphere).To(Equal(tt.sphere))
				g.Expect(hit.T).To(BeNumerically("~", tt.t, 1e-12))
			}
		})
	}
}

func TestRender_SphereFillsView(t *testing.T) {
	g := NewWithT(t)
	sc := &Scene{
		Spheres:    []geom.Sphere{{Center: geom.V(0, 0, 5), Radius: 100, Color: blue}},
		Background: canvas.Black,
	}
	c, _ := canvas.New(4, 4)

	g.Expect(New(DefaultViewport(), 0, math.Inf(1)).Render(context.Background(), c, sc)).To(Succeed())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			col, _ := c.ColorAt(x, y)
			g.Expect(col).To(Equal(blue), "pixel (%d,%d)", x, y)
		}
	}
}

func TestRender_PixelOrientation(t *testing.T) {
	g := NewWithT(t)
	// A sphere up and to the left only covers the top-left of the frame.
	sc := &Scene{
		Spheres:    []geom.Sphere{{Center: geom.V(-3, 2, 4), Radius: 1.5, Color: red}},
		Background: canvas.Black,
	}
	c, _ := canvas.New(64, 36)
	g.Expect(New(DefaultViewport(), 1, math.Inf(1)).Render(context.Background(), c, sc)).To(Succeed())

	topLeft, _ := c.ColorAt(2, 2)
	bottomRight, _ := c.ColorAt(61, 33)
	g.Expect(topLeft).To(Equal(red))
	g.Expect(bottomRight).To(Equal(canvas.Black))
}

func TestRender_ParallelMatchesSerial(t *testing.T) {
	g := NewWithT(t)
	sc := DefaultScene()

	serial, _ := canvas.New(160, 90)
	parallel, _ := canvas.New(160, 90)

	tr := New(DefaultViewport(), 1, math.Inf(1))
	g.Expect(tr.Render(context.Background(), serial, sc)).To(Succeed())

	for _, workers := range []int{2, 3, 7, 200} {
		tr.Workers = workers
		parallel.Clear(canvas.Transparent)
		g.Expect(tr.Render(context.Background(), parallel, sc)).To(Succeed())
		g.Expect(bytes.Equal(serial.Pix(), parallel.Pix())).To(BeTrue(), "workers=%d", workers)
	}
}

func TestRender_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, _ := canvas.New(16, 16)
	tr := New(DefaultViewport(), 1, math.Inf(1))
	tr.Workers = 4
	if err := tr.Render(ctx, c, DefaultScene()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCanvasToViewport(t *testing.T) {
	g := NewWithT(t)
	vp := Viewport{Width: 2, Height: 1, Distance: 3}
	g.Expect(vp.CanvasToViewport(50, -25, 100, 50)).To(Equal(geom.V(1, -0.5, 3)))
	g.Expect(vp.CanvasToViewport(0, 0, 100, 50)).To(Equal(geom.V(0, 0, 3)))
}
