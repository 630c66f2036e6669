package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gfx/internal/canvas"
	"github.com/san-kum/gfx/internal/config"
	"github.com/san-kum/gfx/internal/geom"
	"github.com/san-kum/gfx/internal/text"
	"github.com/san-kum/gfx/internal/tracer"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Canvas.Width, cfg.Canvas.Height = 320, 260
	return cfg
}

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

var _ = Describe("Loop", func() {
	var (
		cfg  *config.Config
		face *text.OpenTypeFace
	)

	BeforeEach(func() {
		cfg = smallConfig()
		var err error
		face, err = text.DefaultFace(text.DefaultSize)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(face.Close)
	})

	Describe("New", func() {
		It("rejects an invalid config", func() {
			cfg.Canvas.Width = 0
			_, err := New(cfg, face)
			Expect(err).To(MatchError(config.ErrInvalidConfig))
		})

		It("allocates a zeroed canvas of the configured size", func() {
			loop, err := New(cfg, face)
			Expect(err).NotTo(HaveOccurred())
			Expect(loop.Canvas().Width()).To(Equal(320))
			Expect(loop.Canvas().Height()).To(Equal(260))
			Expect(bytes.Count(loop.Canvas().Pix(), []byte{0})).To(Equal(320 * 260 * 4))
		})
	})

	Describe("Tick", func() {
		It("records the frame time and advances the animated sphere", func() {
			loop, err := New(cfg, face)
			Expect(err).NotTo(HaveOccurred())
			start := loop.Scene().Spheres[0].Center

			Expect(loop.Tick(context.Background(), 16*time.Millisecond)).To(Succeed())
			Expect(loop.Tick(context.Background(), 20*time.Millisecond)).To(Succeed())

			Expect(loop.Frame()).To(Equal(2))
			Expect(loop.History().Values()).To(Equal([]float64{0.016, 0.020}))
			Expect(loop.Scene().Spheres[0].Center.Z).To(BeNumerically("~", start.Z+2*cfg.Animation.Step, 1e-12))
			Expect(loop.Scene().Spheres[0].Center.X).To(Equal(start.X))
		})

		It("keeps the scene still while paused", func() {
			loop, _ := New(cfg, face)
			start := loop.Scene().Spheres[0].Center
			loop.SetPaused(true)
			Expect(loop.Tick(context.Background(), time.Millisecond)).To(Succeed())
			Expect(loop.Scene().Spheres[0].Center).To(Equal(start))
			Expect(loop.Paused()).To(BeTrue())
		})

		It("lets the trace cover the overlay in the default order", func() {
			cfg = config.GetPreset("empty")
			cfg.Canvas.Width, cfg.Canvas.Height = 320, 260
			loop, _ := New(cfg, face)
			Expect(loop.Tick(context.Background(), 16*time.Millisecond)).To(Succeed())

			for _, p := range []image.Point{{150, 50}, {0, 150}, {5, 5}} {
				col, _ := loop.Canvas().ColorAt(p.X, p.Y)
				Expect(col).To(Equal(canvas.Black))
			}
		})

		It("draws graph and text over the scene when overlay_on_top is set", func() {
			cfg = config.GetPreset("empty")
			cfg.Canvas.Width, cfg.Canvas.Height = 320, 260
			cfg.Render.OverlayOnTop = true
			loop, _ := New(cfg, face)
			Expect(loop.Tick(context.Background(), 16*time.Millisecond)).To(Succeed())

			for _, p := range []image.Point{{150, 50}, {0, 150}, {300, 250}} {
				col, _ := loop.Canvas().ColorAt(p.X, p.Y)
				Expect(col).To(Equal(canvas.White), "border pixel %v", p)
			}

			lit := 0
			for y := 0; y < 40; y++ {
				for x := 0; x < 320; x++ {
					if col, _ := loop.Canvas().ColorAt(x, y); col.R > 0 {
						lit++
					}
				}
			}
			Expect(lit).To(BeNumerically(">", 50), "HUD text in the top rows")
		})

		It("skips text without a face", func() {
			cfg.Render.OverlayOnTop = true
			loop, err := New(cfg, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(loop.Tick(context.Background(), time.Millisecond)).To(Succeed())
		})
	})

	Describe("Run", func() {
		It("renders until the pump stops and blits every frame", func() {
			loop, _ := New(cfg, face)
			loop.SetClock(fakeClock(10 * time.Millisecond))

			blits := 0
			display := DisplayFunc(func(pix []byte, w, h int) error {
				blits++
				Expect(w).To(Equal(320))
				Expect(h).To(Equal(260))
				Expect(pix).To(HaveLen(w * h * canvas.BytesPerPixel))
				return nil
			})

			Expect(loop.Run(context.Background(), FrameLimit(3), display)).To(Succeed())
			Expect(blits).To(Equal(3))
			Expect(loop.Frame()).To(Equal(3))
			Expect(loop.History().Values()).To(Equal([]float64{0.01, 0.01, 0.01}))
		})

		It("stops when the context is cancelled", func() {
			loop, _ := New(cfg, face)
			ctx, cancel := context.WithCancel(context.Background())
			blits := 0
			display := DisplayFunc(func([]byte, int, int) error {
				blits++
				if blits == 2 {
					cancel()
				}
				return nil
			})

			err := loop.Run(ctx, PumpFunc(func() bool { return true }), display)
			Expect(err).To(MatchError(context.Canceled))
			Expect(blits).To(Equal(2))
		})

		It("returns display errors", func() {
			loop, _ := New(cfg, face)
			boom := errors.New("surface lost")
			err := loop.Run(context.Background(), FrameLimit(5), DisplayFunc(func([]byte, int, int) error {
				return boom
			}))
			Expect(err).To(MatchError(boom))
			Expect(loop.Frame()).To(Equal(1))
		})

		It("logs start and stop through the configured logger", func() {
			var buf bytes.Buffer
			SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
			DeferCleanup(SetLogger, (*slog.Logger)(nil))

			loop, _ := New(cfg, face)
			Expect(loop.Run(context.Background(), FrameLimit(1), DisplayFunc(func([]byte, int, int) error { return nil }))).To(Succeed())
			Expect(buf.String()).To(ContainSubstring("render loop started"))
			Expect(buf.String()).To(ContainSubstring("render loop stopped"))
		})
	})
})

var _ = Describe("Animation", func() {
	It("moves only the chosen sphere along the chosen axis", func() {
		sc := &tracer.Scene{Spheres: []geom.Sphere{
			{Center: geom.V(0, 0, 3), Radius: 1},
			{Center: geom.V(1, 1, 1), Radius: 1},
		}}
		Animation{Enabled: true, Sphere: 1, Axis: 1, Step: -0.5}.Advance(sc)
		Expect(sc.Spheres[0].Center).To(Equal(geom.V(0, 0, 3)))
		Expect(sc.Spheres[1].Center).To(Equal(geom.V(1, 0.5, 1)))
	})

	It("ignores an index outside the scene", func() {
		sc := &tracer.Scene{}
		Animation{Enabled: true, Sphere: 3, Axis: 0, Step: 1}.Advance(sc)
		Expect(sc.Spheres).To(BeEmpty())
	})
})

var _ = Describe("FrameLimit", func() {
	It("allows exactly n frames", func() {
		p := FrameLimit(2)
		Expect(p.Dispatch()).To(BeTrue())
		Expect(p.Dispatch()).To(BeTrue())
		Expect(p.Dispatch()).To(BeFalse())
	})
})
