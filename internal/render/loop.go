package render

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/san-kum/gfx/internal/canvas"
	"github.com/san-kum/gfx/internal/config"
	"github.com/san-kum/gfx/internal/graph"
	"github.com/san-kum/gfx/internal/text"
	"github.com/san-kum/gfx/internal/tracer"
)

// Loop holds everything that survives from one frame to the next: the
// canvas, the frame-time history and the animated scene.
type Loop struct {
	cfg     *config.Config
	canvas  *canvas.Canvas
	history *graph.History
	scene   *tracer.Scene
	tracer  *tracer.Tracer
	face    text.Face
	anim    Animation
	paused  bool
	frame   int
	now     func() time.Time
}

type stage struct {
	name string
	run  func(ctx context.Context, elapsed float64) error
}

// New validates cfg and allocates the canvas. face may be nil, which
// disables the HUD text.
func New(cfg *config.Config, face text.Face) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, err := canvas.New(cfg.Canvas.Width, cfg.Canvas.Height)
	if err != nil {
		return nil, err
	}
	sc, err := cfg.BuildScene()
	if err != nil {
		return nil, err
	}
	anim := Animation{Enabled: cfg.Animation.Enabled, Sphere: cfg.Animation.Sphere, Step: cfg.Animation.Step}
	if anim.Enabled {
		if anim.Axis, err = cfg.AxisIndex(); err != nil {
			return nil, err
		}
	}

	return &Loop{
		cfg:     cfg,
		canvas:  c,
		history: graph.NewHistory(cfg.Graph.History),
		scene:   sc,
		tracer:  cfg.BuildTracer(),
		face:    face,
		anim:    anim,
		now:     time.Now,
	}, nil
}

func (l *Loop) Canvas() *canvas.Canvas  { return l.canvas }
func (l *Loop) History() *graph.History { return l.history }
func (l *Loop) Scene() *tracer.Scene    { return l.scene }
func (l *Loop) Frame() int              { return l.frame }
func (l *Loop) Paused() bool            { return l.paused }

// SetPaused stops or resumes the scene animation. Frames keep rendering.
func (l *Loop) SetPaused(p bool) { l.paused = p }

// SetClock replaces time.Now for frame timing.
func (l *Loop) SetClock(now func() time.Time) { l.now = now }

// Tick records elapsed as the last frame's duration and renders one frame.
func (l *Loop) Tick(ctx context.Context, elapsed time.Duration) error {
	secs := elapsed.Seconds()
	l.history.Push(secs)

	for _, st := range l.stages() {
		if err := st.run(ctx, secs); err != nil {
			Logger().Warn("frame failed", "frame", l.frame, "stage", st.name, "err", err)
			return fmt.Errorf("frame %d: %s: %w", l.frame, st.name, err)
		}
	}

	if !l.paused {
		l.anim.Advance(l.scene)
	}
	l.frame++
	Logger().Debug("frame", "n", l.frame, "elapsed_ms", secs*1000)
	return nil
}

// Run renders frames until pump reports quit or ctx is done, blitting each
// finished frame to display.
func (l *Loop) Run(ctx context.Context, pump Pump, display Display) error {
	w, h := l.canvas.Width(), l.canvas.Height()
	Logger().Info("render loop started", "width", w, "height", h, "spheres", len(l.scene.Spheres))

	last := l.now()
	for pump.Dispatch() {
		if err := ctx.Err(); err != nil {
			return err
		}
		now := l.now()
		elapsed := now.Sub(last)
		last = now

		if err := l.Tick(ctx, elapsed); err != nil {
			return err
		}
		if err := display.Blit(l.canvas.Pix(), w, h); err != nil {
			return fmt.Errorf("blit frame %d: %w", l.frame, err)
		}
	}

	Logger().Info("render loop stopped", "frames", l.frame)
	return nil
}

func (l *Loop) stages() []stage {
	clearStage := stage{"clear", func(context.Context, float64) error {
		l.canvas.Clear(canvas.Black)
		return nil
	}}
	graphStage := stage{"graph", l.drawGraph}
	textStage := stage{"text", l.drawText}
	trace := stage{"trace", func(ctx context.Context, _ float64) error {
		return l.tracer.Render(ctx, l.canvas, l.scene)
	}}

	if l.cfg.Render.OverlayOnTop {
		return []stage{clearStage, trace, graphStage, textStage}
	}
	return []stage{clearStage, graphStage, textStage, trace}
}

func (l *Loop) drawGraph(context.Context, float64) error {
	if !l.cfg.Graph.Enabled {
		return nil
	}
	_, err := graph.Draw(l.canvas, l.cfg.GraphArea(), l.history, l.cfg.Graph.Margin)
	return err
}

func (l *Loop) drawText(_ context.Context, elapsed float64) error {
	if !l.cfg.Text.Enabled || l.face == nil {
		return nil
	}
	lines := []string{
		fmt.Sprintf("%8.3f ms per frame", elapsed*1000),
		fmt.Sprintf("%8.3f fps", 1/elapsed),
	}
	for i, s := range lines {
		origin := image.Pt(l.cfg.Text.X, l.cfg.Text.Y+i*l.cfg.Text.LineHeight)
		if err := text.DrawString(l.canvas, l.face, s, origin); err != nil {
			return err
		}
	}
	return nil
}
