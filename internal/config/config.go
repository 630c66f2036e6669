package config

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gfx/internal/canvas"
	"github.com/san-kum/gfx/internal/geom"
	"github.com/san-kum/gfx/internal/graph"
	"github.com/san-kum/gfx/internal/text"
	"github.com/san-kum/gfx/internal/tracer"
)

const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultTMin   = 1.0
	DefaultFPS    = 30
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Canvas    CanvasConfig    `yaml:"canvas"`
	Viewport  ViewportConfig  `yaml:"viewport"`
	Trace     TraceConfig     `yaml:"trace"`
	Scene     SceneConfig     `yaml:"scene"`
	Animation AnimationConfig `yaml:"animation"`
	Graph     GraphConfig     `yaml:"graph"`
	Text      TextConfig      `yaml:"text"`
	Render    RenderConfig    `yaml:"render"`
}

type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type ViewportConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Distance float64 `yaml:"distance"`
}

type TraceConfig struct {
	TMin    float64 `yaml:"t_min"`
	TMax    float64 `yaml:"t_max"`
	Workers int     `yaml:"workers"`
}

type SceneConfig struct {
	Origin     [3]float64     `yaml:"origin,flow"`
	Background string         `yaml:"background"`
	Spheres    []SphereConfig `yaml:"spheres"`
}

type SphereConfig struct {
	Center [3]float64 `yaml:"center,flow"`
	Radius float64    `yaml:"radius"`
	Color  string     `yaml:"color"`
}

type AnimationConfig struct {
	Enabled bool    `yaml:"enabled"`
	Sphere  int     `yaml:"sphere"`
	Axis    string  `yaml:"axis"`
	Step    float64 `yaml:"step"`
}

type GraphConfig struct {
	Enabled bool `yaml:"enabled"`
	X       int  `yaml:"x"`
	Y       int  `yaml:"y"`
	Width   int  `yaml:"width"`
	Height  int  `yaml:"height"`
	Margin  int  `yaml:"margin"`
	History int  `yaml:"history"`
}

type TextConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Size       float64 `yaml:"size"`
	X          int     `yaml:"x"`
	Y          int     `yaml:"y"`
	LineHeight int     `yaml:"line_height"`
}

type RenderConfig struct {
	OverlayOnTop bool `yaml:"overlay_on_top"`
	FPS          int  `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Canvas:   CanvasConfig{Width: DefaultWidth, Height: DefaultHeight},
		Viewport: ViewportConfig{Width: 16.0 / 9.0, Height: 1, Distance: 1},
		Trace:    TraceConfig{TMin: DefaultTMin, TMax: math.Inf(1), Workers: 1},
		Scene:    classicScene(),
		Animation: AnimationConfig{
			Enabled: true,
			Sphere:  0,
			Axis:    "z",
			Step:    -0.005,
		},
		Graph: GraphConfig{
			Enabled: true,
			X:       0,
			Y:       50,
			Width:   300,
			Height:  200,
			Margin:  graph.DefaultMargin,
			History: graph.DefaultCapacity,
		},
		Text: TextConfig{
			Enabled:    true,
			Size:       text.DefaultSize,
			LineHeight: 20,
		},
		Render: RenderConfig{FPS: DefaultFPS},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every value the renderer relies on.
func (c *Config) Validate() error {
	var errs []error
	bad := func(field, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrInvalidConfig, field, fmt.Sprintf(format, args...)))
	}

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		bad("canvas", "dimensions must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 || c.Viewport.Distance <= 0 {
		bad("viewport", "width, height and distance must be positive")
	}
	if !(c.Trace.TMin < c.Trace.TMax) {
		bad("trace", "t_min %v must be below t_max %v", c.Trace.TMin, c.Trace.TMax)
	}
	if c.Trace.Workers < 0 {
		bad("trace.workers", "must not be negative")
	}

	if _, err := ParseColor(c.Scene.Background); err != nil {
		bad("scene.background", "%v", err)
	}
	for i, s := range c.Scene.Spheres {
		if !(s.Radius > 0) {
			bad(fmt.Sprintf("scene.spheres[%d].radius", i), "must be positive, got %v", s.Radius)
		}
		if _, err := ParseColor(s.Color); err != nil {
			bad(fmt.Sprintf("scene.spheres[%d].color", i), "%v", err)
		}
	}

	if c.Animation.Enabled {
		if c.Animation.Sphere < 0 || c.Animation.Sphere >= len(c.Scene.Spheres) {
			bad("animation.sphere", "index %d outside %d spheres", c.Animation.Sphere, len(c.Scene.Spheres))
		}
		if _, err := axisIndex(c.Animation.Axis); err != nil {
			bad("animation.axis", "%v", err)
		}
	}

	if c.Graph.History <= 0 {
		bad("graph.history", "must be positive")
	}
	if c.Graph.Enabled {
		area := c.GraphArea()
		if area.Dx() <= 2*c.Graph.Margin || area.Dy() <= 2*c.Graph.Margin {
			bad("graph", "%dx%d too small for margin %d", area.Dx(), area.Dy(), c.Graph.Margin)
		}
		if area.Min.X < 0 || area.Min.Y < 0 || area.Max.X >= c.Canvas.Width || area.Max.Y >= c.Canvas.Height {
			bad("graph", "area %v does not fit the %dx%d canvas", area, c.Canvas.Width, c.Canvas.Height)
		}
	}

	if c.Text.Enabled && !(c.Text.Size > 0) {
		bad("text.size", "must be positive")
	}
	if c.Render.FPS <= 0 {
		bad("render.fps", "must be positive")
	}

	return errors.Join(errs...)
}

// GraphArea is the graph border rectangle; its Max corner is drawn too.
func (c *Config) GraphArea() image.Rectangle {
	g := c.Graph
	return image.Rect(g.X, g.Y, g.X+g.Width, g.Y+g.Height)
}

func (c *Config) BuildViewport() tracer.Viewport {
	return tracer.Viewport{Width: c.Viewport.Width, Height: c.Viewport.Height, Distance: c.Viewport.Distance}
}

func (c *Config) BuildTracer() *tracer.Tracer {
	t := tracer.New(c.BuildViewport(), c.Trace.TMin, c.Trace.TMax)
	t.Workers = c.Trace.Workers
	return t
}

func (c *Config) BuildScene() (*tracer.Scene, error) {
	bg, err := ParseColor(c.Scene.Background)
	if err != nil {
		return nil, fmt.Errorf("scene.background: %w", err)
	}
	sc := &tracer.Scene{
		Origin:     vec(c.Scene.Origin),
		Background: bg,
		Spheres:    make([]geom.Sphere, 0, len(c.Scene.Spheres)),
	}
	for i, s := range c.Scene.Spheres {
		col, err := ParseColor(s.Color)
		if err != nil {
			return nil, fmt.Errorf("scene.spheres[%d].color: %w", i, err)
		}
		sc.Spheres = append(sc.Spheres, geom.Sphere{Center: vec(s.Center), Radius: s.Radius, Color: col})
	}
	return sc, nil
}

// AxisIndex returns the animated axis as 0, 1 or 2.
func (c *Config) AxisIndex() (int, error) {
	return axisIndex(c.Animation.Axis)
}

// ParseColor accepts "#rrggbb" or "#rgb"; the result is opaque.
func ParseColor(s string) (canvas.Color, error) {
	col, err := colorful.Hex(normalizeHex(s))
	if err != nil {
		return canvas.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return canvas.RGBA(r, g, b, 255), nil
}

func normalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return strings.ToLower(s)
}

func axisIndex(axis string) (int, error) {
	switch strings.ToLower(axis) {
	case "x":
		return 0, nil
	case "y":
		return 1, nil
	case "z":
		return 2, nil
	}
	return 0, fmt.Errorf("unknown axis %q", axis)
}

func vec(v [3]float64) geom.Vec3 {
	return geom.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
