package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gfx/internal/canvas"
	"github.com/san-kum/gfx/internal/config"
	"github.com/san-kum/gfx/internal/export"
	"github.com/san-kum/gfx/internal/render"
	"github.com/san-kum/gfx/internal/storage"
	"github.com/san-kum/gfx/internal/text"
	"github.com/san-kum/gfx/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	width      int
	height     int
	workers    int
	logLevel   string
	logFile    string
	// live
	frameRate int
	theme     string
	gifPath   string
	gifWidth  int
	pick      bool
	// render
	frames  int
	runName string
	saveGIF bool
	saveSVG bool
	// trace
	outFile string
	// bench
	benchRuns int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "gfx",
		Short:        "software canvas and ray tracer",
		SilenceUsage: true,
		RunE:         runLive,
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel, logFile)
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gfx", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "classic", "scene preset")
	rootCmd.PersistentFlags().IntVar(&width, "width", 0, "canvas width (overrides config)")
	rootCmd.PersistentFlags().IntVar(&height, "height", 0, "canvas height (overrides config)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "trace workers, 0 uses every CPU (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "off", "log level: off, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs here instead of stderr")
	addLiveFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "render continuously in the terminal",
		RunE:  runLive,
	}
	addLiveFlags(liveCmd)

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames headless and store the run",
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&frames, "frames", 60, "number of frames")
	renderCmd.Flags().StringVar(&runName, "name", "", "run id (default: preset and timestamp)")
	renderCmd.Flags().BoolVar(&saveGIF, "gif", false, "also save every frame as an animated GIF")
	renderCmd.Flags().BoolVar(&saveSVG, "svg", false, "also export the frame-time graph as SVG")
	renderCmd.Flags().IntVar(&gifWidth, "gif-width", 320, "GIF frame width")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "trace the scene once, without overlays, to a PNG",
		RunE:  runTrace,
	}
	traceCmd.Flags().StringVarP(&outFile, "out", "o", "trace.png", "output PNG")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time full-frame traces per worker count",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchRuns, "runs", 5, "frames per worker count")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scene presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective config as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's frame times",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(liveCmd, renderCmd, traceCmd, benchCmd, presetsCmd, configCmd, listCmd, plotCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLiveFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate (default from config)")
	cmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "stats panel theme: "+strings.Join(viz.ThemeNames(), ", "))
	cmd.Flags().StringVar(&gifPath, "gif", "gfx.gif", "where G saves the recording")
	cmd.Flags().IntVar(&gifWidth, "gif-width", 320, "GIF frame width")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose the preset interactively")
}

func setupLogging(level, path string) error {
	if level == "off" {
		render.SetLogger(nil)
		return nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}

	var out io.Writer = os.Stderr
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		out = f
	}
	render.SetLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// loadConfig starts from the preset, replaces it with the config file when
// given, then applies flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Canvas.Width = width
	}
	if flags.Changed("height") {
		cfg.Canvas.Height = height
	}
	if flags.Changed("workers") {
		cfg.Trace.Workers = workers
	}
	if flags.Changed("fps") {
		cfg.Render.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLoop(cfg *config.Config) (*render.Loop, func(), error) {
	var face text.Face
	release := func() {}
	if cfg.Text.Enabled {
		f, err := text.DefaultFace(cfg.Text.Size)
		if err != nil {
			return nil, nil, err
		}
		face, release = f, func() { f.Close() }
	}
	loop, err := render.New(cfg, face)
	if err != nil {
		release()
		return nil, nil, err
	}
	return loop, release, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runLive(cmd *cobra.Command, args []string) error {
	if pick {
		chosen, err := viz.PickPreset()
		if errors.Is(err, viz.ErrNoSelection) {
			return nil
		}
		if err != nil {
			return err
		}
		preset = chosen
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	loop, release, err := newLoop(cfg)
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := signalContext()
	defer cancel()

	err = viz.RunLive(ctx, loop, viz.LiveOptions{
		Title:    preset,
		Theme:    theme,
		FPS:      cfg.Render.FPS,
		GIFPath:  gifPath,
		GIFWidth: gifWidth,
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runRender(cmd *cobra.Command, args []string) error {
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	loop, release, err := newLoop(cfg)
	if err != nil {
		return err
	}
	defer release()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID := runName
	if runID == "" {
		runID = storage.NewRunID(preset)
	}

	var rec *storage.Recorder
	if saveGIF {
		rec = storage.NewRecorder(gifWidth, 0)
	}
	display := render.DisplayFunc(func([]byte, int, int) error {
		if rec != nil {
			rec.Capture(loop.Canvas())
		}
		return nil
	})

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	if err := loop.Run(ctx, render.FrameLimit(frames), display); err != nil {
		return err
	}
	elapsed := time.Since(start)

	framePath, err := st.SaveFrame(runID, "frame", loop.Canvas())
	if err != nil {
		return err
	}
	meta := storage.RunMetadata{
		ID:      runID,
		Preset:  preset,
		Width:   cfg.Canvas.Width,
		Height:  cfg.Canvas.Height,
		Frames:  loop.Frame(),
		Workers: cfg.Trace.Workers,
		Spheres: len(loop.Scene().Spheres),
	}
	if err := st.SaveRun(meta, loop.History()); err != nil {
		return err
	}
	if rec != nil {
		if err := rec.SaveGIF(filepath.Join(st.Dir(runID), "frames.gif")); err != nil {
			return err
		}
	}
	if saveSVG {
		svg := export.GraphSVG(loop.History(), cfg.Graph.Width, cfg.Graph.Height, cfg.Graph.Margin)
		if _, err := st.SaveFile(runID, "frametimes.svg", []byte(svg)); err != nil {
			return err
		}
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("frames: %d in %v (%.1f fps)\n", loop.Frame(), elapsed.Round(time.Millisecond), float64(loop.Frame())/elapsed.Seconds())
	fmt.Printf("last frame: %s\n", framePath)
	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	c, err := canvas.New(cfg.Canvas.Width, cfg.Canvas.Height)
	if err != nil {
		return err
	}
	sc, err := cfg.BuildScene()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	if err := cfg.BuildTracer().Render(ctx, c, sc); err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(filepath.Dir(outFile))
	path, err := st.SaveFrame("", strings.TrimSuffix(filepath.Base(outFile), ".png"), c)
	if err != nil {
		return err
	}
	fmt.Printf("traced %dx%d in %v: %s\n", c.Width(), c.Height(), elapsed.Round(time.Microsecond), path)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	c, err := canvas.New(cfg.Canvas.Width, cfg.Canvas.Height)
	if err != nil {
		return err
	}
	sc, err := cfg.BuildScene()
	if err != nil {
		return err
	}

	counts := []int{1}
	for n := 2; n < runtime.NumCPU(); n *= 2 {
		counts = append(counts, n)
	}
	if n := runtime.NumCPU(); n > 1 {
		counts = append(counts, n)
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("benchmarking %s at %dx%d, %d spheres\n\n", preset, c.Width(), c.Height(), len(sc.Spheres))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKERS\tFRAMES\tTIME\tMS/FRAME\tFPS\tSPEEDUP")

	var base float64
	for _, n := range counts {
		tr := cfg.BuildTracer()
		tr.Workers = n

		start := time.Now()
		for i := 0; i < benchRuns; i++ {
			if err := tr.Render(ctx, c, sc); err != nil {
				return err
			}
		}
		elapsed := time.Since(start)

		perFrame := elapsed.Seconds() / float64(benchRuns)
		if base == 0 {
			base = perFrame
		}
		fmt.Fprintf(w, "%d\t%d\t%v\t%.2f\t%.1f\t%.2fx\n",
			n, benchRuns, elapsed.Round(time.Millisecond), perFrame*1000, 1/perFrame, base/perFrame)
	}

	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if err := config.Save(args[0], cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", args[0])
		return nil
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSIZE\tFRAMES\tMEAN\tFPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%.2fms\t%.1f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Frames,
			run.Metrics["mean_ms"],
			run.Metrics["mean_fps"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	times, err := st.LoadFrameTimes(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	ms := make([]float64, len(times))
	for i, t := range times {
		ms[i] = t * 1000
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("frames: %d\n\n", len(ms))
	fmt.Println(asciigraph.Plot(ms,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("ms per frame"),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
