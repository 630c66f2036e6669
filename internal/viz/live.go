package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gfx/internal/render"
	"github.com/san-kum/gfx/internal/storage"
)

const (
	statsWidth  = 44
	plotSamples = 120
)

type controlKind int

const (
	ctlPause controlKind = iota
	ctlRecord
	ctlResize
)

// control is a request from the UI, applied by the render goroutine between
// frames.
type control struct {
	kind       controlKind
	cols, rows int
}

// frameMsg carries one finished frame from the render goroutine to the UI.
type frameMsg struct {
	view      string
	ms        []float64
	frame     int
	paused    bool
	recording bool
	status    string
}

// Model is the Bubble Tea side of a live session. It never touches the
// render loop directly.
type Model struct {
	title         string
	theme         int
	ctl           chan<- control
	last          frameMsg
	width, height int
}

func newModel(title, theme string, ctl chan<- control) Model {
	return Model{title: title, theme: themeIndex(theme), ctl: ctl}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.send(control{kind: ctlPause})
		case "g":
			m.send(control{kind: ctlRecord})
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.send(control{
			kind: ctlResize,
			cols: max(8, msg.Width-statsWidth-2),
			rows: max(4, msg.Height-1),
		})
	case frameMsg:
		m.last = msg
	}
	return m, nil
}

// send drops the request when the render goroutine is behind.
func (m Model) send(c control) {
	select {
	case m.ctl <- c:
	default:
	}
}

func (m Model) View() string {
	th := Themes[m.theme]
	header := lipgloss.NewStyle().Foreground(th.Primary).Bold(true).MarginBottom(1)
	label := lipgloss.NewStyle().Foreground(th.Muted).Width(12)
	value := lipgloss.NewStyle().Foreground(th.Text)
	plot := lipgloss.NewStyle().Foreground(th.Secondary).Padding(1, 0)
	help := lipgloss.NewStyle().Foreground(th.Muted).MarginTop(1)
	stats := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(th.Muted).
		Padding(1, 2).
		Width(statsWidth)

	f := m.last
	if f.view == "" {
		return header.Render(strings.ToUpper(m.title)) + "\nwaiting for first frame..."
	}

	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(m.title)) + "\n")

	status := lipgloss.NewStyle().Foreground(th.Success).Bold(true).Render("RUNNING")
	if f.paused {
		status = lipgloss.NewStyle().Foreground(th.Warning).Bold(true).Render("PAUSED")
	}
	if f.recording {
		status += " " + lipgloss.NewStyle().Foreground(th.Error).Bold(true).Render("● REC")
	}
	s.WriteString(status + "\n")

	if len(f.ms) > 1 {
		chart := asciigraph.Plot(f.ms, asciigraph.Height(6), asciigraph.Width(30), asciigraph.Caption("ms per frame"))
		s.WriteString(plot.Render(chart) + "\n")
	}

	ms := 0.0
	if len(f.ms) > 0 {
		ms = f.ms[len(f.ms)-1]
	}
	fps := 0.0
	if ms > 0 {
		fps = 1000 / ms
	}
	s.WriteString(label.Render("Frame") + value.Render(fmt.Sprintf("%d", f.frame)) + "\n")
	s.WriteString(label.Render("Frame time") + value.Render(fmt.Sprintf("%.3f ms", ms)) + "\n")
	s.WriteString(label.Render("FPS") + value.Render(fmt.Sprintf("%.1f", fps)) + "\n")
	s.WriteString(label.Render("Theme") + value.Render(th.Name) + "\n")
	if f.status != "" {
		s.WriteString("\n" + value.Render(f.status) + "\n")
	}
	s.WriteString(help.Render("SP:Pause T:Theme G:Record Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, f.view, stats.Render(s.String()))
}

// Session is the render side of a live run: the loop's pump and display.
type Session struct {
	loop     *render.Loop
	term     *Terminal
	ctl      <-chan control
	done     <-chan struct{}
	tick     <-chan time.Time
	send     func(tea.Msg)
	rec      *storage.Recorder
	gifPath  string
	gifWidth int
	status   string
}

func (s *Session) Dispatch() bool {
	select {
	case <-s.done:
		return false
	case <-s.tick:
	}
	for {
		select {
		case c := <-s.ctl:
			s.apply(c)
		default:
			return true
		}
	}
}

func (s *Session) apply(c control) {
	switch c.kind {
	case ctlPause:
		s.loop.SetPaused(!s.loop.Paused())
	case ctlRecord:
		s.toggleRecording()
	case ctlResize:
		s.term.Resize(c.cols, c.rows)
	}
}

func (s *Session) toggleRecording() {
	if s.rec == nil {
		s.rec = storage.NewRecorder(s.gifWidth, 0)
		s.status = "recording to " + s.gifPath
		return
	}
	if err := s.saveRecording(); err != nil {
		s.status = "gif failed: " + err.Error()
	}
}

func (s *Session) saveRecording() error {
	if s.rec == nil {
		return nil
	}
	n := s.rec.Len()
	err := s.rec.SaveGIF(s.gifPath)
	s.rec = nil
	if err != nil {
		render.Logger().Warn("gif save failed", "path", s.gifPath, "err", err)
		return err
	}
	s.status = fmt.Sprintf("saved %s (%d frames)", s.gifPath, n)
	render.Logger().Info("gif saved", "path", s.gifPath, "frames", n)
	return nil
}

func (s *Session) Blit(pix []byte, width, height int) error {
	if err := s.term.Blit(pix, width, height); err != nil {
		return err
	}
	if s.rec != nil {
		s.rec.Capture(s.loop.Canvas())
	}

	h := s.loop.History()
	n := min(h.Len(), plotSamples)
	ms := make([]float64, n)
	for i := range ms {
		ms[i] = h.Recent(n-1-i) * 1000
	}
	s.send(frameMsg{
		view:      s.term.String(),
		ms:        ms,
		frame:     s.loop.Frame(),
		paused:    s.loop.Paused(),
		recording: s.rec != nil,
		status:    s.status,
	})
	return nil
}

// Close saves a recording still in progress.
func (s *Session) Close() error { return s.saveRecording() }

type LiveOptions struct {
	Title    string
	Theme    string
	FPS      int
	GIFPath  string
	GIFWidth int
}

// RunLive drives loop at opts.FPS and shows it until the user quits or ctx
// is done.
func RunLive(ctx context.Context, loop *render.Loop, opts LiveOptions) error {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "gfx.gif"
	}

	ctl := make(chan control, 16)
	done := make(chan struct{})
	p := tea.NewProgram(newModel(opts.Title, opts.Theme, ctl), tea.WithAltScreen())

	ticker := time.NewTicker(time.Second / time.Duration(opts.FPS))
	defer ticker.Stop()

	s := &Session{
		loop:     loop,
		term:     NewTerminal(DefaultCols, DefaultRows),
		ctl:      ctl,
		done:     done,
		tick:     ticker.C,
		send:     p.Send,
		gifPath:  opts.GIFPath,
		gifWidth: opts.GIFWidth,
	}

	uiErr := make(chan error, 1)
	go func() {
		_, err := p.Run()
		close(done)
		uiErr <- err
	}()

	err := loop.Run(ctx, s, s)
	p.Quit()
	return errors.Join(err, <-uiErr, s.Close())
}
