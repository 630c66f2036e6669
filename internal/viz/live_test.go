package viz

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/gfx/internal/config"
	"github.com/san-kum/gfx/internal/render"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testLoop(t *testing.T) *render.Loop {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Canvas.Width, cfg.Canvas.Height = 32, 18
	cfg.Graph.Enabled = false
	cfg.Text.Enabled = false
	loop, err := render.New(cfg, nil)
	if err != nil {
		t.Fatalf("loop: %v", err)
	}
	return loop
}

func TestModelKeys(t *testing.T) {
	ctl := make(chan control, 4)
	m := newModel("classic", "retro", ctl)
	if Themes[m.theme].Name != "retro" {
		t.Fatalf("expected retro theme, got %s", Themes[m.theme].Name)
	}

	next, _ := m.Update(runes(" "))
	m = next.(Model)
	next, _ = m.Update(runes("g"))
	m = next.(Model)
	if c := <-ctl; c.kind != ctlPause {
		t.Errorf("expected pause request, got %v", c.kind)
	}
	if c := <-ctl; c.kind != ctlRecord {
		t.Errorf("expected record request, got %v", c.kind)
	}

	for range Themes {
		next, _ = m.Update(runes("t"))
		m = next.(Model)
	}
	if Themes[m.theme].Name != "retro" {
		t.Errorf("cycling through every theme should wrap, got %s", Themes[m.theme].Name)
	}

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelResize(t *testing.T) {
	ctl := make(chan control, 1)
	m := newModel("x", "", ctl)
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})

	c := <-ctl
	if c.kind != ctlResize || c.cols != 140-statsWidth-2 || c.rows != 39 {
		t.Errorf("unexpected resize request %+v", c)
	}

	// full channel: request dropped rather than blocking the UI
	m.Update(tea.WindowSizeMsg{Width: 10, Height: 2})
	m.Update(tea.WindowSizeMsg{Width: 10, Height: 2})
	if c := <-ctl; c.cols != 8 || c.rows != 4 {
		t.Errorf("expected clamped 8x4, got %dx%d", c.cols, c.rows)
	}
}

func TestModelView(t *testing.T) {
	m := newModel("classic", "minimal", make(chan control))
	if !strings.Contains(m.View(), "waiting for first frame") {
		t.Error("expected placeholder before the first frame")
	}

	next, _ := m.Update(frameMsg{view: "▀▀", ms: []float64{20, 16, 16}, frame: 3, paused: true, recording: true})
	out := next.(Model).View()
	for _, want := range []string{"CLASSIC", "PAUSED", "REC", "16.000 ms", "62.5", "minimal", "ms per frame"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func newTestSession(t *testing.T, loop *render.Loop) (*Session, chan control, chan time.Time, chan struct{}, *[]frameMsg) {
	ctl := make(chan control, 4)
	tick := make(chan time.Time, 4)
	done := make(chan struct{})
	var msgs []frameMsg
	s := &Session{
		loop:    loop,
		term:    NewTerminal(8, 3),
		ctl:     ctl,
		done:    done,
		tick:    tick,
		send:    func(m tea.Msg) { msgs = append(msgs, m.(frameMsg)) },
		gifPath: filepath.Join(t.TempDir(), "live.gif"),
	}
	return s, ctl, tick, done, &msgs
}

func TestSessionDispatch(t *testing.T) {
	loop := testLoop(t)
	s, ctl, tick, done, _ := newTestSession(t, loop)

	ctl <- control{kind: ctlPause}
	ctl <- control{kind: ctlResize, cols: 20, rows: 6}
	tick <- time.Now()
	if !s.Dispatch() {
		t.Fatal("expected dispatch to continue")
	}
	if !loop.Paused() {
		t.Error("expected loop to be paused")
	}
	if c, r := s.term.Size(); c != 20 || r != 6 {
		t.Errorf("expected 20x6 terminal, got %dx%d", c, r)
	}

	close(done)
	if s.Dispatch() {
		t.Error("expected dispatch to stop once the UI is gone")
	}
}

func TestSessionBlitAndRecord(t *testing.T) {
	loop := testLoop(t)
	s, _, _, _, msgs := newTestSession(t, loop)

	s.apply(control{kind: ctlRecord})
	if err := loop.Run(context.Background(), render.FrameLimit(2), s); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(*msgs) != 2 {
		t.Fatalf("expected 2 frame messages, got %d", len(*msgs))
	}
	last := (*msgs)[1]
	if last.frame != 2 || len(last.ms) != 2 || !last.recording {
		t.Errorf("unexpected frame message %+v", last)
	}
	if strings.Count(last.view, halfBlock) != 24 {
		t.Errorf("expected 24 cells in view")
	}

	s.apply(control{kind: ctlRecord})
	if s.rec != nil {
		t.Error("expected recording to stop")
	}
	if !strings.Contains(s.status, "(2 frames)") {
		t.Errorf("unexpected status %q", s.status)
	}
	if _, err := os.Stat(s.gifPath); err != nil {
		t.Errorf("expected gif on disk: %v", err)
	}
}

func TestSessionCloseWithoutRecording(t *testing.T) {
	s, _, _, _, _ := newTestSession(t, testLoop(t))
	if err := s.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	if _, err := os.Stat(s.gifPath); !os.IsNotExist(err) {
		t.Error("expected no gif without a recording")
	}
}
