package viz

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gfx/internal/config"
)

// ErrNoSelection is returned when the picker is closed without choosing.
var ErrNoSelection = errors.New("no preset selected")

var presetInfo = map[string]string{
	"classic": "three spheres over a yellow floor",
	"single":  "one sphere drifting sideways",
	"row":     "five spheres, middle one bobbing",
	"empty":   "background only",
}

type picker struct {
	cursor  int
	presets []string
	chosen  string
}

func newPicker(presets []string) picker {
	return picker{presets: presets}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.presets) > 0 {
			m.chosen = m.presets[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m picker) View() string {
	var (
		b      strings.Builder
		title  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
		sub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
		marker = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
		active = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
		desc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
		idle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
		key    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	)

	b.WriteString("\n\n    " + title.Render("GFX") + "\n    " + sub.Render("software ray tracer") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", marker.Render("▸"), active.Render(fmt.Sprintf("%-10s", name)), desc.Render(presetInfo[name])))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", idle.Render(fmt.Sprintf("  %-10s", name)), idle.Render(presetInfo[name])))
		}
	}
	b.WriteString("\n    " + key.Render("j/k") + idle.Render(" navigate  ") + key.Render("enter") + idle.Render(" select  ") + key.Render("q") + idle.Render(" quit") + "\n")
	return b.String()
}

// PickPreset lets the user choose a scene preset interactively.
func PickPreset() (string, error) {
	final, err := tea.NewProgram(newPicker(config.ListPresets())).Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(picker); ok && m.chosen != "" {
		return m.chosen, nil
	}
	return "", ErrNoSelection
}
