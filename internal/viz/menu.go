package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/sim"
)

var presetInfo = map[string]string{
	"default": "hanging sheet",
	"small":   "quick to tear",
	"silk":    "light and loose",
	"canvas":  "stiff and heavy",
	"fragile": "tears on its own",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// tunable lists the knobs the config screen can edit, in display order.
var tunable = []string{"cols", "rows", "spacing", "gravity", "iterations", "stretch_limit"}

type menu struct {
	state, cursor int
	presets       []string
	selected      string
	cfg           *config.Config
	paramCursor   int
	theme         string
	live          Model
	err           error
}

func newMenu(theme string) *menu {
	return &menu{state: stateMenu, presets: config.ListPresets(), theme: theme}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(key)
		case stateConfig:
			return m.configKey(key)
		}
	}
	return m, nil
}

func (m menu) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
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
		m.selected = m.presets[m.cursor]
		m.cfg = config.GetPreset(m.selected)
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m menu) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(tunable)-1 {
			m.paramCursor++
		}
	case "left", "h":
		adjust(m.cfg, tunable[m.paramCursor], -1)
	case "right", "l":
		adjust(m.cfg, tunable[m.paramCursor], 1)
	case "s", "enter":
		return m.start()
	}
	return m, nil
}

func (m menu) start() (tea.Model, tea.Cmd) {
	if err := m.cfg.Validate(); err != nil {
		m.err = err
		return m, nil
	}
	s, err := sim.New(m.cfg.SimConfig())
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live = NewModel(s, m.selected)
	m.live.SetTheme(m.theme)
	m.state = stateSim
	return m, m.live.Init()
}

func paramValue(cfg *config.Config, name string) float64 {
	switch name {
	case "cols":
		return float64(cfg.Grid.Cols)
	case "rows":
		return float64(cfg.Grid.Rows)
	case "spacing":
		return cfg.Grid.Spacing
	case "gravity":
		return cfg.Physics.Gravity
	case "iterations":
		return float64(cfg.Solver.Iterations)
	case "stretch_limit":
		return cfg.Solver.StretchLimit
	}
	return 0
}

func adjust(cfg *config.Config, name string, dir int) {
	d := float64(dir)
	switch name {
	case "cols":
		cfg.Grid.Cols = max(1, cfg.Grid.Cols+5*dir)
	case "rows":
		cfg.Grid.Rows = max(1, cfg.Grid.Rows+5*dir)
	case "spacing":
		cfg.Grid.Spacing = max(1, cfg.Grid.Spacing+d)
	case "gravity":
		cfg.Physics.Gravity = max(0, cfg.Physics.Gravity+0.05*d)
	case "iterations":
		cfg.Solver.Iterations = max(1, cfg.Solver.Iterations+dir)
	case "stretch_limit":
		cfg.Solver.StretchLimit = max(1.5, cfg.Solver.StretchLimit+0.5*d)
	}
}

func (m menu) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View()
	}
	return ""
}

func (m menu) viewMenu() string {
	st := GetTheme(m.theme).styles()
	var b strings.Builder
	b.WriteString("\n\n    " + st.header.Render("CLOTHSIM") + "\n    " + st.muted.Render("tearable cloth") + "\n\n")
	for i, name := range m.presets {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", st.key.Render("▸"), st.value.Bold(true).Render(fmt.Sprintf("%-10s", name)), st.key.Render(presetInfo[name])))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", st.muted.Render(fmt.Sprintf("%-10s", name)), st.muted.Render(presetInfo[name])))
		}
	}
	b.WriteString("\n    " + hints(st, "j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m menu) viewConfig() string {
	st := GetTheme(m.theme).styles()
	var b strings.Builder
	b.WriteString("\n\n    " + st.header.Render(strings.ToUpper(m.selected)) + "\n\n")
	for i, name := range tunable {
		val := fmt.Sprintf("%8.2f", paramValue(m.cfg, name))
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", st.key.Render("▸"), st.value.Bold(true).Render(fmt.Sprintf("%-14s", name)), st.key.Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n", st.muted.Render(fmt.Sprintf("%-14s", name)), st.muted.Render(val)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + st.warn.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints(st, "j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

func hints(st styles, pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, st.key.Render(pairs[i])+st.muted.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

// RunInteractive starts at the preset menu and opens the cloth from there.
func RunInteractive(theme string) error {
	_, err := tea.NewProgram(newMenu(theme), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
