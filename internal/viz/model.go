package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/clothsim/internal/interact"
	"github.com/san-kum/clothsim/internal/projection"
	"github.com/san-kum/clothsim/internal/sim"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	panelWidth      = 36
	historyCapacity = 240
	tickRate        = time.Second / 60

	// VirtualWidth is the projector viewport width the canvas stands for.
	VirtualWidth = 1400.0
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives one simulator from terminal mouse and key events.
type Model struct {
	sim     *sim.Simulator
	canvas  *Canvas
	lines   []sim.Line
	theme   Theme
	name    string
	gifPath string

	width, height int
	running       bool
	showHelp      bool
	t, dt         float64

	pointer   mgl64.Vec2
	leftDown  bool
	rightDown bool
	pressed   bool
	released  bool

	totalConstraints int
	liveHistory      []float64
	depthHistory     []float64
	last             sim.FrameStats
	recorder         *Recorder
	lastErr          error
}

func NewModel(s *sim.Simulator, name string) Model {
	m := Model{
		sim:              s,
		theme:            ThemeCyberpunk,
		name:             name,
		gifPath:          "cloth.gif",
		running:          true,
		dt:               1.0 / 60,
		totalConstraints: len(s.Mesh().Constraints),
		liveHistory:      make([]float64, 0, historyCapacity),
		depthHistory:     make([]float64, 0, historyCapacity),
	}
	m.resize(defaultWidth, defaultHeight)
	m.draw()
	return m
}

// SetTheme selects the HUD theme by name.
func (m *Model) SetTheme(name string) { m.theme = GetTheme(name) }

// SetGIFPath sets where the G key saves recordings.
func (m *Model) SetGIFPath(path string) { m.gifPath = path }

func (m Model) Simulator() *sim.Simulator { return m.sim }
func (m Model) Canvas() *Canvas           { return m.canvas }
func (m Model) Running() bool             { return m.running }
func (m Model) Pointer() mgl64.Vec2       { return m.pointer }

func (m Model) Init() tea.Cmd { return tick() }

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.canvas = NewCanvas(max(w-panelWidth, 10), max(h-1, 4))
}

// Viewport is the projector viewport covered by the canvas: VirtualWidth
// wide with square braille dots.
func (m Model) Viewport() projection.Viewport {
	scale := m.dotScale()
	return projection.Viewport{
		Width:  VirtualWidth,
		Height: float64(m.canvas.SubHeight()) * scale,
	}
}

// dotScale is virtual pixels per braille dot.
func (m Model) dotScale() float64 {
	return VirtualWidth / float64(m.canvas.SubWidth())
}

// cellToVirtual maps a terminal cell to the centre of that cell in viewport space.
func (m Model) cellToVirtual(x, y int) mgl64.Vec2 {
	scale := m.dotScale()
	return mgl64.Vec2{
		(float64(x) + 0.5) * 2 * scale,
		(float64(y) + 0.5) * 4 * scale,
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.draw()

	case tea.MouseMsg:
		m.handleMouse(msg)

	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		if m.recorder != nil {
			m.recorder.Capture(m.lines)
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.reset()
	case "up", "k":
		m.sim.SetIterations(m.sim.Iterations() + 1)
	case "down", "j":
		m.sim.SetIterations(m.sim.Iterations() - 1)
	case "t":
		m.theme = NextTheme(m.theme.Name)
	case "g":
		m.toggleRecording()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	m.pointer = m.cellToVirtual(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.leftDown = true
			m.pressed = true
		case tea.MouseButtonRight:
			m.rightDown = true
		}
	case tea.MouseActionRelease:
		// Many terminals report releases without the button.
		if m.leftDown {
			m.released = true
		}
		m.leftDown = false
		m.rightDown = false
	}
}

// step feeds the buffered mouse state to the simulator as one frame.
func (m *Model) step() {
	in := sim.Input{
		Pointer:         m.pointer,
		Viewport:        m.Viewport(),
		PrimaryPressed:  m.pressed,
		PrimaryReleased: m.released,
		SecondaryHeld:   m.rightDown,
		Time:            m.t,
	}
	m.pressed, m.released = false, false

	m.last = m.sim.Step(in)
	m.t += m.dt

	m.liveHistory = pushHistory(m.liveHistory, float64(m.last.Live))
	m.depthHistory = pushHistory(m.depthHistory, meanDepth(m.sim))
}

func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func meanDepth(s *sim.Simulator) float64 {
	ps := s.Mesh().Particles
	if len(ps) == 0 {
		return 0
	}
	sum := 0.0
	for i := range ps {
		sum += ps[i].Pos.Z()
	}
	return sum / float64(len(ps))
}

func (m *Model) reset() {
	if err := m.sim.Reset(); err != nil {
		m.lastErr = err
		return
	}
	m.t = 0
	m.pressed, m.released, m.leftDown, m.rightDown = false, false, false, false
	m.totalConstraints = len(m.sim.Mesh().Constraints)
	m.liveHistory = m.liveHistory[:0]
	m.depthHistory = m.depthHistory[:0]
	m.last = sim.FrameStats{}
}

func (m *Model) toggleRecording() {
	if m.recorder == nil {
		vp := m.Viewport()
		scale := m.dotScale() / 2
		m.recorder = NewRecorder(int(vp.Width/scale), int(vp.Height/scale), scale, m.sim.Config().Render)
		return
	}
	m.lastErr = m.recorder.Save(m.gifPath)
	m.recorder = nil
}

// draw projects the cloth into the braille canvas.
func (m *Model) draw() {
	vp := m.Viewport()
	m.lines = m.sim.AppendLines(m.lines[:0], vp)

	scale := m.dotScale()
	m.canvas.Clear()
	for _, l := range m.lines {
		m.canvas.DrawLine(
			int(l.From.X()/scale), int(l.From.Y()/scale),
			int(l.To.X()/scale), int(l.To.Y()/scale),
			l.Color,
		)
	}
}

func (m Model) View() string {
	st := m.theme.styles()
	var s strings.Builder

	s.WriteString(st.header.Render(strings.ToUpper(m.name)) + "\n")

	status := "RUNNING " + AnimatedSpinner(m.last.Frame)
	if !m.running {
		status = "PAUSED"
	}
	if m.recorder != nil {
		status += st.warn.Render(fmt.Sprintf("  REC %d", m.recorder.Frames()))
	}
	s.WriteString(status + "\n\n")

	ctrl := m.sim.Controller()
	mode := ctrl.Mode().String()
	if ctrl.Mode() == interact.Idle && ctrl.Nearest(m.sim.Mesh(), m.pointer, m.Viewport()) < ctrl.PickRadius {
		mode = "idle (grab)"
	}
	if m.rightDown {
		mode = "cutting"
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.last.Frame))
	row("Time", fmt.Sprintf("%.2fs", m.t))
	row("Iterations", fmt.Sprintf("%d", m.sim.Iterations()))
	row("Mode", mode)
	row("Live", fmt.Sprintf("%d / %d", len(m.sim.Mesh().Constraints), m.totalConstraints))

	integrity := 1.0
	if m.totalConstraints > 0 {
		integrity = float64(len(m.sim.Mesh().Constraints)) / float64(m.totalConstraints)
	}
	s.WriteString("\n" + IntegrityBar(integrity, 28) + "\n")
	s.WriteString(SparklineChart(m.liveHistory, 28) + "\n\n")

	if len(m.depthHistory) > 1 {
		chart := asciigraph.Plot(m.depthHistory, asciigraph.Height(4), asciigraph.Width(24), asciigraph.Caption("mean depth"))
		s.WriteString(chart + "\n")
	}
	if m.lastErr != nil {
		s.WriteString(st.warn.Render(m.lastErr.Error()) + "\n")
	}

	s.WriteString("\n" + st.key.Render("L") + st.muted.Render(":grab ") +
		st.key.Render("R") + st.muted.Render(":cut ") +
		st.key.Render("?") + st.muted.Render(":help") + "\n")

	if m.showHelp {
		s.WriteString(st.muted.Render(helpText))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.Render(), panelStyle.Render(s.String()))
}

const helpText = `
left drag   grab and pull
right drag  cut constraints
space       pause / resume
r           rebuild the cloth
up / down   solver iterations
t           cycle themes
g           start / save GIF
q           quit
`

// Run opens the terminal UI on s until the user quits.
func Run(s *sim.Simulator, name, theme, gifPath string) error {
	m := NewModel(s, name)
	m.SetTheme(theme)
	m.SetGIFPath(gifPath)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
