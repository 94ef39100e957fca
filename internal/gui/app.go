package gui

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/clothsim/internal/interact"
	"github.com/san-kum/clothsim/internal/projection"
	"github.com/san-kum/clothsim/internal/sim"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColCut     = rl.NewColor(255, 80, 80, 255)
)

// ErrNoWindow is returned when raylib could not open a window.
var ErrNoWindow = errors.New("gui: window could not be created")

type Options struct {
	Width, Height int
	FPS           int
	Title         string
}

func DefaultOptions() Options {
	return Options{Width: 1400, Height: 900, FPS: 60, Title: "clothsim"}
}

// App feeds raylib input into one simulator and draws its render list.
type App struct {
	Sim      *sim.Simulator
	Name     string
	Running  bool
	ShowHelp bool

	lines       []sim.Line
	pointer     mgl64.Vec2
	lastPointer mgl64.Vec2
	cutting     bool
	pressed     bool
	released    bool

	Telemetry    []float64 // live constraint count per frame
	MaxTelemetry int
	total        int
}

func NewApp(s *sim.Simulator, name string) *App {
	return &App{
		Sim:          s,
		Name:         name,
		Running:      true,
		MaxTelemetry: 400,
		Telemetry:    make([]float64, 0, 400),
		total:        len(s.Mesh().Constraints),
	}
}

func initWindow(o Options) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(o.Width), int32(o.Height), o.Title)
	if !rl.IsWindowReady() {
		return ErrNoWindow
	}
	rl.SetTargetFPS(int32(o.FPS))
	rl.SetExitKey(0)
	return nil
}

// Run opens the window and blocks until it is closed.
func Run(s *sim.Simulator, name string, o Options) error {
	if err := initWindow(o); err != nil {
		return fmt.Errorf("%w: %dx%d", err, o.Width, o.Height)
	}
	defer rl.CloseWindow()

	NewApp(s, name).RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) viewport() projection.Viewport {
	return projection.Viewport{
		Width:  float64(rl.GetScreenWidth()),
		Height: float64(rl.GetScreenHeight()),
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := a.Sim.Reset(); err == nil {
			a.Telemetry = a.Telemetry[:0]
			a.total = len(a.Sim.Mesh().Constraints)
		}
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		a.Sim.SetIterations(a.Sim.Iterations() + 1)
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		a.Sim.SetIterations(a.Sim.Iterations() - 1)
	}
	if rl.IsKeyPressed(rl.KeySlash) {
		a.ShowHelp = !a.ShowHelp
	}

	mouse := rl.GetMousePosition()
	a.feed(sim.Input{
		Pointer:         mgl64.Vec2{float64(mouse.X), float64(mouse.Y)},
		Viewport:        a.viewport(),
		PrimaryPressed:  rl.IsMouseButtonPressed(rl.MouseLeftButton),
		PrimaryReleased: rl.IsMouseButtonReleased(rl.MouseLeftButton),
		SecondaryHeld:   rl.IsMouseButtonDown(rl.MouseRightButton),
		Time:            rl.GetTime(),
	})
}

// feed takes one frame of sampled input. Button edges seen while paused are
// held until the next frame that steps.
func (a *App) feed(in sim.Input) {
	a.lastPointer = a.pointer
	a.pointer = in.Pointer
	a.cutting = in.SecondaryHeld
	a.pressed = a.pressed || in.PrimaryPressed
	a.released = a.released || in.PrimaryReleased

	if !a.Running {
		return
	}

	in.PrimaryPressed, in.PrimaryReleased = a.pressed, a.released
	a.pressed, a.released = false, false
	stats := a.Sim.Step(in)

	a.Telemetry = append(a.Telemetry, float64(stats.Live))
	if len(a.Telemetry) > a.MaxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.lines = a.Sim.AppendLines(a.lines[:0], a.viewport())
	a.drawCloth()
	a.drawCursor()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	drawText("clothsim", 30, 30, 24, ColSelect)
	drawText(fmt.Sprintf(":: %s", a.Name), 150, 34, 16, ColText)

	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	drawText(status, int(rl.GetScreenWidth())-130, 30, 16, col)

	live := len(a.Sim.Mesh().Constraints)
	mode := a.Sim.Controller().Mode()
	drawText(fmt.Sprintf("iterations %d   constraints %d/%d   %s", a.Sim.Iterations(), live, a.total, mode), 30, 64, 14, ColText)

	a.DrawTelemetry()

	h := int(rl.GetScreenHeight())
	drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, h-40, 14, ColTextDim)
	drawText("[LMB] GRAB  [RMB] CUT  [SPACE] PAUSE  [R] RESET  [UP/DOWN] ITERATIONS  [Q] QUIT", 140, h-40, 14, ColTextDim)

	if a.ShowHelp {
		drawText("drag with the left button to pull the cloth", 30, 100, 16, ColAccent)
		drawText("hold the right button and sweep across threads to cut them", 30, 122, 16, ColAccent)
		drawText("fewer iterations make the cloth stretchier and easier to tear", 30, 144, 16, ColAccent)
	}
}

// hover reports whether the pointer is close enough to grab something.
func (a *App) hover() bool {
	ctrl := a.Sim.Controller()
	if ctrl.Mode() != interact.Idle {
		return false
	}
	return ctrl.Nearest(a.Sim.Mesh(), a.pointer, a.viewport()) < ctrl.PickRadius
}

func drawText(text string, x, y, size int, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), color)
}
