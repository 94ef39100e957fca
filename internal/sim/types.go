package sim

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/projection"
)

// Input is what the windowing collaborator reports once per frame.
type Input struct {
	Pointer         mgl64.Vec2
	Viewport        projection.Viewport
	PrimaryPressed  bool
	PrimaryReleased bool
	SecondaryHeld   bool
	Time            float64 // seconds, monotonic
}

// Line is one constraint ready for the renderer.
type Line struct {
	From, To mgl64.Vec2
	Color    color.RGBA
}

// FrameStats summarises what happened during one Step.
type FrameStats struct {
	Frame   int
	Time    float64
	Cut     int
	Torn    int
	Evicted int
	Live    int
	Grabbed bool
}

type Metric interface {
	Name() string
	Observe(m *cloth.Mesh, f FrameStats)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(m *cloth.Mesh, f FrameStats)
}

// RenderConfig controls how constraint colour is derived from depth.
type RenderConfig struct {
	DepthNear float64
	DepthFar  float64
	Base      color.RGBA // G channel is replaced by depth brightness
	Highlight color.RGBA
}

func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		DepthNear: -100,
		DepthFar:  300,
		Base:      color.RGBA{R: 50, G: 0, B: 255, A: 255},
		Highlight: color.RGBA{R: 255, G: 255, B: 0, A: 255},
	}
}

// Config describes the cloth and the per-frame solver.
type Config struct {
	Cols       int
	Rows       int
	Spacing    float64
	TimeScale  float64
	PickRadius float64
	Params     cloth.Params
	Projector  projection.Projector
	Render     RenderConfig
}

func DefaultConfig() Config {
	return Config{
		Cols:       70,
		Rows:       45,
		Spacing:    18,
		TimeScale:  1.5,
		PickRadius: 50,
		Params:     cloth.DefaultParams(),
		Projector:  projection.NewProjector(),
		Render:     DefaultRenderConfig(),
	}
}

// RunConfig drives a headless run. Script may be nil for an untouched cloth.
type RunConfig struct {
	Frames        int
	Dt            float64
	Viewport      projection.Viewport
	Script        Script
	ValidateState bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Frames:        600,
		Dt:            1.0 / 60,
		Viewport:      projection.Viewport{Width: 1400, Height: 900},
		ValidateState: true,
	}
}

// Script produces the input of a headless frame.
type Script func(frame int, in Input) Input

type Result struct {
	Times     []float64
	Series    map[string][]float64
	Metrics   map[string]float64
	FramesRun int
	Torn      int
	Cut       int
	Live      int // constraints left after the last frame
	Errors    []error
}

type FrameError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e FrameError) Unwrap() error { return e.Wrapped }
