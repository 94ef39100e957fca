package sim

import (
	"context"
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/interact"
	"github.com/san-kum/clothsim/internal/projection"
)

// Simulator runs the fixed per-frame phase order over one cloth mesh.
type Simulator struct {
	cfg       Config
	mesh      *cloth.Mesh
	ctrl      *interact.Controller
	metrics   []Metric
	observers []Observer

	frame       int
	lastPointer mgl64.Vec2
	hasPointer  bool
}

func New(cfg Config) (*Simulator, error) {
	mesh, err := cloth.NewGrid(cfg.Cols, cfg.Rows, cfg.Spacing, cfg.Params)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		cfg:       cfg,
		mesh:      mesh,
		ctrl:      interact.New(cfg.Projector, cfg.PickRadius),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Mesh() *cloth.Mesh                { return s.mesh }
func (s *Simulator) Controller() *interact.Controller { return s.ctrl }
func (s *Simulator) Config() Config                   { return s.cfg }
func (s *Simulator) Frame() int                       { return s.frame }
func (s *Simulator) Iterations() int                  { return s.mesh.Params.Iterations }

// SetIterations changes the relaxation pass count, the main stiffness knob.
func (s *Simulator) SetIterations(n int) {
	if n < 1 {
		n = 1
	}
	s.mesh.Params.Iterations = n
	s.cfg.Params.Iterations = n
}

// Reset rebuilds the cloth from the configuration and drops any grab.
func (s *Simulator) Reset() error {
	mesh, err := cloth.NewGrid(s.cfg.Cols, s.cfg.Rows, s.cfg.Spacing, s.cfg.Params)
	if err != nil {
		return err
	}
	s.mesh = mesh
	s.ctrl.Reset()
	s.frame = 0
	s.hasPointer = false
	for _, m := range s.metrics {
		m.Reset()
	}
	return nil
}

// Step advances one frame: input, cut, relaxation, eviction, integration.
// The cut sees the constraint state left by the previous frame.
func (s *Simulator) Step(in Input) FrameStats {
	m := s.mesh

	if in.PrimaryPressed {
		s.ctrl.Press(m, in.Pointer, in.Viewport)
	}
	if in.PrimaryReleased {
		s.ctrl.Release(m)
	}
	s.ctrl.Drag(m, in.Pointer, in.Viewport)

	stats := FrameStats{Frame: s.frame, Time: in.Time}

	if in.SecondaryHeld {
		from := in.Pointer
		if s.hasPointer {
			from = s.lastPointer
		}
		stats.Cut = s.ctrl.Cut(m, from, in.Pointer, in.Viewport)
	}

	stats.Torn = m.Relax(m.Params.Iterations)
	stats.Evicted = m.Evict()
	m.Integrate(in.Time * s.cfg.TimeScale)

	s.lastPointer = in.Pointer
	s.hasPointer = true
	s.frame++

	stats.Live = len(m.Constraints)
	_, stats.Grabbed = s.ctrl.Grabbed()

	for _, mt := range s.metrics {
		mt.Observe(m, stats)
	}
	for _, obs := range s.observers {
		obs.OnFrame(m, stats)
	}

	return stats
}

// Lines projects the live constraints for the renderer.
func (s *Simulator) Lines(vp projection.Viewport) []Line {
	return s.AppendLines(make([]Line, 0, len(s.mesh.Constraints)), vp)
}

// AppendLines is Lines without allocating when dst has capacity.
func (s *Simulator) AppendLines(dst []Line, vp projection.Viewport) []Line {
	ps := s.mesh.Particles
	for _, c := range s.mesh.Constraints {
		a, b := &ps[c.A], &ps[c.B]
		dst = append(dst, Line{
			From:  s.cfg.Projector.WorldToScreen(a.Pos, vp),
			To:    s.cfg.Projector.WorldToScreen(b.Pos, vp),
			Color: LineColor(a, s.cfg.Render),
		})
	}
	return dst
}

// LineColor derives a constraint's colour from its first endpoint.
func LineColor(pt *cloth.Particle, rc RenderConfig) color.RGBA {
	if pt.Grabbed {
		return rc.Highlight
	}
	depth := 0.0
	if span := rc.DepthFar - rc.DepthNear; span > 0 {
		depth = (pt.Pos.Z() - rc.DepthNear) / span
	}
	depth = clamp01(depth)

	c := rc.Base
	c.G = uint8(255 * (1 - depth))
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Run steps the simulator headless, sampling every metric after each frame.
func (s *Simulator) Run(ctx context.Context, rc RunConfig) (*Result, error) {
	if err := validateRun(rc); err != nil {
		return nil, err
	}

	result := &Result{
		Times:   make([]float64, 0, rc.Frames),
		Series:  make(map[string][]float64),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}
	for _, m := range s.metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, rc.Frames)
	}

	for i := 0; i < rc.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := float64(i) * rc.Dt
		in := Input{Pointer: s.lastPointer, Viewport: rc.Viewport, Time: t}
		if rc.Script != nil {
			in = rc.Script(i, in)
		}

		stats := s.Step(in)
		result.FramesRun++
		result.Torn += stats.Torn
		result.Cut += stats.Cut
		result.Times = append(result.Times, t)
		for _, m := range s.metrics {
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}

		if rc.ValidateState && !s.mesh.IsValid() {
			result.Errors = append(result.Errors, FrameError{Frame: i, Time: t, Wrapped: ErrInvalidState})
			break
		}
	}

	result.Live = len(s.mesh.Constraints)
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateRun(rc RunConfig) error {
	if rc.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidRun, rc.Frames)
	}
	if rc.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidRun, rc.Dt)
	}
	return nil
}
