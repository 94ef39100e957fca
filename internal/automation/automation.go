package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted headless run. Pointer coordinates are fractions
// of the viewport so a scenario works at any window size.
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Preset      string   `yaml:"preset"`
	Frames      int      `yaml:"frames"`
	Dt          float64  `yaml:"dt"`
	Actions     []Action `yaml:"actions"`
}

// Action is one pointer gesture: a cut sweep or a grab-and-drag.
type Action struct {
	Kind   string     `yaml:"kind"`
	From   [2]float64 `yaml:"from"`
	To     [2]float64 `yaml:"to"`
	Start  int        `yaml:"start"`
	Frames int        `yaml:"frames"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func toScreen(p [2]float64, in sim.Input) mgl64.Vec2 {
	return mgl64.Vec2{p[0] * in.Viewport.Width, p[1] * in.Viewport.Height}
}

// Script turns the actions into one pointer script. Positions are resolved
// against the viewport of each frame.
func (s *Scenario) Script() (sim.Script, error) {
	scripts := make([]sim.Script, 0, len(s.Actions))
	for i, a := range s.Actions {
		if a.Kind != "cut" && a.Kind != "drag" {
			return nil, fmt.Errorf("action %d: unknown kind %q", i+1, a.Kind)
		}
		scripts = append(scripts, func(frame int, in sim.Input) sim.Input {
			from, to := toScreen(a.From, in), toScreen(a.To, in)
			if a.Kind == "cut" {
				return sim.CutScript(from, to, a.Start, a.Frames)(frame, in)
			}
			return sim.DragScript(from, to, a.Start, a.Frames)(frame, in)
		})
	}
	return sim.Chain(scripts...), nil
}

// Config returns the preset the scenario names, falling back to default.
func (s *Scenario) Config() (*config.Config, error) {
	name := s.Preset
	if name == "" {
		name = "default"
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("scenario %s: unknown preset %q", s.Name, name)
	}
	return cfg, nil
}

// RunConfig builds the headless run for cfg with the scenario's script.
func (s *Scenario) RunConfig(cfg *config.Config) (sim.RunConfig, error) {
	script, err := s.Script()
	if err != nil {
		return sim.RunConfig{}, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	rc := sim.DefaultRunConfig()
	rc.Viewport = cfg.Viewport()
	rc.Script = script
	if s.Frames > 0 {
		rc.Frames = s.Frames
	}
	if s.Dt > 0 {
		rc.Dt = s.Dt
	}
	return rc, nil
}

// RunScenario executes the scenario on cfg, or on the scenario's preset when
// cfg is nil.
func RunScenario(ctx context.Context, scenario *Scenario, cfg *config.Config, metrics []sim.Metric) (*sim.Result, error) {
	if cfg == nil {
		var err error
		if cfg, err = scenario.Config(); err != nil {
			return nil, err
		}
	}

	rc, err := scenario.RunConfig(cfg)
	if err != nil {
		return nil, err
	}

	s, err := sim.New(cfg.SimConfig())
	if err != nil {
		return nil, err
	}
	for _, m := range metrics {
		s.AddMetric(m)
	}

	return s.Run(ctx, rc)
}

// MonteCarloConfig defines the random cut trials.
type MonteCarloConfig struct {
	NumTrials int
	Frames    int
	CutFrames int
	Seed      int64
}

type MonteCarloResult struct {
	TrialID  int
	From, To mgl64.Vec2
	Cut      int
	Torn     int
	Live     int
	Stable   bool // every particle stayed finite
}

// RunMonteCarlo slashes the cloth along random lines, one trial per cut.
func RunMonteCarlo(ctx context.Context, cfg *config.Config, mc MonteCarloConfig) ([]MonteCarloResult, error) {
	results := make([]MonteCarloResult, 0, mc.NumTrials)

	rng := rand.New(rand.NewSource(mc.Seed))
	if mc.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	vp := cfg.Viewport()
	cutFrames := mc.CutFrames
	if cutFrames < 1 {
		cutFrames = 30
	}

	for trial := 0; trial < mc.NumTrials; trial++ {
		from := mgl64.Vec2{rng.Float64() * vp.Width, rng.Float64() * vp.Height}
		to := mgl64.Vec2{rng.Float64() * vp.Width, rng.Float64() * vp.Height}

		s, err := sim.New(cfg.SimConfig())
		if err != nil {
			return nil, err
		}

		rc := sim.DefaultRunConfig()
		rc.Viewport = vp
		rc.Script = sim.CutScript(from, to, 1, cutFrames)
		if mc.Frames > 0 {
			rc.Frames = mc.Frames
		}

		result, err := s.Run(ctx, rc)
		if err != nil {
			return nil, err
		}

		results = append(results, MonteCarloResult{
			TrialID: trial,
			From:    from,
			To:      to,
			Cut:     result.Cut,
			Torn:    result.Torn,
			Live:    result.Live,
			Stable:  len(result.Errors) == 0,
		})
	}

	return results, nil
}
