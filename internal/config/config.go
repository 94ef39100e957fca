package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/projection"
	"github.com/san-kum/clothsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCols       = 70
	DefaultRows       = 45
	DefaultSpacing    = 18.0
	DefaultTimeScale  = 1.5
	DefaultPickRadius = 50.0
	DefaultWidth      = 1400
	DefaultHeight     = 900
	DefaultFPS        = 60
	DefaultDepthNear  = -100.0
	DefaultDepthFar   = 300.0
)

// ErrInvalidConfig indicates a configuration that cannot build a cloth.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Name        string            `yaml:"name,omitempty"`
	Grid        GridConfig        `yaml:"grid"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Solver      SolverConfig      `yaml:"solver"`
	Camera      CameraConfig      `yaml:"camera"`
	Interaction InteractionConfig `yaml:"interaction"`
	Render      RenderConfig      `yaml:"render"`
}

type GridConfig struct {
	Cols    int     `yaml:"cols"`
	Rows    int     `yaml:"rows"`
	Spacing float64 `yaml:"spacing"`
}

type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`
	Damping       float64 `yaml:"damping"`
	WaveAmplitude float64 `yaml:"wave_amplitude"`
	WavePhase     float64 `yaml:"wave_phase"`
	DepthDamping  float64 `yaml:"depth_damping"`
	TimeScale     float64 `yaml:"time_scale"`
}

type SolverConfig struct {
	Iterations   int     `yaml:"iterations"`
	StretchLimit float64 `yaml:"stretch_limit"`
	Epsilon      float64 `yaml:"epsilon"`
}

type CameraConfig struct {
	FocalLength  float64 `yaml:"focal_length"`
	Offset       float64 `yaml:"offset"`
	VerticalBias float64 `yaml:"vertical_bias"`
}

type InteractionConfig struct {
	PickRadius float64 `yaml:"pick_radius"`
}

type RenderConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	FPS       int     `yaml:"fps"`
	DepthNear float64 `yaml:"depth_near"`
	DepthFar  float64 `yaml:"depth_far"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Cols:    DefaultCols,
			Rows:    DefaultRows,
			Spacing: DefaultSpacing,
		},
		Physics: PhysicsConfig{
			Gravity:       cloth.DefaultGravity,
			Damping:       cloth.DefaultDamping,
			WaveAmplitude: cloth.DefaultWaveAmplitude,
			WavePhase:     cloth.DefaultWavePhase,
			DepthDamping:  cloth.DefaultDepthDamping,
			TimeScale:     DefaultTimeScale,
		},
		Solver: SolverConfig{
			Iterations:   cloth.DefaultIterations,
			StretchLimit: cloth.DefaultStretchLimit,
			Epsilon:      cloth.DefaultEpsilon,
		},
		Camera: CameraConfig{
			FocalLength:  projection.DefaultFocalLength,
			Offset:       projection.DefaultCameraOffset,
			VerticalBias: projection.DefaultVerticalBias,
		},
		Interaction: InteractionConfig{
			PickRadius: DefaultPickRadius,
		},
		Render: RenderConfig{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			FPS:       DefaultFPS,
			DepthNear: DefaultDepthNear,
			DepthFar:  DefaultDepthFar,
		},
	}
}

// Load reads a YAML file on top of the defaults, so partial files are fine.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file on top of base, which is modified in place.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, err
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Grid.Cols < 1 || c.Grid.Rows < 1:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.Grid.Cols, c.Grid.Rows)
	case c.Grid.Spacing <= 0:
		return fmt.Errorf("%w: spacing %f", ErrInvalidConfig, c.Grid.Spacing)
	case c.Solver.Iterations < 1:
		return fmt.Errorf("%w: iterations %d", ErrInvalidConfig, c.Solver.Iterations)
	case c.Solver.StretchLimit <= 1:
		return fmt.Errorf("%w: stretch limit %f must exceed 1", ErrInvalidConfig, c.Solver.StretchLimit)
	case c.Solver.Epsilon <= 0:
		return fmt.Errorf("%w: epsilon %f must be positive", ErrInvalidConfig, c.Solver.Epsilon)
	case c.Physics.Damping < 0 || c.Physics.Damping > 1:
		return fmt.Errorf("%w: damping %f outside [0, 1]", ErrInvalidConfig, c.Physics.Damping)
	case c.Physics.DepthDamping < 0 || c.Physics.DepthDamping > 1:
		return fmt.Errorf("%w: depth damping %f outside [0, 1]", ErrInvalidConfig, c.Physics.DepthDamping)
	case c.Camera.FocalLength <= 0:
		return fmt.Errorf("%w: focal length %f", ErrInvalidConfig, c.Camera.FocalLength)
	case c.Camera.FocalLength+c.Camera.Offset <= 0:
		return fmt.Errorf("%w: camera offset %f puts the cloth behind the camera", ErrInvalidConfig, c.Camera.Offset)
	case c.Interaction.PickRadius <= 0:
		return fmt.Errorf("%w: pick radius %f", ErrInvalidConfig, c.Interaction.PickRadius)
	case c.Render.DepthFar <= c.Render.DepthNear:
		return fmt.Errorf("%w: depth window [%f, %f]", ErrInvalidConfig, c.Render.DepthNear, c.Render.DepthFar)
	}
	return nil
}

func (c *Config) Params() cloth.Params {
	return cloth.Params{
		Gravity:       c.Physics.Gravity,
		Damping:       c.Physics.Damping,
		WaveAmplitude: c.Physics.WaveAmplitude,
		WavePhase:     c.Physics.WavePhase,
		DepthDamping:  c.Physics.DepthDamping,
		StretchLimit:  c.Solver.StretchLimit,
		Epsilon:       c.Solver.Epsilon,
		Iterations:    c.Solver.Iterations,
	}
}

func (c *Config) Projector() projection.Projector {
	return projection.Projector{
		FocalLength:  c.Camera.FocalLength,
		CameraOffset: c.Camera.Offset,
		VerticalBias: c.Camera.VerticalBias,
	}
}

func (c *Config) Viewport() projection.Viewport {
	return projection.Viewport{Width: float64(c.Render.Width), Height: float64(c.Render.Height)}
}

// SimConfig converts the file layout into the simulator's configuration.
func (c *Config) SimConfig() sim.Config {
	rc := sim.DefaultRenderConfig()
	rc.DepthNear = c.Render.DepthNear
	rc.DepthFar = c.Render.DepthFar

	return sim.Config{
		Cols:       c.Grid.Cols,
		Rows:       c.Grid.Rows,
		Spacing:    c.Grid.Spacing,
		TimeScale:  c.Physics.TimeScale,
		PickRadius: c.Interaction.PickRadius,
		Params:     c.Params(),
		Projector:  c.Projector(),
		Render:     rc,
	}
}
