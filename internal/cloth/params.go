package cloth

const (
	DefaultGravity       = 0.35
	DefaultDamping       = 0.98
	DefaultWaveAmplitude = 0.15
	DefaultWavePhase     = 0.05 // radians per unit of x
	DefaultDepthDamping  = 0.99
	DefaultStretchLimit  = 5.0 // multiple of rest length
	DefaultEpsilon       = 0.1
	DefaultIterations    = 8
)

// Params holds the tuning knobs shared by particles and constraints.
type Params struct {
	Gravity       float64
	Damping       float64
	WaveAmplitude float64
	WavePhase     float64
	DepthDamping  float64
	StretchLimit  float64
	Epsilon       float64
	Iterations    int
}

func DefaultParams() Params {
	return Params{
		Gravity:       DefaultGravity,
		Damping:       DefaultDamping,
		WaveAmplitude: DefaultWaveAmplitude,
		WavePhase:     DefaultWavePhase,
		DepthDamping:  DefaultDepthDamping,
		StretchLimit:  DefaultStretchLimit,
		Epsilon:       DefaultEpsilon,
		Iterations:    DefaultIterations,
	}
}

// GetParams mirrors the parameter set as a map for runtime tuning UIs.
func (p Params) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity":       p.Gravity,
		"damping":       p.Damping,
		"wave":          p.WaveAmplitude,
		"stretch_limit": p.StretchLimit,
		"iterations":    float64(p.Iterations),
	}
}

// SetParam updates a single knob by name. Unknown names are ignored.
func (p *Params) SetParam(name string, value float64) {
	switch name {
	case "gravity":
		p.Gravity = value
	case "damping":
		p.Damping = value
	case "wave":
		p.WaveAmplitude = value
	case "stretch_limit":
		p.StretchLimit = value
	case "iterations":
		if value < 1 {
			value = 1
		}
		p.Iterations = int(value)
	}
}
