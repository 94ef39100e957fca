package config

import "sort"

// Presets are named variations applied on top of DefaultConfig.
var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"small": func(c *Config) {
		c.Grid = GridConfig{Cols: 24, Rows: 16, Spacing: 18}
	},
	"silk": func(c *Config) {
		c.Grid.Spacing = 12
		c.Grid.Cols, c.Grid.Rows = 100, 60
		c.Physics.Gravity = 0.2
		c.Physics.WaveAmplitude = 0.3
		c.Solver.Iterations = 4
	},
	"canvas": func(c *Config) {
		c.Physics.Damping = 0.95
		c.Physics.WaveAmplitude = 0.05
		c.Solver.Iterations = 24
		c.Solver.StretchLimit = 8
	},
	"fragile": func(c *Config) {
		c.Grid = GridConfig{Cols: 40, Rows: 30, Spacing: 18}
		c.Physics.Gravity = 0.5
		c.Solver.Iterations = 3
		c.Solver.StretchLimit = 2.5
	},
}

// GetPreset returns a fresh configuration for the named preset, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Name = name
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
