package metrics

import (
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

// LiveConstraints reports how many constraints survived the last frame.
type LiveConstraints struct{ live int }

func NewLiveConstraints() *LiveConstraints { return &LiveConstraints{} }

func (l *LiveConstraints) Name() string                           { return "live" }
func (l *LiveConstraints) Observe(_ *cloth.Mesh, f sim.FrameStats) { l.live = f.Live }
func (l *LiveConstraints) Value() float64                         { return float64(l.live) }
func (l *LiveConstraints) Reset()                                 { l.live = 0 }

// Removed counts constraints lost to tearing and cutting since the last reset.
type Removed struct{ total int }

func NewRemoved() *Removed { return &Removed{} }

func (r *Removed) Name() string                           { return "removed" }
func (r *Removed) Observe(_ *cloth.Mesh, f sim.FrameStats) { r.total += f.Evicted }
func (r *Removed) Value() float64                         { return float64(r.total) }
func (r *Removed) Reset()                                 { r.total = 0 }

// MaxStretch tracks the largest length/rest ratio of any live constraint
// in the most recent frame.
type MaxStretch struct{ max float64 }

func NewMaxStretch() *MaxStretch { return &MaxStretch{} }

func (s *MaxStretch) Name() string { return "max_stretch" }

func (s *MaxStretch) Observe(m *cloth.Mesh, _ sim.FrameStats) {
	s.max = 0
	for i := range m.Constraints {
		s.max = math.Max(s.max, m.Constraints[i].Stretch(m.Particles))
	}
}

func (s *MaxStretch) Value() float64 { return s.max }
func (s *MaxStretch) Reset()         { s.max = 0 }

// MeanDepth is the average z of the free particles, the signal the depth
// wave drives.
type MeanDepth struct{ mean float64 }

func NewMeanDepth() *MeanDepth { return &MeanDepth{} }

func (d *MeanDepth) Name() string { return "mean_depth" }

func (d *MeanDepth) Observe(m *cloth.Mesh, _ sim.FrameStats) {
	sum, n := 0.0, 0
	for i := range m.Particles {
		if m.Particles[i].Locked {
			continue
		}
		sum += m.Particles[i].Pos.Z()
		n++
	}
	d.mean = 0
	if n > 0 {
		d.mean = sum / float64(n)
	}
}

func (d *MeanDepth) Value() float64 { return d.mean }
func (d *MeanDepth) Reset()         { d.mean = 0 }

// Motion is the mean per-frame displacement of the free particles.
type Motion struct{ mean float64 }

func NewMotion() *Motion { return &Motion{} }

func (mo *Motion) Name() string { return "motion" }

func (mo *Motion) Observe(m *cloth.Mesh, _ sim.FrameStats) {
	sum, n := 0.0, 0
	for i := range m.Particles {
		pt := &m.Particles[i]
		if pt.Pinned() {
			continue
		}
		sum += pt.Velocity().Len()
		n++
	}
	mo.mean = 0
	if n > 0 {
		mo.mean = sum / float64(n)
	}
}

func (mo *Motion) Value() float64 { return mo.mean }
func (mo *Motion) Reset()         { mo.mean = 0 }

// Default returns a fresh instance of every mesh metric.
func Default() []sim.Metric {
	return []sim.Metric{
		NewLiveConstraints(),
		NewRemoved(),
		NewMaxStretch(),
		NewMeanDepth(),
		NewMotion(),
	}
}

// ByName returns a fresh metric with the given name.
func ByName(name string) (sim.Metric, bool) {
	for _, m := range Default() {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

func Names() []string {
	ms := Default()
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name()
	}
	return names
}
