package cloth

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Particle is a point mass whose velocity is implied by Pos - Prev.
// Screen-space y grows downward, so gravity adds to Pos.Y.
type Particle struct {
	Pos     mgl64.Vec3
	Prev    mgl64.Vec3
	Locked  bool
	Grabbed bool
}

func NewParticle(pos mgl64.Vec3, locked bool) Particle {
	return Particle{Pos: pos, Prev: pos, Locked: locked}
}

// Pinned reports whether integration and relaxation must leave Pos alone.
func (pt *Particle) Pinned() bool { return pt.Locked || pt.Grabbed }

// Velocity returns the implicit per-frame velocity.
func (pt *Particle) Velocity() mgl64.Vec3 { return pt.Pos.Sub(pt.Prev) }

// Integrate advances one frame of damped Verlet plus gravity and the depth wave.
// t is elapsed simulated time, used only as the wave phase.
func (pt *Particle) Integrate(t float64, p Params) {
	if pt.Pinned() {
		return
	}

	vel := pt.Pos.Sub(pt.Prev).Mul(p.Damping)
	pt.Prev = pt.Pos
	pt.Pos = pt.Pos.Add(vel)
	pt.Pos[1] += p.Gravity

	pt.Pos[2] += math.Sin(t+pt.Pos[0]*p.WavePhase) * p.WaveAmplitude
	pt.Pos[2] *= p.DepthDamping
}

func (pt *Particle) IsValid() bool {
	for _, v := range pt.Pos {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
