// Package interact turns pointer input into cloth edits: picking and
// dragging a particle with the primary button, and cutting constraints by
// sweeping the pointer with the secondary button held.
package interact

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/projection"
)

const DefaultPickRadius = 50.0

type Mode int

const (
	Idle Mode = iota
	Grabbing
)

func (m Mode) String() string {
	switch m {
	case Grabbing:
		return "grabbing"
	default:
		return "idle"
	}
}

// Controller is the grab state machine. Grabbing carries the index of the
// held particle.
type Controller struct {
	Projector  projection.Projector
	PickRadius float64

	mode    Mode
	grabbed int
}

func New(p projection.Projector, pickRadius float64) *Controller {
	return &Controller{Projector: p, PickRadius: pickRadius, grabbed: -1}
}

func (c *Controller) Mode() Mode { return c.mode }

// Grabbed returns the held particle index while grabbing.
func (c *Controller) Grabbed() (int, bool) {
	if c.mode != Grabbing {
		return -1, false
	}
	return c.grabbed, true
}

// Press picks the unlocked particle closest to the pointer on screen, if one
// lies strictly inside the pick radius. It reports whether a grab started.
func (c *Controller) Press(m *cloth.Mesh, pointer mgl64.Vec2, vp projection.Viewport) bool {
	if c.mode == Grabbing {
		return false
	}

	best := -1
	minDist := c.PickRadius
	for i := range m.Particles {
		pt := &m.Particles[i]
		if pt.Locked {
			continue
		}
		d := c.Projector.WorldToScreen(pt.Pos, vp).Sub(pointer).Len()
		if d < minDist {
			minDist = d
			best = i
		}
	}
	if best < 0 {
		return false
	}

	m.Particles[best].Grabbed = true
	c.mode = Grabbing
	c.grabbed = best
	return true
}

// Drag moves the held particle under the pointer at its current depth and
// zeroes its implicit velocity.
func (c *Controller) Drag(m *cloth.Mesh, pointer mgl64.Vec2, vp projection.Viewport) {
	if c.mode != Grabbing {
		return
	}
	pt := &m.Particles[c.grabbed]
	pos, ok := c.Projector.ScreenToWorldAtDepth(pointer, pt.Pos.Z(), vp)
	if !ok {
		return
	}
	pt.Pos = pos
	pt.Prev = pos
}

func (c *Controller) Release(m *cloth.Mesh) {
	if c.mode != Grabbing {
		return
	}
	if c.grabbed < len(m.Particles) {
		m.Particles[c.grabbed].Grabbed = false
	}
	c.mode = Idle
	c.grabbed = -1
}

// Cut marks every live constraint whose projection crosses from-to as broken
// and returns how many it cut.
func (c *Controller) Cut(m *cloth.Mesh, from, to mgl64.Vec2, vp projection.Viewport) int {
	if from == to {
		return 0
	}
	cut := 0
	for i := range m.Constraints {
		con := &m.Constraints[i]
		if con.Broken {
			continue
		}
		a := c.Projector.WorldToScreen(m.Particles[con.A].Pos, vp)
		b := c.Projector.WorldToScreen(m.Particles[con.B].Pos, vp)
		if SegmentsIntersect(from, to, a, b) {
			con.Broken = true
			cut++
		}
	}
	return cut
}

// Reset drops any grab without touching a mesh, for use after the mesh is rebuilt.
func (c *Controller) Reset() {
	c.mode = Idle
	c.grabbed = -1
}

// Nearest returns the screen distance from pointer to the closest unlocked
// particle, or +Inf when the mesh has none.
func (c *Controller) Nearest(m *cloth.Mesh, pointer mgl64.Vec2, vp projection.Viewport) float64 {
	best := math.Inf(1)
	for i := range m.Particles {
		if m.Particles[i].Locked {
			continue
		}
		best = math.Min(best, c.Projector.WorldToScreen(m.Particles[i].Pos, vp).Sub(pointer).Len())
	}
	return best
}
