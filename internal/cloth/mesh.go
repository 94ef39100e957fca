package cloth

import "github.com/go-gl/mathgl/mgl64"

// Mesh owns the particles and the live constraints between them.
type Mesh struct {
	Particles   []Particle
	Constraints []Constraint
	Params      Params
	Cols, Rows  int
}

func NewMesh(p Params) *Mesh {
	return &Mesh{
		Particles:   make([]Particle, 0),
		Constraints: make([]Constraint, 0),
		Params:      p,
	}
}

// AddParticle appends a particle at rest and returns its index.
func (m *Mesh) AddParticle(pos mgl64.Vec3, locked bool) int {
	m.Particles = append(m.Particles, NewParticle(pos, locked))
	return len(m.Particles) - 1
}

// Connect links particles a and b at their current distance.
func (m *Mesh) Connect(a, b int) {
	m.Constraints = append(m.Constraints, NewConstraint(m.Particles, a, b))
}

// Relax runs the given number of passes over every constraint and returns
// how many constraints tore.
func (m *Mesh) Relax(iterations int) int {
	torn := 0
	for i := 0; i < iterations; i++ {
		for j := range m.Constraints {
			if m.Constraints[j].Relax(m.Particles, m.Params) {
				torn++
			}
		}
	}
	return torn
}

// Evict drops broken constraints in one pass, keeping survivors in order.
func (m *Mesh) Evict() int {
	n := 0
	for _, c := range m.Constraints {
		if !c.Broken {
			m.Constraints[n] = c
			n++
		}
	}
	evicted := len(m.Constraints) - n
	m.Constraints = m.Constraints[:n]
	return evicted
}

func (m *Mesh) Integrate(t float64) {
	for i := range m.Particles {
		m.Particles[i].Integrate(t, m.Params)
	}
}

// IsValid reports whether every particle position is finite.
func (m *Mesh) IsValid() bool {
	for i := range m.Particles {
		if !m.Particles[i].IsValid() {
			return false
		}
	}
	return true
}

// Index returns the particle index of grid cell (x, y).
func (m *Mesh) Index(x, y int) int {
	return y*m.Cols + x
}
