package cloth

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// NewGrid builds a cols x rows cloth centred on x = 0, hanging from y = 0.
// Particles are stored row-major and the top row is locked. Each particle is
// linked to its right neighbour and to the one below it.
func NewGrid(cols, rows int, spacing float64, p Params) (*Mesh, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidGrid, cols, rows)
	}
	if spacing <= 0 {
		return nil, fmt.Errorf("%w: got %f", ErrInvalidSpacing, spacing)
	}

	m := NewMesh(p)
	m.Cols, m.Rows = cols, rows
	m.Particles = make([]Particle, 0, cols*rows)
	m.Constraints = make([]Constraint, 0, 2*cols*rows)

	halfWidth := float64(cols) * spacing / 2
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			pos := mgl64.Vec3{float64(x)*spacing - halfWidth, float64(y) * spacing, 0}
			m.AddParticle(pos, y == 0)
		}
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if x < cols-1 {
				m.Connect(m.Index(x, y), m.Index(x+1, y))
			}
			if y < rows-1 {
				m.Connect(m.Index(x, y), m.Index(x, y+1))
			}
		}
	}

	return m, nil
}
