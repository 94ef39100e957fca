package cloth

// Constraint keeps particles A and B near RestLength apart.
// A and B index into the owning mesh's particle slice.
type Constraint struct {
	A, B       int
	RestLength float64
	Broken     bool
}

// NewConstraint fixes the rest length to the current distance between a and b.
func NewConstraint(ps []Particle, a, b int) Constraint {
	return Constraint{
		A:          a,
		B:          b,
		RestLength: ps[a].Pos.Sub(ps[b].Pos).Len(),
	}
}

// Length returns the live distance between the endpoints.
func (c *Constraint) Length(ps []Particle) float64 {
	return ps[c.A].Pos.Sub(ps[c.B].Pos).Len()
}

// Stretch returns the live length as a multiple of the rest length.
func (c *Constraint) Stretch(ps []Particle) float64 {
	if c.RestLength == 0 {
		return 0
	}
	return c.Length(ps) / c.RestLength
}

// Relax applies one correction toward the rest length. It reports true when
// this call tore the constraint.
func (c *Constraint) Relax(ps []Particle, p Params) bool {
	if c.Broken {
		return false
	}

	a, b := &ps[c.A], &ps[c.B]
	diff := a.Pos.Sub(b.Pos)
	dist := diff.Len()

	if dist > c.RestLength*p.StretchLimit {
		c.Broken = true
		return true
	}
	if dist < p.Epsilon || dist == 0 {
		return false
	}

	factor := (c.RestLength - dist) / dist * 0.5
	offset := diff.Mul(factor)
	if !a.Pinned() {
		a.Pos = a.Pos.Add(offset)
	}
	if !b.Pinned() {
		b.Pos = b.Pos.Sub(offset)
	}
	return false
}
