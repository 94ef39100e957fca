package cloth_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/clothsim/internal/cloth"
)

func pair(p cloth.Params, a, b mgl64.Vec3) *cloth.Mesh {
	m := cloth.NewMesh(p)
	ia := m.AddParticle(a, false)
	ib := m.AddParticle(b, false)
	m.Connect(ia, ib)
	return m
}

var _ = Describe("Mesh", func() {
	var params cloth.Params

	BeforeEach(func() {
		params = cloth.DefaultParams()
	})

	Describe("NewGrid", func() {
		It("sets every rest length to the creation distance", func() {
			m, err := cloth.NewGrid(7, 5, 18, params)
			Expect(err).NotTo(HaveOccurred())

			for _, c := range m.Constraints {
				d := m.Particles[c.A].Pos.Sub(m.Particles[c.B].Pos).Len()
				Expect(c.RestLength).To(BeNumerically("~", d, 1e-9))
			}
		})

		It("links right and down neighbours only", func() {
			m, err := cloth.NewGrid(4, 3, 10, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Particles).To(HaveLen(12))
			Expect(m.Constraints).To(HaveLen(3*3 + 4*2))
		})

		It("locks exactly the top row", func() {
			m, err := cloth.NewGrid(5, 4, 10, params)
			Expect(err).NotTo(HaveOccurred())
			for i, pt := range m.Particles {
				Expect(pt.Locked).To(Equal(i < 5))
				Expect(pt.Pos).To(Equal(pt.Prev))
			}
		})

		It("rejects empty grids and bad spacing", func() {
			_, err := cloth.NewGrid(0, 3, 10, params)
			Expect(err).To(MatchError(cloth.ErrInvalidGrid))

			_, err = cloth.NewGrid(3, 3, 0, params)
			Expect(err).To(MatchError(cloth.ErrInvalidSpacing))
		})
	})

	Describe("tearing", func() {
		const rest = 18.0

		It("holds just under the stretch limit", func() {
			m := pair(params, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{rest, 0, 0})
			m.Particles[1].Pos = mgl64.Vec3{rest*params.StretchLimit - 1e-6, 0, 0}

			Expect(m.Relax(1)).To(Equal(0))
			Expect(m.Constraints[0].Broken).To(BeFalse())
		})

		It("breaks just over the stretch limit", func() {
			m := pair(params, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{rest, 0, 0})
			m.Particles[1].Pos = mgl64.Vec3{rest*params.StretchLimit + 1e-6, 0, 0}

			Expect(m.Relax(1)).To(Equal(1))
			Expect(m.Constraints[0].Broken).To(BeTrue())
		})

		It("never revives a broken constraint", func() {
			m := pair(params, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{rest, 0, 0})
			m.Constraints[0].Broken = true
			m.Particles[1].Pos = mgl64.Vec3{rest + 3, 0, 0}

			Expect(m.Relax(8)).To(Equal(0))
			Expect(m.Constraints[0].Broken).To(BeTrue())
			Expect(m.Particles[1].Pos).To(Equal(mgl64.Vec3{rest + 3, 0, 0}))
		})
	})

	Describe("relaxation", func() {
		It("converges monotonically for two free endpoints", func() {
			m := pair(params, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{18, 0, 0})
			m.Particles[1].Pos = mgl64.Vec3{20, 1, 0.5}

			c := &m.Constraints[0]
			prev := math.Abs(c.Length(m.Particles) - c.RestLength)
			for i := 0; i < 10; i++ {
				m.Relax(1)
				errNow := math.Abs(c.Length(m.Particles) - c.RestLength)
				Expect(errNow).To(BeNumerically("<=", prev+1e-12))
				prev = errNow
			}
			Expect(prev).To(BeNumerically("<", 1e-9))
		})

		It("halves the error each pass when one end is locked", func() {
			m := cloth.NewMesh(params)
			a := m.AddParticle(mgl64.Vec3{0, 0, 0}, true)
			b := m.AddParticle(mgl64.Vec3{10, 0, 0}, false)
			m.Connect(a, b)
			m.Particles[b].Pos = mgl64.Vec3{12, 0, 0}

			c := &m.Constraints[0]
			prev := c.Length(m.Particles) - c.RestLength
			for i := 0; i < 20; i++ {
				m.Relax(1)
				errNow := c.Length(m.Particles) - c.RestLength
				Expect(errNow).To(BeNumerically("~", prev/2, 1e-9))
				prev = errNow
			}
			Expect(m.Particles[a].Pos).To(Equal(mgl64.Vec3{0, 0, 0}))
		})

		It("skips near-coincident endpoints", func() {
			m := pair(params, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{5, 0, 0})
			m.Particles[1].Pos = mgl64.Vec3{0.01, 0, 0}

			Expect(func() { m.Relax(8) }).NotTo(Panic())
			Expect(m.Particles[1].Pos).To(Equal(mgl64.Vec3{0.01, 0, 0}))
			Expect(m.IsValid()).To(BeTrue())
		})

		It("stays finite for coincident endpoints with a zero epsilon", func() {
			params.Epsilon = 0
			m := pair(params, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{5, 0, 0})
			m.Particles[1].Pos = mgl64.Vec3{0, 0, 0}

			m.Relax(1)
			Expect(m.IsValid()).To(BeTrue())
			Expect(m.Particles[1].Pos).To(Equal(mgl64.Vec3{0, 0, 0}))
		})

		It("leaves grabbed endpoints alone", func() {
			m := pair(params, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 0, 0})
			m.Particles[0].Grabbed = true
			m.Particles[1].Pos = mgl64.Vec3{14, 0, 0}

			m.Relax(1)
			Expect(m.Particles[0].Pos).To(Equal(mgl64.Vec3{0, 0, 0}))
			Expect(m.Particles[1].Pos[0]).To(BeNumerically("~", 12, 1e-9))
		})
	})

	Describe("Evict", func() {
		It("removes broken constraints and keeps survivor order", func() {
			m, err := cloth.NewGrid(4, 4, 10, params)
			Expect(err).NotTo(HaveOccurred())

			before := append([]cloth.Constraint(nil), m.Constraints...)
			for _, i := range []int{0, 3, 7, len(m.Constraints) - 1} {
				m.Constraints[i].Broken = true
			}

			Expect(m.Evict()).To(Equal(4))
			Expect(m.Constraints).To(HaveLen(len(before) - 4))

			want := make([]cloth.Constraint, 0)
			for i, c := range before {
				if i != 0 && i != 3 && i != 7 && i != len(before)-1 {
					want = append(want, c)
				}
			}
			Expect(m.Constraints).To(Equal(want))
		})

		It("is a no-op without broken constraints", func() {
			m, err := cloth.NewGrid(3, 3, 10, params)
			Expect(err).NotTo(HaveOccurred())
			n := len(m.Constraints)
			Expect(m.Evict()).To(Equal(0))
			Expect(m.Constraints).To(HaveLen(n))
		})
	})

	Describe("a hanging 3x3 cloth", func() {
		It("drops free particles and keeps the top row fixed", func() {
			m, err := cloth.NewGrid(3, 3, 18, params)
			Expect(err).NotTo(HaveOccurred())
			initial := append([]cloth.Particle(nil), m.Particles...)

			m.Relax(params.Iterations)
			m.Evict()
			m.Integrate(0)

			for i, pt := range m.Particles {
				if i < 3 {
					Expect(pt.Pos).To(Equal(initial[i].Pos))
					continue
				}
				Expect(pt.Pos.Y()).To(BeNumerically(">", pt.Prev.Y()))
				Expect(pt.Pos.Y()).To(BeNumerically(">", initial[i].Pos.Y()))
			}
		})

		It("never moves locked particles over many frames", func() {
			m, err := cloth.NewGrid(6, 6, 18, params)
			Expect(err).NotTo(HaveOccurred())
			initial := append([]cloth.Particle(nil), m.Particles...)

			for f := 0; f < 200; f++ {
				m.Relax(params.Iterations)
				m.Evict()
				m.Integrate(float64(f) / 60 * 1.5)
			}
			for i := 0; i < 6; i++ {
				Expect(m.Particles[i].Pos).To(Equal(initial[i].Pos))
			}
			Expect(m.IsValid()).To(BeTrue())
		})
	})
})
