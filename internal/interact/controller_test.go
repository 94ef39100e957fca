package interact

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/projection"
)

// Depth -CameraOffset gives a unit perspective scale, and a zero viewport
// puts the origin at (0, 0), so screen coordinates equal world x/y.
func unitView() (projection.Projector, projection.Viewport, float64) {
	p := projection.NewProjector()
	return p, projection.Viewport{}, -p.CameraOffset
}

func segmentMesh(z float64, a, b mgl64.Vec2) *cloth.Mesh {
	m := cloth.NewMesh(cloth.DefaultParams())
	ia := m.AddParticle(mgl64.Vec3{a.X(), a.Y(), z}, false)
	ib := m.AddParticle(mgl64.Vec3{b.X(), b.Y(), z}, false)
	m.Connect(ia, ib)
	return m
}

func TestCut(t *testing.T) {
	p, vp, z := unitView()

	tests := []struct {
		name     string
		from, to mgl64.Vec2
		broken   bool
	}{
		{"crossing sweep", mgl64.Vec2{5, -5}, mgl64.Vec2{5, 15}, true},
		{"missing sweep", mgl64.Vec2{20, 20}, mgl64.Vec2{30, 30}, false},
		{"stationary pointer", mgl64.Vec2{5, 5}, mgl64.Vec2{5, 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := segmentMesh(z, mgl64.Vec2{0, 0}, mgl64.Vec2{10, 10})
			c := New(p, DefaultPickRadius)

			n := c.Cut(m, tt.from, tt.to, vp)
			if m.Constraints[0].Broken != tt.broken {
				t.Errorf("broken = %v, want %v", m.Constraints[0].Broken, tt.broken)
			}
			if tt.broken && n != 1 {
				t.Errorf("cut count = %d, want 1", n)
			}
		})
	}
}

func TestCut_IgnoresIterationAndStretch(t *testing.T) {
	p, vp, z := unitView()
	m := segmentMesh(z, mgl64.Vec2{0, 0}, mgl64.Vec2{0, 10})
	c := New(p, DefaultPickRadius)

	if n := c.Cut(m, mgl64.Vec2{-5, 5}, mgl64.Vec2{5, 5}, vp); n != 1 {
		t.Fatalf("cut count = %d, want 1", n)
	}
	if n := c.Cut(m, mgl64.Vec2{-5, 5}, mgl64.Vec2{5, 5}, vp); n != 0 {
		t.Errorf("second cut of a broken constraint = %d, want 0", n)
	}
}

func TestPress_PicksNearestUnlocked(t *testing.T) {
	p, vp, z := unitView()
	m := cloth.NewMesh(cloth.DefaultParams())
	m.AddParticle(mgl64.Vec3{0, 0, z}, true)
	m.AddParticle(mgl64.Vec3{30, 0, z}, false)
	m.AddParticle(mgl64.Vec3{12, 0, z}, false)

	c := New(p, DefaultPickRadius)
	if !c.Press(m, mgl64.Vec2{1, 0}, vp) {
		t.Fatal("expected a grab")
	}

	idx, ok := c.Grabbed()
	if !ok || idx != 2 {
		t.Fatalf("grabbed = %d, %v; want 2, true", idx, ok)
	}
	if !m.Particles[2].Grabbed {
		t.Error("particle flag not set")
	}
	if c.Mode() != Grabbing {
		t.Errorf("mode = %v, want grabbing", c.Mode())
	}
}

func TestPress_OutsideRadius(t *testing.T) {
	p, vp, z := unitView()
	m := cloth.NewMesh(cloth.DefaultParams())
	m.AddParticle(mgl64.Vec3{50, 0, z}, false)
	m.AddParticle(mgl64.Vec3{0, 0, z}, true)

	c := New(p, DefaultPickRadius)
	if c.Press(m, mgl64.Vec2{0, 0}, vp) {
		t.Error("picked a particle at exactly the pick radius or a locked one")
	}
	if c.Mode() != Idle {
		t.Errorf("mode = %v, want idle", c.Mode())
	}
}

func TestDragAndRelease(t *testing.T) {
	p := projection.NewProjector()
	vp := projection.Viewport{Width: 1400, Height: 900}
	m := cloth.NewMesh(cloth.DefaultParams())
	m.AddParticle(mgl64.Vec3{0, 100, 40}, false)
	m.Particles[0].Prev = mgl64.Vec3{0, 99, 40}

	c := New(p, DefaultPickRadius)
	if !c.Press(m, p.WorldToScreen(m.Particles[0].Pos, vp), vp) {
		t.Fatal("expected a grab")
	}

	pointer := mgl64.Vec2{800, 400}
	c.Drag(m, pointer, vp)

	want, _ := p.ScreenToWorldAtDepth(pointer, 40, vp)
	pt := m.Particles[0]
	if !pt.Pos.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("pos = %v, want %v", pt.Pos, want)
	}
	if pt.Prev != pt.Pos {
		t.Errorf("prev = %v, want %v", pt.Prev, pt.Pos)
	}
	if got := p.WorldToScreen(pt.Pos, vp); !got.ApproxEqualThreshold(pointer, 1e-9) {
		t.Errorf("particle projects to %v, want pointer %v", got, pointer)
	}

	c.Release(m)
	if m.Particles[0].Grabbed {
		t.Error("grab flag survived release")
	}
	if _, ok := c.Grabbed(); ok {
		t.Error("controller still grabbing after release")
	}

	before := m.Particles[0].Pos
	c.Drag(m, mgl64.Vec2{0, 0}, vp)
	if m.Particles[0].Pos != before {
		t.Error("drag moved a particle while idle")
	}
}
