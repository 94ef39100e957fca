package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
)

func testMesh(t *testing.T) *cloth.Mesh {
	t.Helper()
	m, err := cloth.NewGrid(3, 3, 10, cloth.DefaultParams())
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return m
}

func TestLiveAndRemoved(t *testing.T) {
	m := testMesh(t)
	live, removed := NewLiveConstraints(), NewRemoved()

	live.Observe(m, sim.FrameStats{Live: 12})
	removed.Observe(m, sim.FrameStats{Evicted: 2})
	removed.Observe(m, sim.FrameStats{Evicted: 3})

	if live.Value() != 12 {
		t.Errorf("live = %f, want 12", live.Value())
	}
	if removed.Value() != 5 {
		t.Errorf("removed = %f, want 5", removed.Value())
	}

	removed.Reset()
	if removed.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestMaxStretch(t *testing.T) {
	m := testMesh(t)
	s := NewMaxStretch()

	s.Observe(m, sim.FrameStats{})
	if math.Abs(s.Value()-1) > 1e-12 {
		t.Errorf("rest cloth stretch = %f, want 1", s.Value())
	}

	m.Particles[m.Index(1, 2)].Pos = m.Particles[m.Index(1, 2)].Pos.Add(mgl64.Vec3{0, 10, 0})
	s.Observe(m, sim.FrameStats{})
	if math.Abs(s.Value()-2) > 1e-12 {
		t.Errorf("stretched cloth = %f, want 2", s.Value())
	}
}

func TestMeanDepthAndMotion(t *testing.T) {
	m := testMesh(t)
	for i := 3; i < len(m.Particles); i++ {
		m.Particles[i].Pos[2] = 4
		m.Particles[i].Prev = m.Particles[i].Pos.Sub(mgl64.Vec3{0, 3, 4})
	}
	m.Particles[0].Pos[2] = 1000

	depth, motion := NewMeanDepth(), NewMotion()
	depth.Observe(m, sim.FrameStats{})
	motion.Observe(m, sim.FrameStats{})

	if depth.Value() != 4 {
		t.Errorf("mean depth = %f, want 4 (locked particles excluded)", depth.Value())
	}
	if math.Abs(motion.Value()-5) > 1e-12 {
		t.Errorf("motion = %f, want 5", motion.Value())
	}
}

func TestDefault_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range Default() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %q", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 metrics, got %d", len(seen))
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		m, ok := ByName(name)
		if !ok || m.Name() != name {
			t.Errorf("ByName(%q) = %v, %v", name, m, ok)
		}
	}

	a, _ := ByName("max_stretch")
	b, _ := ByName("max_stretch")
	if a == b {
		t.Error("ByName returned a shared instance")
	}

	if _, ok := ByName("energy"); ok {
		t.Error("unknown name resolved")
	}
}
