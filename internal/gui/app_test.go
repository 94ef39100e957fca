package gui

import (
	"testing"

	"github.com/san-kum/clothsim/internal/projection"
	"github.com/san-kum/clothsim/internal/sim"
)

func testApp(t *testing.T) (*App, sim.Input) {
	t.Helper()
	cfg := sim.DefaultConfig()
	cfg.Cols, cfg.Rows = 6, 4
	s, err := sim.New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	vp := projection.Viewport{Width: 1400, Height: 900}
	target := s.Mesh().Particles[s.Mesh().Index(2, 3)].Pos
	return NewApp(s, "test"), sim.Input{Pointer: cfg.Projector.WorldToScreen(target, vp), Viewport: vp}
}

func TestFeed_ReleaseWhilePaused(t *testing.T) {
	a, in := testApp(t)

	press := in
	press.PrimaryPressed = true
	a.feed(press)
	if _, ok := a.Sim.Controller().Grabbed(); !ok {
		t.Fatal("press did not grab")
	}

	a.Running = false
	release := in
	release.PrimaryReleased = true
	a.feed(release)

	a.Running = true
	a.feed(in)
	if _, ok := a.Sim.Controller().Grabbed(); ok {
		t.Error("release during pause was dropped")
	}
	for i, pt := range a.Sim.Mesh().Particles {
		if pt.Grabbed {
			t.Errorf("particle %d still grabbed", i)
		}
	}
}

func TestFeed_PausedDoesNotStep(t *testing.T) {
	a, in := testApp(t)
	a.Running = false

	a.feed(in)
	a.feed(in)
	if a.Sim.Frame() != 0 {
		t.Errorf("frame = %d while paused", a.Sim.Frame())
	}
	if len(a.Telemetry) != 0 {
		t.Errorf("telemetry recorded %d samples while paused", len(a.Telemetry))
	}

	a.Running = true
	a.feed(in)
	if a.Sim.Frame() != 1 || len(a.Telemetry) != 1 {
		t.Errorf("frame = %d, telemetry = %d after resume", a.Sim.Frame(), len(a.Telemetry))
	}
}
