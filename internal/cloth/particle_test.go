package cloth

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestParticleIntegrate_Pinned(t *testing.T) {
	tests := []struct {
		name    string
		locked  bool
		grabbed bool
	}{
		{"locked", true, false},
		{"grabbed", false, true},
		{"both", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt := NewParticle(mgl64.Vec3{1, 2, 3}, tt.locked)
			pt.Grabbed = tt.grabbed
			pt.Prev = mgl64.Vec3{0, 0, 0}

			pt.Integrate(1.0, DefaultParams())

			if pt.Pos != (mgl64.Vec3{1, 2, 3}) {
				t.Errorf("pinned particle moved to %v", pt.Pos)
			}
			if pt.Prev != (mgl64.Vec3{0, 0, 0}) {
				t.Errorf("pinned particle prev changed to %v", pt.Prev)
			}
		})
	}
}

func TestParticleIntegrate_Step(t *testing.T) {
	p := DefaultParams()
	pt := NewParticle(mgl64.Vec3{10, 0, 0}, false)
	pt.Prev = mgl64.Vec3{9, 0, 0}

	pt.Integrate(0.5, p)

	if pt.Prev != (mgl64.Vec3{10, 0, 0}) {
		t.Errorf("prev = %v, want old position", pt.Prev)
	}

	wantX := 10 + p.Damping
	if math.Abs(pt.Pos.X()-wantX) > 1e-12 {
		t.Errorf("x = %f, want %f", pt.Pos.X(), wantX)
	}
	if math.Abs(pt.Pos.Y()-p.Gravity) > 1e-12 {
		t.Errorf("y = %f, want %f", pt.Pos.Y(), p.Gravity)
	}

	wantZ := math.Sin(0.5+wantX*p.WavePhase) * p.WaveAmplitude * p.DepthDamping
	if math.Abs(pt.Pos.Z()-wantZ) > 1e-12 {
		t.Errorf("z = %f, want %f", pt.Pos.Z(), wantZ)
	}
}

func TestParticleIntegrate_DepthBounded(t *testing.T) {
	p := DefaultParams()
	p.Gravity = 0
	pt := NewParticle(mgl64.Vec3{0, 0, 0}, false)

	maxZ := 0.0
	for i := 0; i < 5000; i++ {
		pt.Integrate(float64(i)*0.025, p)
		maxZ = math.Max(maxZ, math.Abs(pt.Pos.Z()))
	}

	if maxZ > 200 {
		t.Errorf("depth wave grew unbounded: %f", maxZ)
	}
}

func TestParticleIsValid(t *testing.T) {
	tests := []struct {
		name  string
		pos   mgl64.Vec3
		valid bool
	}{
		{"zero", mgl64.Vec3{}, true},
		{"finite", mgl64.Vec3{1, -2, 3}, true},
		{"nan", mgl64.Vec3{math.NaN(), 0, 0}, false},
		{"inf", mgl64.Vec3{0, math.Inf(1), 0}, false},
	}

	for _, tt := range tests {
		pt := Particle{Pos: tt.pos}
		if got := pt.IsValid(); got != tt.valid {
			t.Errorf("%s: IsValid() = %v, want %v", tt.name, got, tt.valid)
		}
	}
}

func TestParamsSetParam(t *testing.T) {
	p := DefaultParams()
	p.SetParam("iterations", 0)
	if p.Iterations != 1 {
		t.Errorf("iterations clamped to %d, want 1", p.Iterations)
	}
	p.SetParam("gravity", 1.5)
	if p.Gravity != 1.5 {
		t.Errorf("gravity = %f, want 1.5", p.Gravity)
	}
	p.SetParam("unknown", 3)
	if got := p.GetParams()["gravity"]; got != 1.5 {
		t.Errorf("GetParams gravity = %f", got)
	}
}
