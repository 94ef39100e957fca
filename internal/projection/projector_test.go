package projection

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestWorldToScreen(t *testing.T) {
	p := NewProjector()
	vp := Viewport{Width: 1400, Height: 900}

	tests := []struct {
		name string
		pos  mgl64.Vec3
		want mgl64.Vec2
	}{
		{"origin", mgl64.Vec3{0, 0, 0}, mgl64.Vec2{700, 90}},
		{"offset at zero depth", mgl64.Vec3{140, 280, 0}, mgl64.Vec2{700 + 140*900.0/1400, 90 + 280*900.0/1400}},
		{"camera depth gives unit scale", mgl64.Vec3{10, 20, -500}, mgl64.Vec2{710, 110}},
		{"far plane shrinks", mgl64.Vec3{100, 0, 400}, mgl64.Vec2{700 + 100*0.5, 90}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.WorldToScreen(tt.pos, vp)
			if !got.ApproxEqualThreshold(tt.want, 1e-9) {
				t.Errorf("WorldToScreen(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestScreenToWorldAtDepth_RoundTrip(t *testing.T) {
	p := NewProjector()
	vp := Viewport{Width: 1280, Height: 720}

	points := []mgl64.Vec3{
		{0, 0, 0},
		{-300, 120, 35},
		{250, 600, -80},
		{12.5, 7.25, 290},
	}

	for _, pos := range points {
		screen := p.WorldToScreen(pos, vp)
		back, ok := p.ScreenToWorldAtDepth(screen, pos.Z(), vp)
		if !ok {
			t.Fatalf("inverse rejected depth %f", pos.Z())
		}
		if !back.ApproxEqualThreshold(pos, 1e-9) {
			t.Errorf("round trip %v -> %v -> %v", pos, screen, back)
		}
	}
}

func TestScale_Degenerate(t *testing.T) {
	p := NewProjector()

	if s := p.Scale(-1400); s != 0 {
		t.Errorf("scale on camera plane = %f, want 0", s)
	}
	if s := p.Scale(-2000); s != 0 {
		t.Errorf("scale behind camera = %f, want 0", s)
	}
	if _, ok := p.ScreenToWorldAtDepth(mgl64.Vec2{1, 1}, -1400, Viewport{100, 100}); ok {
		t.Error("expected inverse to reject camera-plane depth")
	}

	s := p.Scale(0)
	if math.Abs(s-900.0/1400.0) > 1e-12 {
		t.Errorf("Scale(0) = %f", s)
	}
}
