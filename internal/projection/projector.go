// Package projection maps cloth space to screen space and back.
//
// The camera is a fixed pinhole looking down +z. There is no field of view
// or aspect correction; the rendering collaborator owns rasterization.
package projection

import "github.com/go-gl/mathgl/mgl64"

const (
	DefaultFocalLength  = 900.0
	DefaultCameraOffset = 500.0
	DefaultVerticalBias = 0.1 // fraction of viewport height
)

// Viewport is the size of the drawable surface in screen units.
type Viewport struct {
	Width, Height float64
}

// Center returns the screen position of the cloth-space origin.
func (v Viewport) Center(bias float64) mgl64.Vec2 {
	return mgl64.Vec2{v.Width / 2, v.Height * bias}
}

type Projector struct {
	FocalLength  float64
	CameraOffset float64
	VerticalBias float64
}

func NewProjector() Projector {
	return Projector{
		FocalLength:  DefaultFocalLength,
		CameraOffset: DefaultCameraOffset,
		VerticalBias: DefaultVerticalBias,
	}
}

// Scale returns the perspective factor at the given depth, or 0 when the
// depth lies on or behind the camera plane.
func (p Projector) Scale(depth float64) float64 {
	denom := p.FocalLength + depth + p.CameraOffset
	if denom <= 0 {
		return 0
	}
	return p.FocalLength / denom
}

func (p Projector) WorldToScreen(pos mgl64.Vec3, vp Viewport) mgl64.Vec2 {
	s := p.Scale(pos.Z())
	c := vp.Center(p.VerticalBias)
	return mgl64.Vec2{c.X() + pos.X()*s, c.Y() + pos.Y()*s}
}

// ScreenToWorldAtDepth inverts WorldToScreen for a known depth. ok is false
// when the depth has no valid perspective scale.
func (p Projector) ScreenToWorldAtDepth(screen mgl64.Vec2, depth float64, vp Viewport) (pos mgl64.Vec3, ok bool) {
	s := p.Scale(depth)
	if s == 0 {
		return mgl64.Vec3{}, false
	}
	c := vp.Center(p.VerticalBias)
	return mgl64.Vec3{(screen.X() - c.X()) / s, (screen.Y() - c.Y()) / s, depth}, true
}
