package interact

import "github.com/go-gl/mathgl/mgl64"

// ccw reports whether p0, p1, p2 turn counter-clockwise by signed area.
func ccw(p0, p1, p2 mgl64.Vec2) bool {
	return (p2.Y()-p0.Y())*(p1.X()-p0.X()) > (p1.Y()-p0.Y())*(p2.X()-p0.X())
}

// SegmentsIntersect reports whether segment a-b crosses segment c-d.
// Collinear and touching segments do not count as crossing.
func SegmentsIntersect(a, b, c, d mgl64.Vec2) bool {
	return ccw(a, c, d) != ccw(b, c, d) && ccw(a, b, c) != ccw(a, b, d)
}
