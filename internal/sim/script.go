package sim

import "github.com/go-gl/mathgl/mgl64"

func lerp(a, b mgl64.Vec2, t float64) mgl64.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// CutScript parks the pointer on a at frame start, then sweeps it to b over
// the next n frames with the secondary button held.
func CutScript(a, b mgl64.Vec2, start, n int) Script {
	if n < 1 {
		n = 1
	}
	return func(frame int, in Input) Input {
		k := frame - start
		if k < 0 || k > n {
			return in
		}
		in.Pointer = lerp(a, b, float64(k)/float64(n))
		in.SecondaryHeld = k > 0
		return in
	}
}

// DragScript presses on a at frame start, drags to b over n frames and
// releases on the frame after.
func DragScript(a, b mgl64.Vec2, start, n int) Script {
	if n < 1 {
		n = 1
	}
	return func(frame int, in Input) Input {
		k := frame - start
		switch {
		case k < 0 || k > n+1:
			return in
		case k == 0:
			in.Pointer = a
			in.PrimaryPressed = true
		case k <= n:
			in.Pointer = lerp(a, b, float64(k)/float64(n))
		default:
			in.Pointer = b
			in.PrimaryReleased = true
		}
		return in
	}
}

// Chain applies scripts in order, each seeing the previous one's output.
func Chain(scripts ...Script) Script {
	return func(frame int, in Input) Input {
		for _, sc := range scripts {
			if sc != nil {
				in = sc(frame, in)
			}
		}
		return in
	}
}
