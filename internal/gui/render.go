package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

func toVector2(v mgl64.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X()), float32(v.Y()))
}

func (a *App) drawCloth() {
	for _, l := range a.lines {
		rl.DrawLineV(toVector2(l.From), toVector2(l.To), l.Color)
	}
}

func (a *App) drawCursor() {
	pos := toVector2(a.pointer)
	switch {
	case a.cutting:
		rl.DrawLineEx(toVector2(a.lastPointer), pos, 2, ColCut)
		rl.DrawCircleLines(int32(pos.X), int32(pos.Y), 6, ColCut)
	case a.hover():
		rl.DrawCircleLines(int32(pos.X), int32(pos.Y), float32(a.Sim.Controller().PickRadius), rl.NewColor(255, 255, 255, 40))
		rl.DrawCircleV(pos, 3, ColSelect)
	default:
		rl.DrawCircleV(pos, 2, ColAccent)
	}
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX := 30
	rectY := int(rl.GetScreenHeight()) - 120
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	drawText(fmt.Sprintf("live %.0f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
