package export

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/clothsim/internal/projection"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/viz"
)

var vp = projection.Viewport{Width: 1400, Height: 900}

func TestLinesToSVG(t *testing.T) {
	blue := color.RGBA{R: 50, G: 255, B: 255, A: 255}
	yellow := color.RGBA{R: 255, G: 255, A: 255}
	lines := []sim.Line{
		{From: mgl64.Vec2{0, 0}, To: mgl64.Vec2{10, 0}, Color: blue},
		{From: mgl64.Vec2{10, 0}, To: mgl64.Vec2{20, 0}, Color: blue},
		{From: mgl64.Vec2{0, 0}, To: mgl64.Vec2{0, 10}, Color: yellow},
	}

	svg := LinesToSVG(lines, vp)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("missing svg envelope")
	}
	if got := strings.Count(svg, "<line "); got != 3 {
		t.Errorf("expected 3 lines, got %d", got)
	}
	if got := strings.Count(svg, "<g "); got != 2 {
		t.Errorf("expected 2 colour groups, got %d", got)
	}
	if strings.Count(svg, "<g ") != strings.Count(svg, "</g>") {
		t.Error("unbalanced groups")
	}
	if !strings.Contains(svg, `stroke="#32ffff"`) || !strings.Contains(svg, `stroke="#ffff00"`) {
		t.Error("missing stroke colours")
	}
	if !strings.Contains(svg, `width="1400" height="900"`) {
		t.Error("viewport size not used")
	}
}

func TestLinesToSVG_Empty(t *testing.T) {
	svg := LinesToSVG(nil, vp)
	if strings.Contains(svg, "<g") || !strings.HasSuffix(svg, "</svg>") {
		t.Errorf("unexpected empty document:\n%s", svg)
	}
}

func TestWriteSVG(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Cols, cfg.Rows = 3, 3
	s, err := sim.New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteSVG(&buf, s, vp); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := strings.Count(buf.String(), "<line "); got != 12 {
		t.Errorf("expected 12 constraints drawn, got %d", got)
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2) != "" {
		t.Error("expected empty output for nil canvas")
	}

	c := viz.NewCanvas(4, 2)
	c.Set(0, 0, color.RGBA{R: 255, A: 255})
	c.Set(7, 7, color.RGBA{B: 255, A: 255})

	svg := CanvasToSVG(c, 2)
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if !strings.Contains(svg, `fill="#ff0000"`) || !strings.Contains(svg, `fill="#0000ff"`) {
		t.Error("dot colours missing")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single sample")
	}

	svg := SeriesToSVG([]float64{3, 2, 2, 1}, 300, 100, "#00ff88")
	if !strings.Contains(svg, `d="M0.0,`) {
		t.Errorf("path does not start at x=0:\n%s", svg)
	}
	if got := strings.Count(svg, " L"); got != 3 {
		t.Errorf("expected 3 segments, got %d", got)
	}
}
