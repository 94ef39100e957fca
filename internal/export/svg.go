package export

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/san-kum/clothsim/internal/projection"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/viz"
)

const background = "#0a0a0a"

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func header(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

// LinesToSVG draws the render list as one <line> per constraint, grouped
// by colour so runs of equal depth share a stroke.
func LinesToSVG(lines []sim.Line, vp projection.Viewport) string {
	var sb strings.Builder
	header(&sb, vp.Width, vp.Height)

	open := false
	var current color.RGBA
	for _, l := range lines {
		if !open || l.Color != current {
			if open {
				sb.WriteString("</g>\n")
			}
			current = l.Color
			sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1">`+"\n", hex(current)))
			open = true
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			l.From.X(), l.From.Y(), l.To.X(), l.To.Y()))
	}
	if open {
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteSVG writes the simulator's current render list.
func WriteSVG(w io.Writer, s *sim.Simulator, vp projection.Viewport) error {
	_, err := io.WriteString(w, LinesToSVG(s.Lines(vp), vp))
	return err
}

// CanvasToSVG converts a braille canvas to SVG dots in each cell's colour.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.SubWidth()) * scale
	height := float64(canvas.SubHeight()) * scale

	var sb strings.Builder
	header(&sb, width, height)

	dotRadius := scale * 0.4
	for y := 0; y < canvas.SubHeight(); y++ {
		for x := 0; x < canvas.SubWidth(); x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
				cx, cy, dotRadius, hex(canvas.Colors[y/4][x/2])))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots a metric series against frame index.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
