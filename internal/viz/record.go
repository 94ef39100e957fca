package viz

import (
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"

	"github.com/san-kum/clothsim/internal/sim"
)

// depthLevels is how many green steps of the depth colour the GIF palette keeps.
const depthLevels = 16

// Recorder collects rasterised frames of the render list for a GIF.
type Recorder struct {
	Width, Height int
	Scale         float64 // virtual pixels per image pixel
	Delay         int     // hundredths of a second between frames
	frames        []*image.Paletted
	palette       color.Palette
}

func NewRecorder(width, height int, scale float64, rc sim.RenderConfig) *Recorder {
	palette := color.Palette{color.Black, rc.Highlight}
	for i := 0; i < depthLevels; i++ {
		c := rc.Base
		c.G = uint8(i * 255 / (depthLevels - 1))
		palette = append(palette, c)
	}
	return &Recorder{
		Width:   width,
		Height:  height,
		Scale:   scale,
		Delay:   2,
		palette: palette,
	}
}

func (r *Recorder) Frames() int { return len(r.frames) }

// Capture rasterises lines given in virtual pixel coordinates.
func (r *Recorder) Capture(lines []sim.Line) {
	img := image.NewPaletted(image.Rect(0, 0, r.Width, r.Height), r.palette)
	for _, l := range lines {
		idx := uint8(r.palette.Index(l.Color))
		x0, y0 := int(l.From.X()/r.Scale), int(l.From.Y()/r.Scale)
		x1, y1 := int(l.To.X()/r.Scale), int(l.To.Y()/r.Scale)
		plotLine(img, x0, y0, x1, y1, idx)
	}
	r.frames = append(r.frames, img)
}

func (r *Recorder) Encode(w io.Writer) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

// Save writes the GIF to path. Nothing is written when no frames were captured.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Encode(f)
}

func plotLine(img *image.Paletted, x0, y0, x1, y1 int, idx uint8) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	bounds := img.Bounds()

	for i := 0; i <= maxLineSteps; i++ {
		if image.Pt(x0, y0).In(bounds) {
			img.SetColorIndex(x0, y0, idx)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}
