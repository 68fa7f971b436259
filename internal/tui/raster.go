package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iburimskiy/page-indicator/internal/indicator"
)

// Raster is a monochrome pixel grid that implements indicator.Canvas.
// Two vertical pixels map onto one terminal cell using half blocks, which
// keeps pixels roughly square on common fonts.
type Raster struct {
	width, height int
	pix           []bool
}

var _ indicator.Canvas = (*Raster)(nil)

// NewRaster returns a raster of width x height pixels. Height is rounded up
// to an even number.
func NewRaster(width, height int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	height += height % 2
	return &Raster{width: width, height: height, pix: make([]bool, width*height)}
}

func (r *Raster) Width() int { return r.width }
func (r *Raster) Height() int { return r.height }

func (r *Raster) Clear() {
	for i := range r.pix {
		r.pix[i] = false
	}
}

// At reports whether the pixel at (x, y) is set.
func (r *Raster) At(x, y int) bool {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return false
	}
	return r.pix[y*r.width+x]
}

func (r *Raster) set(x, y int) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.pix[y*r.width+x] = true
}

// plot sets every pixel in the box whose center satisfies inside.
func (r *Raster) plot(minX, minY, maxX, maxY float64, inside func(x, y float64) bool) {
	x0, y0 := int(math.Floor(minX)), int(math.Floor(minY))
	x1, y1 := int(math.Ceil(maxX)), int(math.Ceil(maxY))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > r.width {
		x1 = r.width
	}
	if y1 > r.height {
		y1 = r.height
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if inside(float64(x)+0.5, float64(y)+0.5) {
				r.set(x, y)
			}
		}
	}
}

func (r *Raster) StrokeArc(cx, cy, radius, startAngle, sweepAngle float64, p indicator.Paint) {
	half := math.Max(p.StrokeWidth/2, 0.5)
	ext := radius + half
	full := sweepAngle >= 360
	end := startAngle + sweepAngle
	ax, ay := polar(cx, cy, radius, startAngle)
	bx, by := polar(cx, cy, radius, end)

	r.plot(cx-ext, cy-ext, cx+ext, cy+ext, func(x, y float64) bool {
		if math.Abs(math.Hypot(x-cx, y-cy)-radius) <= half {
			if full || inSweep(angleOf(x-cx, y-cy), startAngle, sweepAngle) {
				return true
			}
		}
		if full {
			return false
		}
		// round caps
		return math.Hypot(x-ax, y-ay) <= half || math.Hypot(x-bx, y-by) <= half
	})
}

func (r *Raster) StrokeLine(x0, y0, x1, y1 float64, p indicator.Paint) {
	half := math.Max(p.StrokeWidth/2, 0.5)
	r.plot(math.Min(x0, x1)-half, math.Min(y0, y1)-half, math.Max(x0, x1)+half, math.Max(y0, y1)+half,
		func(x, y float64) bool {
			return segmentDistance(x, y, x0, y0, x1, y1) <= half
		})
}

func (r *Raster) FillCircle(cx, cy, radius float64, _ indicator.Paint) {
	if radius <= 0 {
		return
	}
	r.plot(cx-radius, cy-radius, cx+radius, cy+radius, func(x, y float64) bool {
		return math.Hypot(x-cx, y-cy) <= radius
	})
}

// Render draws the raster with half blocks in the given style.
func (r *Raster) Render(style lipgloss.Style) string {
	var b strings.Builder
	for y := 0; y < r.height; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		var row strings.Builder
		for x := 0; x < r.width; x++ {
			row.WriteRune(halfBlock(r.At(x, y), r.At(x, y+1)))
		}
		b.WriteString(style.Render(row.String()))
	}
	return b.String()
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

func polar(cx, cy, radius, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return cx + radius*math.Cos(rad), cy + radius*math.Sin(rad)
}

// angleOf returns the clockwise screen angle of (dx, dy) in [0, 360).
func angleOf(dx, dy float64) float64 {
	a := math.Atan2(dy, dx) * 180 / math.Pi
	if a < 0 {
		a += 360
	}
	return a
}

func inSweep(angle, start, sweep float64) bool {
	d := math.Mod(angle-start, 360)
	if d < 0 {
		d += 360
	}
	return d <= sweep
}

func segmentDistance(px, py, x0, y0, x1, y1 float64) float64 {
	dx, dy := x1-x0, y1-y0
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-x0, py-y0)
	}
	t := ((px-x0)*dx + (py-y0)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(x0+t*dx), py-(y0+t*dy))
}
