package indicator

import (
	"image/color"
	"time"
)

// Paint describes how a shape is drawn.
type Paint struct {
	Color       color.Color
	StrokeWidth float64
}

// Canvas is the drawing surface the widget renders onto. Coordinates are
// relative to the widget's top-left corner. Angles are in degrees, measured
// clockwise from the positive x axis as on a y-down screen.
type Canvas interface {
	StrokeArc(cx, cy, radius, startAngle, sweepAngle float64, p Paint)
	StrokeLine(x0, y0, x1, y1 float64, p Paint)
	FillCircle(cx, cy, radius float64, p Paint)
}

// Invalidator lets the widget ask its host for another frame.
type Invalidator interface {
	// Invalidate requests a redraw as soon as possible.
	Invalidate()
	// InvalidateAfter requests a redraw once d has elapsed.
	InvalidateAfter(d time.Duration)
}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate() {}
func (nopInvalidator) InvalidateAfter(time.Duration) {}
