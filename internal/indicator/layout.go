package indicator

import "math"

// Layout is the geometry of one frame. It depends only on the widget size
// and the number of circles.
type Layout struct {
	Width, Height float64
	Circles       int

	EmptyRadius  float64
	FilledRadius float64
	ShrunkRadius float64

	// CutAngle is where rails meet the outline, in degrees from the horizontal.
	CutAngle   float64
	// RailOffset is half the vertical distance between the two rails.
	RailOffset float64
	Rails      [2]float64
}

// Rail is one horizontal segment joining two neighbouring outlines.
type Rail struct {
	StartX, EndX float64
}

// NewLayout computes the geometry for a widget of the given size.
func NewLayout(width, height float64, circles int) Layout {
	if circles < 1 {
		circles = 1
	}
	l := Layout{Width: width, Height: height, Circles: circles}

	l.EmptyRadius = height * 0.8 / 2
	l.FilledRadius = height * 0.6 / 2
	l.ShrunkRadius = (height / 8) * 0.6
	l.RailOffset = height / 8

	// Keep every outline inside its own slot on narrow widgets.
	if slot := width / float64(2*circles); l.EmptyRadius > slot && l.EmptyRadius > 0 {
		scale := slot / l.EmptyRadius
		l.EmptyRadius = slot
		l.FilledRadius *= scale
		l.ShrunkRadius *= scale
		l.RailOffset *= scale
	}

	if l.EmptyRadius > 0 {
		l.CutAngle = math.Asin(l.RailOffset/l.EmptyRadius) * 180 / math.Pi
	}
	center := height / 2
	l.Rails = [2]float64{center - l.RailOffset, center + l.RailOffset}
	return l
}

// CenterX returns the horizontal center of circle i.
func (l Layout) CenterX(i int) float64 {
	return l.Width * float64(2*i+1) / float64(2*l.Circles)
}

// CenterY returns the vertical center shared by all circles.
func (l Layout) CenterY() float64 {
	return l.Height / 2
}

// Span returns the horizontal extent of circle i's outline.
func (l Layout) Span(i int) (left, right float64) {
	cx := l.CenterX(i)
	return cx - l.EmptyRadius, cx + l.EmptyRadius
}

// RailBetween returns the rail from circle i-1 to circle i. ok is false when
// the outlines touch or overlap and there is nothing to draw.
func (l Layout) RailBetween(i int) (r Rail, ok bool) {
	if i < 1 || i >= l.Circles {
		return Rail{}, false
	}
	tangent := pythagoras(l.EmptyRadius, l.RailOffset)
	r = Rail{
		StartX: l.CenterX(i-1) + tangent,
		EndX:   l.CenterX(i) - tangent,
	}
	return r, r.StartX < r.EndX
}

// HitTest returns the index of the first circle containing (x, y), or -1.
// Coordinates are relative to the widget.
func (l Layout) HitTest(x, y float64) int {
	cy := l.CenterY()
	for i := 0; i < l.Circles; i++ {
		if distance(l.CenterX(i), cy, x, y) <= l.EmptyRadius {
			return i
		}
	}
	return -1
}

func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x1-x2, y1-y2)
}

// pythagoras returns the missing leg of a right triangle.
func pythagoras(hyp, leg float64) float64 {
	d := hyp*hyp - leg*leg
	if d <= 0 {
		return 0
	}
	return math.Sqrt(d)
}
