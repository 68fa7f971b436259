// Package indicator implements a page indicator: a row of outlined circles
// joined by rails, with a filled dot that shrinks, slides and grows to mark
// the selected position.
package indicator

import (
	"image/color"
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultColor is the tint used when none is configured.
var DefaultColor = color.RGBA{B: 0xff, A: 0xff}

const (
	DefaultCircles     = 1
	DefaultStrokeWidth = 15.0
)

// Widget holds the configuration and animation state of one indicator.
// It is not safe for concurrent use; hosts call it from their UI loop.
type Widget struct {
	color   color.Color
	circles int
	stroke  float64

	originX, originY float64
	width, height    float64

	phase   Phase
	current int
	target  int
	anim    animation

	onChange func(int)
	host     Invalidator
	now      func() time.Time
	log      logrus.FieldLogger
}

// Option configures a Widget.
type Option func(*Widget)

func WithColor(c color.Color) Option {
	return func(w *Widget) {
		if c != nil {
			w.color = c
		}
	}
}

// WithCircles sets the number of positions. Values below one are treated as one.
func WithCircles(n int) Option {
	return func(w *Widget) { w.circles = n }
}

func WithStrokeWidth(width float64) Option {
	return func(w *Widget) { w.stroke = width }
}

// WithOnChange registers the change callback.
func WithOnChange(fn func(int)) Option {
	return func(w *Widget) { w.onChange = fn }
}

// WithInvalidator connects the widget to its host's redraw scheduling.
func WithInvalidator(inv Invalidator) Option {
	return func(w *Widget) {
		if inv != nil {
			w.host = inv
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(w *Widget) {
		if now != nil {
			w.now = now
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(w *Widget) {
		if l != nil {
			w.log = l
		}
	}
}

// New creates a widget resting on position 0.
func New(opts ...Option) *Widget {
	w := &Widget{
		color:   DefaultColor,
		circles: DefaultCircles,
		stroke:  DefaultStrokeWidth,
		phase:   Complete,
		host:    nopInvalidator{},
		now:     time.Now,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.circles < 1 {
		w.circles = 1
	}
	return w
}

func (w *Widget) SetOnChange(fn func(int)) { w.onChange = fn }

// SetOrigin places the widget's top-left corner in window coordinates.
func (w *Widget) SetOrigin(x, y float64) {
	w.originX, w.originY = x, y
}

// SetSize records the widget size used for hit testing before the first frame.
func (w *Widget) SetSize(width, height float64) {
	w.width, w.height = width, height
}

func (w *Widget) Position() int { return w.current }
func (w *Widget) Target() int { return w.target }
func (w *Widget) Phase() Phase { return w.phase }
func (w *Widget) Circles() int { return w.circles }
func (w *Widget) Animating() bool { return w.phase != Complete }

// StrokePaint is the paint used for outlines and rails.
func (w *Widget) StrokePaint() Paint {
	return Paint{Color: w.color, StrokeWidth: w.stroke}
}

// FillPaint is the paint used for the dot.
func (w *Widget) FillPaint() Paint {
	return Paint{Color: w.color}
}

// SetPosition asks the dot to move to index. Requests made while a transition
// is running are dropped. It reports whether the request started a transition.
func (w *Widget) SetPosition(index int) bool {
	if index < 0 || index >= w.circles {
		return false
	}
	if index == w.current || index == w.target || w.phase != Complete {
		return false
	}

	now := w.now()
	w.target = index
	w.phase = Shrinking
	w.anim = animation{start: now, end: now.Add(GrowingTime)}
	w.log.WithFields(logrus.Fields{"from": w.current, "to": index}).Debug("indicator transition started")

	if w.onChange != nil {
		w.onChange(index)
	}
	w.host.Invalidate()
	return true
}

// HandlePointerDown maps a window-relative press onto a circle and selects
// it. It returns the index hit, or -1 when the press missed every circle.
func (w *Widget) HandlePointerDown(x, y float64) int {
	l := NewLayout(w.width, w.height, w.circles)
	ix := l.HitTest(x-w.originX, y-w.originY)
	if ix >= 0 {
		w.SetPosition(ix)
	}
	return ix
}

// Render draws one frame and advances the animation.
func (w *Widget) Render(c Canvas, width, height float64) {
	w.width, w.height = width, height
	l := NewLayout(width, height, w.circles)

	w.drawOutlines(c, l)
	w.drawRails(c, l)

	animating := w.phase != Complete
	w.drawDot(c, l, w.now())
	if animating {
		w.host.InvalidateAfter(FrameDelay)
	}
}

func (w *Widget) drawOutlines(c Canvas, l Layout) {
	p := w.StrokePaint()
	cy := l.CenterY()
	angle := l.CutAngle

	if l.Circles == 1 {
		c.StrokeArc(l.CenterX(0), cy, l.EmptyRadius, 0, 360, p)
		return
	}
	for i := 0; i < l.Circles; i++ {
		cx := l.CenterX(i)
		switch i {
		case 0:
			c.StrokeArc(cx, cy, l.EmptyRadius, angle, 360-2*angle, p)
		case l.Circles - 1:
			c.StrokeArc(cx, cy, l.EmptyRadius, 180+angle, 360-2*angle, p)
		default:
			c.StrokeArc(cx, cy, l.EmptyRadius, 180+angle, 180-2*angle, p)
			c.StrokeArc(cx, cy, l.EmptyRadius, angle, 180-2*angle, p)
		}
	}
}

func (w *Widget) drawRails(c Canvas, l Layout) {
	p := w.StrokePaint()
	for i := 1; i < l.Circles; i++ {
		r, ok := l.RailBetween(i)
		if !ok {
			continue
		}
		c.StrokeLine(r.StartX, l.Rails[0], r.EndX, l.Rails[0], p)
		c.StrokeLine(r.StartX, l.Rails[1], r.EndX, l.Rails[1], p)
	}
}

// drawDot draws the filled dot for the current phase, then moves to the next
// phase if the current one has run out.
func (w *Widget) drawDot(c Canvas, l Layout, now time.Time) {
	p := w.FillPaint()
	cy := l.CenterY()
	cx := l.CenterX(w.current)

	switch w.phase {
	case Complete:
		c.FillCircle(cx, cy, l.FilledRadius, p)

	case Shrinking:
		c.FillCircle(cx, cy, w.anim.interpolate(l.FilledRadius, l.ShrunkRadius, now), p)
		if w.anim.done(now) {
			travel := math.Abs(l.CenterX(w.target) - cx)
			w.enter(Translating, now, travelTime(travel))
		}

	case Translating:
		x := w.anim.interpolate(cx, l.CenterX(w.target), now)
		c.FillCircle(x, cy, l.ShrunkRadius, p)
		if w.anim.done(now) {
			w.current = w.target
			w.enter(Growing, now, GrowingTime)
		}

	case Growing:
		c.FillCircle(cx, cy, w.anim.interpolate(l.ShrunkRadius, l.FilledRadius, now), p)
		if w.anim.done(now) {
			w.phase = Complete
			w.log.WithField("position", w.current).Debug("indicator transition complete")
		}
	}
}

func (w *Widget) enter(p Phase, now time.Time, d time.Duration) {
	w.phase = p
	w.anim = animation{start: now, end: now.Add(d)}
	w.log.WithField("phase", p).Debug("indicator phase")
}

// travelTime is how long the shrunk dot needs to cover distance pixels.
func travelTime(distance float64) time.Duration {
	return time.Duration(distance / TranslationVelocity * float64(time.Millisecond))
}
