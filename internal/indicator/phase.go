package indicator

import "time"

const (
	// GrowingTime is how long the dot takes to shrink or grow.
	GrowingTime = 100 * time.Millisecond
	// TranslationVelocity is the travel speed of the shrunk dot in pixels per millisecond.
	TranslationVelocity = 3.5
	// FrameDelay paces redraws while an animation is running.
	FrameDelay = time.Second / 120
)

// Phase is the animation stage of the filled dot.
type Phase int

const (
	Complete Phase = iota
	Shrinking
	Translating
	Growing
)

func (p Phase) String() string {
	switch p {
	case Complete:
		return "complete"
	case Shrinking:
		return "shrinking"
	case Translating:
		return "translating"
	case Growing:
		return "growing"
	default:
		return "unknown"
	}
}

// animation bounds the running phase in wall-clock time.
type animation struct {
	start time.Time
	end   time.Time
}

func (a animation) done(now time.Time) bool {
	return !now.Before(a.end)
}

// interpolate linearly maps now within [start, end] onto [from, to].
// A zero or negative duration jumps straight to the end value.
func (a animation) interpolate(from, to float64, now time.Time) float64 {
	duration := a.end.Sub(a.start)
	if duration <= 0 {
		return to
	}
	progress := clamp01(float64(now.Sub(a.start)) / float64(duration))
	if progress == 1 {
		return to
	}
	return from + (to-from)*progress
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
