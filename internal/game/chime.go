package game

import (
	"fmt"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	chimeLength = time.Second / 12
	chimeVolume = 0.25
	chimeDecay  = 5.0
)

// Chime plays a short tone whenever the indicator moves. Each position
// sounds one semitone above the previous one.
type Chime struct {
	sampleRate beep.SampleRate
	frequency  float64
}

// NewChime initializes the speaker. It must be called at most once per process.
func NewChime(sampleRate int, frequency float64) (*Chime, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Chime{sampleRate: sr, frequency: frequency}, nil
}

// Play replaces whatever is sounding with the tone for position.
func (c *Chime) Play(position int) {
	speaker.Clear()
	speaker.Play(tone(c.sampleRate, pitch(c.frequency, position), chimeLength))
}

func pitch(base float64, position int) float64 {
	return base * math.Pow(2, float64(position)/12)
}

// tone is a sine wave with an exponential decay, cut after d.
func tone(sr beep.SampleRate, frequency float64, d time.Duration) beep.Streamer {
	n := sr.N(d)
	pos := 0
	return beep.Take(n, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			env := math.Exp(-chimeDecay * float64(pos) / float64(n))
			v := chimeVolume * env * math.Sin(2*math.Pi*frequency*float64(pos)/float64(sr))
			samples[i] = [2]float64{v, v}
			pos++
		}
		return len(samples), true
	}))
}
