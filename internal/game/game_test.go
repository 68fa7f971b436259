package game

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/page-indicator/internal/indicator"
)

func newTestGame(t *testing.T, circles int) (*Game, *test.Hook, *[]int) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	var changes []int
	g := New(Options{
		Width:    640,
		Height:   240,
		Color:    color.RGBA{R: 0xff, A: 0xff},
		Circles:  circles,
		Stroke:   6,
		Logger:   logger,
		OnChange: func(i int) { changes = append(changes, i) },
	})
	return g, hook, &changes
}

func TestNewPlacesWidget(t *testing.T) {
	g, _, _ := newTestGame(t, 4)

	x, y, w, h := g.widgetBounds()
	assert.Equal(t, 40.0, x)
	assert.Equal(t, 80.0, y)
	assert.Equal(t, 560.0, w)
	assert.Equal(t, 80.0, h)
	assert.True(t, g.dirty, "first frame is always drawn")

	w2, h2 := g.Layout(1, 1)
	assert.Equal(t, 640, w2)
	assert.Equal(t, 240, h2)
}

func TestClickInWindowCoordinates(t *testing.T) {
	g, hook, changes := newTestGame(t, 4)
	g.dirty = false

	// second circle: 40 + 560*3/8
	ix := g.Widget().HandlePointerDown(250, 120)

	assert.Equal(t, 1, ix)
	assert.Equal(t, []int{1}, *changes)
	assert.Equal(t, indicator.Shrinking, g.Widget().Phase())
	assert.True(t, g.dirty)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, "indicator changed", hook.LastEntry().Message)
	assert.Equal(t, 1, hook.LastEntry().Data["position"])
}

func TestClickOutsideWidget(t *testing.T) {
	g, hook, changes := newTestGame(t, 4)

	assert.Equal(t, -1, g.Widget().HandlePointerDown(5, 5))
	assert.Empty(t, *changes)
	assert.Empty(t, hook.AllEntries())
}

func TestRedrawScheduling(t *testing.T) {
	g, _, _ := newTestGame(t, 2)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return base }
	g.dirty = false

	assert.False(t, g.needsRedraw(base))

	g.InvalidateAfter(20 * time.Millisecond)
	g.InvalidateAfter(8 * time.Millisecond)
	g.InvalidateAfter(30 * time.Millisecond)
	assert.Equal(t, base.Add(8*time.Millisecond), g.redrawAt, "earliest request wins")

	assert.False(t, g.needsRedraw(base.Add(7*time.Millisecond)))
	assert.True(t, g.needsRedraw(base.Add(8*time.Millisecond)))

	g.redrawAt = time.Time{}
	g.Invalidate()
	assert.True(t, g.needsRedraw(base))
}

func held(keys ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, h := range keys {
			if h == k {
				return true
			}
		}
		return false
	}
}

func TestKeysPressedTogetherAreAllRecorded(t *testing.T) {
	g, _, changes := newTestGame(t, 4)

	require.NoError(t, g.handleKeys(held(ebiten.KeyArrowRight, ebiten.KeySpace, ebiten.Key3, ebiten.KeyQ)))
	assert.Equal(t, []int{1}, *changes, "arrow wins, the rest is dropped by the running transition")
	for _, k := range []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeySpace, ebiten.Key3, ebiten.KeyQ} {
		assert.True(t, g.prevKey[k], "key %v", k)
	}

	// Same key state on an idle widget: space is still held, not newly pressed.
	idle, _, idleChanges := newTestGame(t, 4)
	idle.prevKey = g.prevKey
	require.NoError(t, idle.handleKeys(held(ebiten.KeySpace)))
	assert.Empty(t, *idleChanges)
	assert.Equal(t, indicator.Complete, idle.Widget().Phase())
	assert.False(t, idle.prevKey[ebiten.KeyArrowRight])
}

func TestKeyEdges(t *testing.T) {
	g, _, changes := newTestGame(t, 4)

	require.NoError(t, g.handleKeys(held(ebiten.Key3)))
	assert.Equal(t, []int{2}, *changes)

	require.NoError(t, g.handleKeys(held()))
	assert.ErrorIs(t, g.handleKeys(held(ebiten.KeyEscape)), ebiten.Termination)
	assert.ErrorIs(t, g.handleKeys(held(ebiten.KeyEscape, ebiten.KeyQ)), ebiten.Termination, "Q edge seen while Esc is held")
}

func TestStatus(t *testing.T) {
	g, _, _ := newTestGame(t, 3)
	assert.Contains(t, g.status(), "Position 1/3 (complete)")

	g.SetError(assert.AnError)
	assert.Contains(t, g.status(), "Error: "+assert.AnError.Error())
}

func TestTone(t *testing.T) {
	sr := beep.SampleRate(8000)
	s := tone(sr, 440, 50*time.Millisecond)

	buf := make([][2]float64, 128)
	total := 0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			assert.LessOrEqual(t, math.Abs(smp[0]), chimeVolume)
			assert.Equal(t, smp[0], smp[1])
		}
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, sr.N(50*time.Millisecond), total)
}

func TestPitch(t *testing.T) {
	assert.InDelta(t, 440.0, pitch(440, 0), 1e-9)
	assert.InDelta(t, 880.0, pitch(440, 12), 1e-9)
}
