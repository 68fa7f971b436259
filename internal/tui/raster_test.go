package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/iburimskiy/page-indicator/internal/indicator"
)

var thin = indicator.Paint{StrokeWidth: 1}

func TestNewRasterRoundsHeight(t *testing.T) {
	r := NewRaster(3, 5)
	assert.Equal(t, 3, r.Width())
	assert.Equal(t, 6, r.Height())
	assert.False(t, r.At(-1, 0))
	assert.False(t, r.At(3, 0))
}

func TestFillCircle(t *testing.T) {
	r := NewRaster(10, 10)
	r.FillCircle(5, 5, 2, thin)

	assert.True(t, r.At(5, 5))
	assert.True(t, r.At(4, 4))
	assert.False(t, r.At(0, 0))
	assert.False(t, r.At(8, 5))

	r.Clear()
	assert.False(t, r.At(5, 5))
}

func TestStrokeLine(t *testing.T) {
	r := NewRaster(10, 8)
	r.StrokeLine(1, 3.5, 8, 3.5, thin)

	for x := 1; x < 8; x++ {
		assert.True(t, r.At(x, 3), "x=%d", x)
	}
	assert.False(t, r.At(4, 1))
	assert.False(t, r.At(4, 5))
}

func TestStrokeArcLeavesGap(t *testing.T) {
	r := NewRaster(20, 20)
	r.StrokeArc(10, 10, 8, 30, 300, thin)

	assert.True(t, r.At(2, 9), "left side is inside the sweep")
	assert.False(t, r.At(17, 9), "right side falls in the gap")
	assert.False(t, r.At(10, 10), "outline only")

	r.Clear()
	r.StrokeArc(10, 10, 8, 0, 360, thin)
	assert.True(t, r.At(17, 9))
	assert.True(t, r.At(2, 9))
}

func TestInSweep(t *testing.T) {
	assert.True(t, inSweep(10, 350, 30))
	assert.True(t, inSweep(90, 0, 180))
	assert.False(t, inSweep(200, 0, 180))
	assert.False(t, inSweep(355, 0, 300))
}

func TestRenderHalfBlocks(t *testing.T) {
	r := NewRaster(4, 2)
	r.set(0, 0)
	r.set(1, 1)
	r.set(2, 0)
	r.set(2, 1)

	assert.Equal(t, "▀▄█ ", r.Render(lipgloss.NewStyle()))
}
