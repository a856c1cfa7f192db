package level

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/j031nich0145/pxl8-sub000/internal/ir"
)

func TestPixelSize(t *testing.T) {
	for _, tc := range []struct {
		level float64
		want  int
	}{
		{level: 1.0, want: 1},
		{level: 0.0, want: 1},
		{level: -5, want: 1},
		{level: 5.5, want: 26},
		{level: 10.0, want: 100},
		{level: 10.1, want: 100},
		{level: 42, want: 100},
		{level: math.NaN(), want: 1},
	} {
		assert.Equal(t, tc.want, PixelSize(tc.level), "level %v", tc.level)
	}
}

func TestLevelRoundTrip(t *testing.T) {
	for ps := MinPixelSize; ps <= MaxPixelSize; ps++ {
		l := Level(ps)
		assert.GreaterOrEqual(t, l, MinLevel)
		assert.LessOrEqual(t, l, MaxLevel)
		assert.Equal(t, ps, PixelSize(l), "pixel size %d -> level %v", ps, l)
	}
}

func TestLevelIsMonotonic(t *testing.T) {
	prev := Level(MinPixelSize)
	for ps := MinPixelSize + 1; ps <= MaxPixelSize; ps++ {
		l := Level(ps)
		assert.Greater(t, l, prev, "pixel size %d", ps)
		prev = l
	}
}

func TestLevelClampsInput(t *testing.T) {
	assert.Equal(t, Level(1), Level(0))
	assert.Equal(t, Level(100), Level(250))
}

func TestLevelNearClosedForm(t *testing.T) {
	for ps := MinPixelSize; ps <= MaxPixelSize; ps++ {
		assert.InDelta(t, estimate(ps), Level(ps), 0.4, "pixel size %d", ps)
	}
}

func TestTargetGrid(t *testing.T) {
	assert.Equal(t, ir.Dims{Width: 80, Height: 60}, TargetGrid(ir.Dims{Width: 800, Height: 600}, 10))
	assert.Equal(t, ir.Dims{Width: 3, Height: 1}, TargetGrid(ir.Dims{Width: 100, Height: 20}, 26))
	assert.Equal(t, ir.Dims{Width: 1, Height: 1}, TargetGrid(ir.Dims{Width: 5, Height: 5}, 100))
	assert.Equal(t, ir.Dims{Width: 5, Height: 5}, TargetGrid(ir.Dims{Width: 5, Height: 5}, 0))
}

func TestMultiplier(t *testing.T) {
	assert.InDelta(t, 1.02, Multiplier(1), 1e-9)
	assert.InDelta(t, 2.0, Multiplier(50), 1e-9)
	assert.InDelta(t, 3.0, Multiplier(100), 1e-9)
}
