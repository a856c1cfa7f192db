// Package level converts between the continuous pixelation level shown to
// users (1 = coarsest control position, 10 = finest) and the integer block
// size the quantizer works with.
package level

import (
	"math"

	"github.com/samber/lo"

	"github.com/j031nich0145/pxl8-sub000/internal/ir"
)

const (
	MinLevel = 1.0
	MaxLevel = 10.1

	MinPixelSize = 1
	MaxPixelSize = 100

	// DefaultLevel is the level used when no settings have been saved.
	DefaultLevel = 5.5
)

// PixelSize maps a pixelation level to a block size:
// round(1 + ((clamp(level)-1)/9)^2 * 99), clamped to [1, 100].
func PixelSize(level float64) int {
	if math.IsNaN(level) {
		level = MinLevel
	}
	l := lo.Clamp(level, MinLevel, MaxLevel)
	n := (l - 1) / 9
	return lo.Clamp(int(math.Round(1+n*n*99)), MinPixelSize, MaxPixelSize)
}

// Level returns a pixelation level for which PixelSize(Level(ps)) == ps.
//
// The forward map rounds, so each block size owns an interval of levels.
// Level searches for the edges of that interval and returns its midpoint,
// which keeps the result stable under small floating point error.
func Level(pixelSize int) float64 {
	ps := lo.Clamp(pixelSize, MinPixelSize, MaxPixelSize)

	low, high := preimage(ps)
	mid := (low + high) / 2
	if PixelSize(mid) != ps {
		// Unreachable for [1,100]; fall back to the closed-form estimate.
		return estimate(ps)
	}
	return mid
}

// estimate is the closed-form inverse before rounding compensation.
func estimate(ps int) float64 {
	return 1 + math.Sqrt(float64(ps-1)/99)*9
}

// preimage returns the bounds of the levels in [MinLevel, MaxLevel] that map
// to ps, found by bisection on the monotonic forward map. The upper bound is
// the first level of the next block size.
func preimage(ps int) (float64, float64) {
	lowest := firstLevelAtLeast(ps)
	if ps >= MaxPixelSize {
		return lowest, MaxLevel
	}
	return lowest, firstLevelAtLeast(ps + 1)
}

// firstLevelAtLeast returns the smallest level whose block size is >= ps.
func firstLevelAtLeast(ps int) float64 {
	a, b := MinLevel, MaxLevel
	if PixelSize(a) >= ps {
		return a
	}
	for i := 0; i < 200 && b-a > 1e-12; i++ {
		m := (a + b) / 2
		if PixelSize(m) >= ps {
			b = m
		} else {
			a = m
		}
	}
	return b
}

// TargetGrid returns the number of blocks per axis for an image of the given
// size: max(1, floor(dim / pixelSize)).
func TargetGrid(d ir.Dims, pixelSize int) ir.Dims {
	ps := max(1, pixelSize)
	return ir.Dims{
		Width:  max(1, d.Width/ps),
		Height: max(1, d.Height/ps),
	}
}

// Multiplier is the output enlargement applied for a block size, growing
// linearly from 1.0 at size 0 to 3.0 at size 100.
func Multiplier(pixelSize int) float64 {
	return 1.0 + (float64(pixelSize)/100)*2.0
}
