package geom

import (
	"math"

	"github.com/j031nich0145/pxl8-sub000/internal/ir"
)

// MapCrop maps rect, expressed in the pixel space of an image of size ref,
// into the native pixel space of an image of size target.
//
// Batch images are aligned by height, so the scale is the ratio of heights.
// A target wider than the reference extends past the reference's right edge
// and a narrower one is cut short. After scaling the rectangle is shifted
// back inside the target; it is shrunk only when it is larger than the
// target on that axis.
func MapCrop(rect Rect, ref, target ir.Dims) Rect {
	scale := 1.0
	if ref.Height > 0 && ref.Height != target.Height {
		scale = float64(target.Height) / float64(ref.Height)
	}
	m := rect.Scale(scale)

	m.X, m.Width = fitSpan(m.X, m.Width, float64(target.Width))
	m.Y, m.Height = fitSpan(m.Y, m.Height, float64(target.Height))
	return m
}

// fitSpan moves [pos, pos+size) inside [0, limit), shrinking size only when
// it cannot fit at all.
func fitSpan(pos, size, limit float64) (float64, float64) {
	if size > limit {
		size = limit
	}
	if pos+size > limit {
		pos = limit - size
	}
	if pos < 0 {
		pos = 0
	}
	return pos, size
}

// CenteredCrop returns the largest rectangle of the given aspect ratio
// (width/height) centred in an image of size d.
func CenteredCrop(d ir.Dims, aspect float64) Rect {
	w, h := float64(d.Width), float64(d.Height)
	if !(aspect > 0) || math.IsInf(aspect, 0) {
		return Rect{Width: w, Height: h}
	}

	if w/h > aspect {
		// wider than the target ratio: keep full height
		cw := h * aspect
		return Rect{X: (w - cw) / 2, Y: 0, Width: cw, Height: h}
	}
	ch := w / aspect
	return Rect{X: 0, Y: (h - ch) / 2, Width: w, Height: ch}
}
