package geom

import (
	"math"

	"github.com/j031nich0145/pxl8-sub000/internal/ir"
)

const (
	scaleUpFactor   = 1.05
	scaleDownFactor = 0.95

	// rotateFitFraction is how much of the limiting image side a rotated
	// box may take when it no longer fits.
	rotateFitFraction = 0.8
)

// RotateRect turns a crop box by 90 degrees: the box takes newAspect
// (width/height, normally the reciprocal of the current ratio) while keeping
// the current area. If the result does not fit in the image it is shrunk
// uniformly to rotateFitFraction of the limiting image side, so the area
// never grows. No side drops below MinCropSize unless the image itself is
// smaller. A box that keeps its centre inside the image stays centred on the
// same point; otherwise it is centred in the image.
func RotateRect(rect Rect, d ir.Dims, newAspect float64) Rect {
	if !(newAspect > 0) || math.IsInf(newAspect, 0) {
		newAspect = rect.Height / rect.Width
	}

	nw := math.Sqrt(rect.Area() * newAspect)
	nh := nw / newAspect

	iw, ih := float64(d.Width), float64(d.Height)
	if nw > iw || nh > ih {
		s := rotateFitFraction * math.Min(iw/nw, ih/nh)
		nw *= s
		nh *= s
	}

	minSide := math.Min(MinCropSize, math.Min(iw, ih))
	if nw < minSide {
		nw = minSide
		nh = nw / newAspect
	}
	if nh < minSide {
		nh = minSide
		nw = nh * newAspect
	}
	if nw > iw || nh > ih {
		s := math.Min(iw/nw, ih/nh)
		nw *= s
		nh *= s
	}

	cx := rect.X + rect.Width/2
	cy := rect.Y + rect.Height/2
	out := Rect{X: cx - nw/2, Y: cy - nh/2, Width: nw, Height: nh}
	if out.X < 0 || out.Y < 0 || out.X+nw > iw || out.Y+nh > ih {
		out.X = (iw - nw) / 2
		out.Y = (ih - nh) / 2
	}
	return out
}

// ScaleRect grows (up) or shrinks the box by 5% at a fixed aspect ratio,
// keeping its top-left corner. Growth stops at the image edges and shrinking
// stops at MinCropSize (or the image size, when that is smaller).
func ScaleRect(rect Rect, d ir.Dims, aspect float64, up bool) Rect {
	if !(aspect > 0) || math.IsInf(aspect, 0) {
		aspect = rect.Width / rect.Height
	}
	factor := scaleDownFactor
	if up {
		factor = scaleUpFactor
	}
	iw, ih := float64(d.Width), float64(d.Height)

	w := rect.Width * factor
	h := w / aspect

	minSide := math.Min(MinCropSize, math.Min(iw, ih))
	if w < minSide {
		w = minSide
		h = w / aspect
	}
	if h < minSide {
		h = minSide
		w = h * aspect
	}

	// largest box at this ratio that still fits from the current corner
	maxW := math.Min(iw-rect.X, (ih-rect.Y)*aspect)
	maxH := math.Min(ih-rect.Y, (iw-rect.X)/aspect)
	if w > maxW {
		w = maxW
		h = w / aspect
	}
	if h > maxH {
		h = maxH
		w = h * aspect
	}

	x, y := rect.X, rect.Y
	if x+w > iw {
		x = iw - w
	}
	if y+h > ih {
		y = ih - h
	}
	return Rect{X: math.Max(0, x), Y: math.Max(0, y), Width: w, Height: h}
}

// MoveRect translates the box by (dx, dy), stopping at the image edges.
func MoveRect(rect Rect, d ir.Dims, dx, dy float64) Rect {
	out := rect
	out.X = clampFloat(rect.X+dx, 0, math.Max(0, float64(d.Width)-rect.Width))
	out.Y = clampFloat(rect.Y+dy, 0, math.Max(0, float64(d.Height)-rect.Height))
	return out
}

// ChangeAspect switches the box to a new aspect ratio while keeping its area
// as far as the image allows. The position is kept unless the new box would
// overflow an edge, in which case it is centred on that axis.
func ChangeAspect(rect Rect, d ir.Dims, aspect float64) Rect {
	if !(aspect > 0) || math.IsInf(aspect, 0) {
		return rect
	}
	iw, ih := float64(d.Width), float64(d.Height)

	w := math.Sqrt(rect.Area() * aspect)
	h := w / aspect

	maxW := math.Min(iw, ih*aspect)
	maxH := math.Min(ih, iw/aspect)
	if w > maxW {
		w = maxW
	}
	if h > maxH {
		h = maxH
	}
	w = math.Min(w, h*aspect)
	h = w / aspect

	x, y := rect.X, rect.Y
	if x+w > iw {
		x = math.Max(0, (iw-w)/2)
	}
	if y+h > ih {
		y = math.Max(0, (ih-h)/2)
	}
	return Rect{X: x, Y: y, Width: w, Height: h}
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
