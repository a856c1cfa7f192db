package resample

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/j031nich0145/pxl8-sub000/internal/ir"
)

// ErrInvalidDimensions reports a zero or negative target size.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// CrunchFactor is the linear scale of one 96dpi to 72dpi normalization pass.
const CrunchFactor = 72.0 / 96.0

// Resize scales src to exactly width x height.
//
// With smoothing off, every destination pixel (x, y) copies source pixel
// (floor(x*srcW/width), floor(y*srcH/height)) so pixelation blocks stay
// crisp. With smoothing on, a Catmull-Rom kernel is used, which widens its
// support when downscaling.
func Resize(src *ir.Bitmap, width, height int, smoothing bool) (*ir.Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target %dx%d", ErrInvalidDimensions, width, height)
	}
	if src == nil || src.Width <= 0 || src.Height <= 0 {
		return nil, fmt.Errorf("%w: empty source", ErrInvalidDimensions)
	}

	if !smoothing {
		return pointSample(src, width, height), nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src.NRGBA(), src.NRGBA().Rect, draw.Src, nil)
	return ir.FromImage(dst), nil
}

func pointSample(src *ir.Bitmap, width, height int) *ir.Bitmap {
	dst := ir.NewBitmap(width, height)

	// Column lookup is shared by every row.
	cols := make([]int, width)
	for x := range cols {
		cols[x] = (x * src.Width / width) * 4
	}

	for y := 0; y < height; y++ {
		sy := y * src.Height / height
		srow := src.Pix[sy*src.Width*4 : (sy+1)*src.Width*4]
		drow := dst.Pix[y*width*4 : (y+1)*width*4]
		for x, so := range cols {
			copy(drow[x*4:x*4+4], srow[so:so+4])
		}
	}
	return dst
}

// Scaled returns round(d * factor) per side, never less than 1.
func Scaled(d ir.Dims, factor float64) ir.Dims {
	w := int(math.Round(float64(d.Width) * factor))
	h := int(math.Round(float64(d.Height) * factor))
	return ir.Dims{Width: max(1, w), Height: max(1, h)}
}

// Crunch applies the fixed 0.75 smoothing downscale the given number of
// times. This is a linear resize only; no DPI metadata is read or written.
func Crunch(src *ir.Bitmap, times int) (*ir.Bitmap, error) {
	out := src
	for i := 0; i < times; i++ {
		d := Scaled(out.Dims(), CrunchFactor)
		next, err := Resize(out, d.Width, d.Height, true)
		if err != nil {
			return nil, fmt.Errorf("crunch pass %d: %w", i+1, err)
		}
		out = next
	}
	return out, nil
}
