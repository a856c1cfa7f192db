// Package geom holds the crop rectangle math: validating rectangles, mapping
// a rectangle between images of different native sizes, and the interactive
// edits a crop box supports (centre, rotate, scale, move, change ratio).
package geom

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/j031nich0145/pxl8-sub000/internal/ir"
)

// ErrInvalidRect reports a crop rectangle outside its image or with no area.
var ErrInvalidRect = errors.New("invalid crop rectangle")

// boundsEpsilon absorbs float error when a rectangle touches the image edge.
const boundsEpsilon = 1e-6

// MinCropSize is the smallest side, in pixels, the interactive edits produce
// when the image is large enough to allow it.
const MinCropSize = 50.0

// Rect is a crop rectangle in the pixel space of one image. Coordinates are
// real-valued; they are rounded only when pixels are actually cut.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (r Rect) String() string {
	return fmt.Sprintf("%g,%g %gx%g", r.X, r.Y, r.Width, r.Height)
}

// Validate checks that r has positive area and lies inside an image of size d.
func (r Rect) Validate(d ir.Dims) error {
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v has a non-finite value", ErrInvalidRect, r)
		}
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %v has no area", ErrInvalidRect, r)
	}
	if r.X < 0 || r.Y < 0 ||
		r.X+r.Width > float64(d.Width)+boundsEpsilon ||
		r.Y+r.Height > float64(d.Height)+boundsEpsilon {
		return fmt.Errorf("%w: %v outside %dx%d", ErrInvalidRect, r, d.Width, d.Height)
	}
	return nil
}

// Scale multiplies every component of r by f.
func (r Rect) Scale(f float64) Rect {
	return Rect{X: r.X * f, Y: r.Y * f, Width: r.Width * f, Height: r.Height * f}
}

// Area returns Width*Height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Pixels rounds r to whole pixels and clips it to an image of size d.
func (r Rect) Pixels(d ir.Dims) image.Rectangle {
	x0 := int(math.Round(r.X))
	y0 := int(math.Round(r.Y))
	x1 := x0 + int(math.Round(r.Width))
	y1 := y0 + int(math.Round(r.Height))
	return image.Rect(x0, y0, x1, y1).Intersect(image.Rect(0, 0, d.Width, d.Height))
}

// ParseRect parses "x,y,width,height".
func ParseRect(s string) (Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("crop rectangle %q: expected x,y,width,height", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Rect{}, fmt.Errorf("crop rectangle %q: %w", s, err)
		}
		v[i] = f
	}
	return Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

// ParseAspectRatio accepts "W:H" (for example "1:1", "3:2", "4:3") or a
// plain positive number.
func ParseAspectRatio(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if w, h, ok := strings.Cut(s, ":"); ok {
		fw, err1 := strconv.ParseFloat(strings.TrimSpace(w), 64)
		fh, err2 := strconv.ParseFloat(strings.TrimSpace(h), 64)
		if err1 != nil || err2 != nil || !(fw > 0) || !(fh > 0) ||
			math.IsInf(fw, 0) || math.IsInf(fh, 0) {
			return 0, fmt.Errorf("invalid aspect ratio: %q", s)
		}
		return fw / fh, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !(f > 0) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid aspect ratio: %q", s)
	}
	return f, nil
}
