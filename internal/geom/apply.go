package geom

import (
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/j031nich0145/pxl8-sub000/internal/ir"
)

// Apply cuts rect, rounded to whole pixels, out of b.
func Apply(b *ir.Bitmap, rect Rect) (*ir.Bitmap, error) {
	if err := rect.Validate(b.Dims()); err != nil {
		return nil, err
	}
	px := rect.Pixels(b.Dims())
	if px.Empty() {
		return nil, fmt.Errorf("%w: %v rounds to an empty area", ErrInvalidRect, rect)
	}
	return ir.FromImage(imaging.Crop(b.NRGBA(), px)), nil
}
