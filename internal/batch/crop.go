package batch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/j031nich0145/pxl8-sub000/internal/geom"
	"github.com/j031nich0145/pxl8-sub000/internal/ir"
	"github.com/j031nich0145/pxl8-sub000/internal/resample"
)

// ErrNoImage marks a batch slot whose image could not be produced upstream.
var ErrNoImage = errors.New("no decoded image")

// Item is the outcome for one image of a batch. When Err is set, Bitmap is
// the input passed through unchanged (nil if there was none).
type Item struct {
	Index  int
	Bitmap *ir.Bitmap
	Err    error
}

// Options tunes batch execution.
type Options struct {
	// Workers bounds the number of images processed at once.
	// Zero means runtime.NumCPU().
	Workers int
	// Logger receives per-item failures. Nil means the logrus standard logger.
	Logger logrus.FieldLogger
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return logrus.StandardLogger()
}

// ReferenceIndex returns the index of the image with the smallest native
// width; the first one wins a tie. Zero-sized entries (failed decodes) are
// ignored.
func ReferenceIndex(dims []ir.Dims) (int, error) {
	best := -1
	for i, d := range dims {
		if d.Width <= 0 || d.Height <= 0 {
			continue
		}
		if best < 0 || d.Width < dims[best].Width {
			best = i
		}
	}
	if best < 0 {
		return 0, fmt.Errorf("no usable image in batch of %d", len(dims))
	}
	return best, nil
}

// Dims lists image sizes, using a zero Dims for nil entries.
func Dims(images []*ir.Bitmap) []ir.Dims {
	return lo.Map(images, func(b *ir.Bitmap, _ int) ir.Dims {
		if b == nil {
			return ir.Dims{}
		}
		return b.Dims()
	})
}

// Crop applies rect, expressed in the pixel space of images[ref], to every
// included image. Each crop is mapped into its image's native space with
// geom.MapCrop and then resized so that every output is exactly
// round(rect.Width) x round(rect.Height). A nil included slice selects every
// image. Images not included pass through unchanged.
//
// ref must be the smallest-width image (see ReferenceIndex); Crop only
// checks that rect lies inside it. A failure on one image is recorded in
// its Item and does not stop the others.
func Crop(ctx context.Context, images []*ir.Bitmap, rect geom.Rect, ref int, included []int, opts Options) ([]Item, error) {
	if ref < 0 || ref >= len(images) || images[ref] == nil {
		return nil, fmt.Errorf("reference index %d: %w", ref, ErrNoImage)
	}
	refDims := images[ref].Dims()
	if err := rect.Validate(refDims); err != nil {
		return nil, fmt.Errorf("reference image %d: %w", ref, err)
	}
	outW := int(math.Round(rect.Width))
	outH := int(math.Round(rect.Height))

	selected := lo.Associate(included, func(i int) (int, bool) { return i, true })
	isIncluded := func(i int) bool { return included == nil || selected[i] }

	log := opts.logger()
	items := make([]Item, len(images))

	g := new(errgroup.Group)
	g.SetLimit(opts.workers())
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			items[i] = Item{Index: i, Bitmap: img}
			switch {
			case img == nil:
				items[i].Err = ErrNoImage
			case !isIncluded(i):
				return nil
			default:
				if err := ctx.Err(); err != nil {
					items[i].Err = err
					return nil
				}
				out, err := cropOne(img, rect, refDims, outW, outH)
				if err != nil {
					items[i].Err = err
				} else {
					items[i].Bitmap = out
				}
			}
			if items[i].Err != nil {
				log.WithFields(logrus.Fields{"index": i}).WithError(items[i].Err).Warn("batch crop: image skipped")
			}
			return nil
		})
	}
	// Per-item failures live in items; the closures never return an error.
	g.Wait()

	return items, nil
}

func cropOne(img *ir.Bitmap, rect geom.Rect, ref ir.Dims, outW, outH int) (*ir.Bitmap, error) {
	mapped := geom.MapCrop(rect, ref, img.Dims())
	cropped, err := geom.Apply(img, mapped)
	if err != nil {
		return nil, fmt.Errorf("crop %v: %w", mapped, err)
	}
	if cropped.Width == outW && cropped.Height == outH {
		return cropped, nil
	}
	out, err := resample.Resize(cropped, outW, outH, true)
	if err != nil {
		return nil, fmt.Errorf("resize to %dx%d: %w", outW, outH, err)
	}
	return out, nil
}
