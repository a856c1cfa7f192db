package batch

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/j031nich0145/pxl8-sub000/internal/codec"
	"github.com/j031nich0145/pxl8-sub000/internal/geom"
	"github.com/j031nich0145/pxl8-sub000/internal/ir"
	"github.com/j031nich0145/pxl8-sub000/internal/pipeline"
)

// Input is one encoded image of a batch.
type Input struct {
	Name string
	Data []byte
}

// Output is the result for one Input. Data is empty when Err is set.
type Output struct {
	Name      string
	Data      []byte // encoded PNG
	Width     int
	Height    int
	PixelSize int
	Err       error
}

// ProgressFunc receives the percentage of the image at index. It may be
// called from several goroutines, but never concurrently for one index.
type ProgressFunc func(index, percent int)

// Job describes a batch run.
type Job struct {
	// Pixelate holds the settings shared by every image. Its Crop, Aspect
	// and Progress fields are ignored.
	Pixelate pipeline.Options

	// Crop, when set, is applied to the included images before pixelation.
	// It is expressed in the pixel space of the reference image.
	Crop *geom.Rect
	// Included selects the images Crop applies to; nil means all.
	Included []int

	Progress ProgressFunc
}

// Process decodes, optionally crops, pixelates and encodes every input, at
// most opts.Workers images at a time. An image that fails is reported in its
// Output and the rest of the batch continues. The only returned errors are a
// failed crop precondition and cancellation; on cancellation every image not
// yet finished carries the context error.
func Process(ctx context.Context, inputs []Input, job Job, opts Options) ([]Output, error) {
	log := opts.logger()
	outputs := make([]Output, len(inputs))

	// 1. Decode
	images := make([]*ir.Bitmap, len(inputs))
	for i, in := range inputs {
		outputs[i].Name = in.Name
		img, err := codec.Decode(in.Data)
		if err != nil {
			outputs[i].Err = fmt.Errorf("decode: %w", err)
			log.WithFields(logrus.Fields{"index": i, "name": in.Name}).WithError(err).Warn("batch: decode failed")
			continue
		}
		images[i] = img
	}

	// 2. Crop
	if job.Crop != nil {
		ref, err := ReferenceIndex(Dims(images))
		if err != nil {
			return outputs, err
		}
		log.WithFields(logrus.Fields{"reference": ref, "name": inputs[ref].Name}).Debug("batch: crop reference")

		items, err := Crop(ctx, images, *job.Crop, ref, job.Included, opts)
		if err != nil {
			return outputs, err
		}
		if err := ctx.Err(); err != nil {
			return outputs, err
		}
		for _, it := range items {
			if it.Err != nil && outputs[it.Index].Err == nil {
				outputs[it.Index].Err = fmt.Errorf("crop: %w", it.Err)
				images[it.Index] = nil
				continue
			}
			images[it.Index] = it.Bitmap
		}
	}

	// 3. Pixelate and encode
	po := job.Pixelate
	po.Crop, po.Aspect = nil, 0

	g := new(errgroup.Group)
	g.SetLimit(opts.workers())
	for i, img := range images {
		i, img := i, img
		if img == nil {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outputs[i].Err = err
				return err
			}
			iopts := po
			if job.Progress != nil {
				last := -1
				iopts.Progress = func(p int) {
					// 100 is sent once the PNG is encoded
					if p = p * 95 / 100; p > last {
						last = p
						job.Progress(i, p)
					}
				}
			}

			out, err := processOne(ctx, img, iopts)
			if err != nil {
				outputs[i].Err = err
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.WithFields(logrus.Fields{"index": i, "name": inputs[i].Name}).WithError(err).Warn("batch: image failed")
				return nil
			}
			outputs[i].Data = out.data
			outputs[i].Width = out.width
			outputs[i].Height = out.height
			outputs[i].PixelSize = out.pixelSize
			if job.Progress != nil {
				job.Progress(i, 100)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outputs, err
	}

	return outputs, nil
}

type encoded struct {
	data          []byte
	width, height int
	pixelSize     int
}

func processOne(ctx context.Context, img *ir.Bitmap, opts pipeline.Options) (*encoded, error) {
	out, err := pipeline.Process(ctx, img, opts)
	if err != nil {
		return nil, err
	}
	data, err := codec.EncodePNG(out.Bitmap)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return &encoded{
		data:      data,
		width:     out.Bitmap.Width,
		height:    out.Bitmap.Height,
		pixelSize: out.PixelSize,
	}, nil
}

// Succeeded counts outputs without an error.
func Succeeded(outputs []Output) int {
	n := 0
	for _, o := range outputs {
		if o.Err == nil {
			n++
		}
	}
	return n
}
