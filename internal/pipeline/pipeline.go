package pipeline

import (
	"context"
	"fmt"

	"github.com/j031nich0145/pxl8-sub000/internal/codec"
	"github.com/j031nich0145/pxl8-sub000/internal/geom"
	"github.com/j031nich0145/pxl8-sub000/internal/ir"
	"github.com/j031nich0145/pxl8-sub000/internal/level"
	"github.com/j031nich0145/pxl8-sub000/internal/quantize"
	"github.com/j031nich0145/pxl8-sub000/internal/resample"
)

// Options controls the full decode → crop → crunch → pixelate → encode pipeline.
type Options struct {
	Level       float64         // pixelation level, used when PixelSize is 0
	PixelSize   int             // optional: block size override (1-100)
	Method      quantize.Method // block reducer
	Multiplier  float64         // optional: output enlargement; 0 derives it from the block size
	Crunch      int             // number of 0.75 normalization passes
	Crop        *geom.Rect      // optional: crop rectangle in source pixels
	Aspect      float64         // optional: centred crop ratio, used when Crop is nil
	PaletteSize int             // optional: limit output colors (2-256)
	Workers     int             // row bands for the reducer

	// Progress receives overall percentages; 100 is sent once the
	// output is ready.
	Progress quantize.ProgressFunc
}

// Result holds the output of a pipeline run.
type Result struct {
	Data      []byte // encoded PNG
	SrcWidth  int
	SrcHeight int
	Width     int
	Height    int
	PixelSize int
	Grid      quantize.Grid
}

// encodeShare is the share of progress left for palette limiting and encoding.
const encodeShare = 5

// Run executes the full pipeline on encoded image bytes.
func Run(ctx context.Context, data []byte, opts Options) (*Result, error) {
	// 1. Decode
	src, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	// 2. Crop
	cropped, err := CropSource(src, opts)
	if err != nil {
		return nil, fmt.Errorf("crop: %w", err)
	}

	// 3. Crunch, pixelate, limit palette
	outer := opts.Progress
	if outer != nil {
		last := -1
		opts.Progress = func(p int) {
			if p = p * (100 - encodeShare) / 100; p > last {
				last = p
				outer(p)
			}
		}
	}
	out, err := Process(ctx, cropped, opts)
	if err != nil {
		return nil, err
	}

	// 4. Encode PNG
	encoded, err := codec.EncodePNG(out.Bitmap)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if outer != nil {
		outer(100)
	}

	return &Result{
		Data:      encoded,
		SrcWidth:  src.Width,
		SrcHeight: src.Height,
		Width:     out.Bitmap.Width,
		Height:    out.Bitmap.Height,
		PixelSize: out.PixelSize,
		Grid:      out.Grid,
	}, nil
}

// CropSource applies the single-image crop selected by opts: an explicit
// rectangle, a centred aspect-ratio crop, or none.
func CropSource(src *ir.Bitmap, opts Options) (*ir.Bitmap, error) {
	switch {
	case opts.Crop != nil:
		return geom.Apply(src, *opts.Crop)
	case opts.Aspect > 0:
		return geom.Apply(src, geom.CenteredCrop(src.Dims(), opts.Aspect))
	default:
		return src, nil
	}
}

// Processed is a pixelated bitmap with the parameters that produced it.
type Processed struct {
	Bitmap    *ir.Bitmap
	PixelSize int
	Grid      quantize.Grid
}

// Process runs crunch, pixelation and palette limiting on a decoded bitmap.
func Process(ctx context.Context, src *ir.Bitmap, opts Options) (*Processed, error) {
	crunched, err := resample.Crunch(src, opts.Crunch)
	if err != nil {
		return nil, fmt.Errorf("crunch: %w", err)
	}

	ps := opts.PixelSize
	if ps <= 0 {
		ps = level.PixelSize(opts.Level)
	}
	g := level.TargetGrid(crunched.Dims(), ps)
	grid := quantize.Grid{Width: g.Width, Height: g.Height}

	mult := opts.Multiplier
	if mult <= 0 {
		mult = level.Multiplier(ps)
	}

	out, err := quantize.Quantize(ctx, crunched, grid, opts.Method, quantize.Options{
		Multiplier: mult,
		Progress:   opts.Progress,
		Workers:    opts.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("pixelate: %w", err)
	}

	if opts.PaletteSize > 0 {
		out, err = quantize.LimitPalette(out, opts.PaletteSize)
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
	}

	return &Processed{Bitmap: out, PixelSize: ps, Grid: grid}, nil
}
