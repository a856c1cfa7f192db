package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/j031nich0145/pxl8-sub000/internal/geom"
	"github.com/j031nich0145/pxl8-sub000/internal/level"
	"github.com/j031nich0145/pxl8-sub000/internal/pipeline"
	"github.com/j031nich0145/pxl8-sub000/internal/quantize"
)

// addPixelateFlags registers the flags shared by pixelate and batch.
func addPixelateFlags(fs *pflag.FlagSet) {
	fs.Float64("level", level.DefaultLevel, "Pixelation level (1-10.1), overrides the settings file")
	fs.Int("pixel-size", 0, "Block size in pixels (1-100), overrides --level")
	fs.String("method", "average", "Block reducer (average, nearest, spatial)")
	fs.Int("crunch", 0, "Number of 0.75 downscale passes before pixelating")
	fs.Float64("multiplier", 0, "Output enlargement (0 derives it from the block size)")
	fs.Int("palette", 0, "Limit output to this many colors (2-256, 0 keeps all)")
	fs.Int("workers", 0, "Row bands per image (0 or 1 runs sequentially)")
	fs.String("crop", "", "Crop rectangle x,y,width,height in source pixels")
}

// pixelateOptions builds pipeline options from the settings file and the
// flags explicitly set on cmd.
func pixelateOptions(cmd *cobra.Command) (pipeline.Options, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Level:  s.PixelationLevel,
		Method: s.PixelationMethod,
	}

	flags := cmd.Flags()
	if flags.Changed("level") {
		opts.Level, _ = flags.GetFloat64("level")
	}
	if flags.Changed("method") {
		name, _ := flags.GetString("method")
		if opts.Method, err = quantize.ParseMethod(name); err != nil {
			return opts, err
		}
	}
	opts.PixelSize, _ = flags.GetInt("pixel-size")
	opts.Crunch, _ = flags.GetInt("crunch")
	opts.Multiplier, _ = flags.GetFloat64("multiplier")
	opts.PaletteSize, _ = flags.GetInt("palette")
	opts.Workers, _ = flags.GetInt("workers")

	if opts.PixelSize < 0 || opts.PixelSize > level.MaxPixelSize {
		return opts, fmt.Errorf("--pixel-size %d not in [%d, %d]", opts.PixelSize, level.MinPixelSize, level.MaxPixelSize)
	}
	if opts.Crunch < 0 {
		return opts, fmt.Errorf("--crunch must not be negative")
	}

	if c, _ := flags.GetString("crop"); c != "" {
		rect, err := geom.ParseRect(c)
		if err != nil {
			return opts, fmt.Errorf("--crop: %w", err)
		}
		opts.Crop = &rect
	}
	return opts, nil
}
