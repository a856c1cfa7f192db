package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/j031nich0145/pxl8-sub000/internal/codec"
	"github.com/j031nich0145/pxl8-sub000/internal/ir"
	"github.com/j031nich0145/pxl8-sub000/internal/level"
	"github.com/j031nich0145/pxl8-sub000/internal/resample"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Inspect an image and the grid it would pixelate to",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	identifyCmd.Flags().Float64("level", level.DefaultLevel, "Pixelation level used for the grid preview")
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	info, err := codec.GetInfo(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	lvl := level.DefaultLevel
	if cmd.Flags().Changed("level") {
		lvl, _ = cmd.Flags().GetFloat64("level")
	} else {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		lvl = s.PixelationLevel
	}
	ps := level.PixelSize(lvl)
	dims := ir.Dims{Width: info.Width, Height: info.Height}
	grid := level.TargetGrid(dims, ps)
	out := resample.Scaled(dims, level.Multiplier(ps))

	fmt.Printf("File:       %s\n", path)
	fmt.Printf("Format:     %s\n", info.Format)
	fmt.Printf("Dimensions: %d x %d\n", info.Width, info.Height)
	fmt.Printf("File size:  %d bytes (%.1f MB)\n", len(data), float64(len(data))/(1024*1024))
	fmt.Printf("Level %.2f: block %dpx, grid %d x %d, output %d x %d\n",
		lvl, ps, grid.Width, grid.Height, out.Width, out.Height)

	return nil
}
