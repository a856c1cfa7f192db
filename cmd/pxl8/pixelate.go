package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/j031nich0145/pxl8-sub000/internal/geom"
	"github.com/j031nich0145/pxl8-sub000/internal/pipeline"
)

var pixelateCmd = &cobra.Command{
	Use:   "pixelate",
	Short: "Pixelate one image into a PNG",
	RunE:  runPixelate,
}

func init() {
	pixelateCmd.Flags().StringP("input", "i", "", "Input image (PNG, JPEG or WebP)")
	pixelateCmd.Flags().StringP("output", "o", "", "Output PNG file")
	pixelateCmd.Flags().String("aspect", "", "Centred crop ratio (1:1, 3:2, 4:3 or W:H), ignored with --crop")
	addPixelateFlags(pixelateCmd.Flags())
	pixelateCmd.MarkFlagRequired("input")
	pixelateCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(pixelateCmd)
}

func runPixelate(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	aspectStr, _ := cmd.Flags().GetString("aspect")

	opts, err := pixelateOptions(cmd)
	if err != nil {
		return err
	}
	if aspectStr != "" && opts.Crop == nil {
		if opts.Aspect, err = geom.ParseAspectRatio(aspectStr); err != nil {
			return fmt.Errorf("--aspect: %w", err)
		}
	}
	opts.Progress = func(p int) {
		logrus.Debugf("pixelate: %d%%", p)
	}

	inputData, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	result, err := pipeline.Run(cmd.Context(), inputData, opts)
	if err != nil {
		return fmt.Errorf("pixelation: %w", err)
	}

	if err := os.WriteFile(outputPath, result.Data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Printf("Pixelated %dx%d → %dx%d (block %dpx, grid %dx%d, %s)\n",
		result.SrcWidth, result.SrcHeight, result.Width, result.Height,
		result.PixelSize, result.Grid.Width, result.Grid.Height, opts.Method)
	fmt.Printf("Input:  %s (%d bytes)\n", inputPath, len(inputData))
	fmt.Printf("Output: %s (%d bytes)\n", outputPath, len(result.Data))

	return nil
}
