package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/j031nich0145/pxl8-sub000/internal/level"
)

var levelCmd = &cobra.Command{
	Use:   "level [value]",
	Short: "Convert between pixelation level and block size",
	Long: `Prints the block size for a pixelation level, or with --pixel-size the
level that selects a given block size. Without arguments the full table
of block sizes is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevel,
}

func init() {
	levelCmd.Flags().Bool("pixel-size", false, "Treat the argument as a block size")
	rootCmd.AddCommand(levelCmd)
}

func runLevel(cmd *cobra.Command, args []string) error {
	inverse, _ := cmd.Flags().GetBool("pixel-size")

	if len(args) == 0 {
		for ps := level.MinPixelSize; ps <= level.MaxPixelSize; ps++ {
			fmt.Printf("%3d  %.4f\n", ps, level.Level(ps))
		}
		return nil
	}

	if inverse {
		ps, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("block size %q: %w", args[0], err)
		}
		fmt.Printf("Block %dpx: level %.4f\n", ps, level.Level(ps))
		return nil
	}

	lvl, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("level %q: %w", args[0], err)
	}
	ps := level.PixelSize(lvl)
	fmt.Printf("Level %g: block %dpx, multiplier %.2f\n", lvl, ps, level.Multiplier(ps))
	return nil
}
