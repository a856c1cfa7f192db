package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/j031nich0145/pxl8-sub000/internal/batch"
)

var batchCmd = &cobra.Command{
	Use:   "batch [files, dirs or globs...]",
	Short: "Crop and pixelate many images with shared settings",
	Long: `Pixelates every input with the same level and method.

With --crop the rectangle is given in the pixel space of the reference
image (the input with the smallest width) and is mapped onto every other
image, so all outputs share one size.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringP("output", "o", "", "Output directory")
	batchCmd.Flags().IntSlice("only", nil, "Apply --crop only to these input indexes (default all)")
	batchCmd.Flags().Int("jobs", 0, "Images cropped in parallel (0 = number of CPUs)")
	addPixelateFlags(batchCmd.Flags())
	batchCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output")
	only, _ := cmd.Flags().GetIntSlice("only")
	jobs, _ := cmd.Flags().GetInt("jobs")

	popts, err := pixelateOptions(cmd)
	if err != nil {
		return err
	}

	paths, err := collectInputs(args)
	if err != nil {
		return err
	}

	inputs := make([]batch.Input, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		inputs = append(inputs, batch.Input{Name: p, Data: data})
	}

	job := batch.Job{
		Pixelate: popts,
		Crop:     popts.Crop,
		Included: only,
		Progress: func(i, p int) {
			logrus.Debugf("batch: %s %d%%", paths[i], p)
		},
	}
	logrus.Infof("batch: %d images, level %.2f, method %s", len(inputs), popts.Level, popts.Method)

	outputs, err := batch.Process(cmd.Context(), inputs, job, batch.Options{Workers: jobs})
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	names := batch.OutputNames(outputs)
	for i, o := range outputs {
		if o.Err != nil {
			fmt.Printf("FAILED %s: %v\n", o.Name, o.Err)
			continue
		}
		dst := filepath.Join(outputDir, names[i])
		if err := os.WriteFile(dst, o.Data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", dst, err)
		}
		fmt.Printf("%s → %s (%dx%d, block %dpx)\n", o.Name, dst, o.Width, o.Height, o.PixelSize)
	}

	ok := batch.Succeeded(outputs)
	fmt.Printf("Done: %d of %d images\n", ok, len(outputs))
	if ok == 0 {
		return fmt.Errorf("no image could be processed")
	}
	return nil
}

// collectInputs expands files, directories and globs into a naturally
// sorted, de-duplicated list of image paths.
func collectInputs(args []string) ([]string, error) {
	var out []string
	add := func(path string) {
		fi, err := os.Stat(path)
		if err != nil {
			logrus.Warnf("skipping %s: %v", path, err)
			return
		}
		if !fi.IsDir() {
			if isImage(path) {
				out = append(out, path)
			}
			return
		}
		filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err == nil && !d.IsDir() && isImage(p) {
				out = append(out, p)
			}
			return nil
		})
	}

	for _, a := range args {
		if strings.ContainsAny(a, "*?[]") {
			matches, err := filepath.Glob(a)
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", a, err)
			}
			for _, m := range matches {
				add(m)
			}
			continue
		}
		add(a)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no input images found")
	}

	sort.SliceStable(out, func(i, j int) bool { return natural.Less(out[i], out[j]) })

	dedup := out[:0]
	var last string
	for _, p := range out {
		if p != last {
			dedup = append(dedup, p)
			last = p
		}
	}
	return dedup, nil
}

func isImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp":
		return true
	}
	return false
}
