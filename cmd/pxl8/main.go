package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/j031nich0145/pxl8-sub000/internal/settings"
)

var rootCmd = &cobra.Command{
	Use:               "pxl8",
	Short:             "Turn images into block pixel art",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("settings", defaultSettingsPath(), "Settings file (JSON or YAML)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logrus.SetLevel(logrus.InfoLevel)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return nil
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pxl8", "settings.json")
}

// loadSettings reads the --settings file; an empty path means defaults.
func loadSettings(cmd *cobra.Command) (settings.Settings, error) {
	path, _ := cmd.Flags().GetString("settings")
	if path == "" {
		return settings.Default(), nil
	}
	s, err := settings.Load(path)
	if err != nil {
		return s, err
	}
	logrus.Debugf("settings: level %.2f, method %s (%s)", s.PixelationLevel, s.PixelationMethod, path)
	return s, nil
}
