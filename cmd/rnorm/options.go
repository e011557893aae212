package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rnorm/internal/driver"
	"rnorm/internal/rawtree"
)

// driverOptions collects the flags shared by normalize and batch.
func driverOptions(cmd *cobra.Command) (driver.Options, error) {
	flags := cmd.Flags()
	maxDepth, err := flags.GetInt("max-depth")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-depth flag: %w", err)
	}
	if maxDepth <= 0 {
		return driver.Options{}, fmt.Errorf("--max-depth must be positive, got %d", maxDepth)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	inputFormat, err := flags.GetString("input-format")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get input-format flag: %w", err)
	}
	format, ok := rawtree.ParseFormat(inputFormat)
	if !ok {
		return driver.Options{}, fmt.Errorf("unknown input format %q (want auto|xml|json)", inputFormat)
	}
	return driver.Options{
		MaxDepth:       maxDepth,
		MaxDiagnostics: maxDiagnostics,
		Format:         format,
		Timings:        timings,
	}, nil
}

func addInputFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String("input-format", "auto", "raw tree format (auto|xml|json)")
}
