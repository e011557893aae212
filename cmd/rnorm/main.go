package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rnorm/internal/driver"
	"rnorm/internal/normalize"
	"rnorm/internal/trace"
	"rnorm/internal/version"
)

// errFailed signals that diagnostics were already printed and the process
// should only exit with status 1.
var errFailed = errors.New("normalization failed")

var rootCmd = &cobra.Command{
	Use:   "rnorm",
	Short: "Normalize R parse trees into a typed AST",
	Long: `rnorm reads the raw parse tree R produces (getParseData / xmlparsedata)
and turns it into a normalized, typed syntax tree`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepare,
}

// cleanups run after the command finishes, even when it fails; they get
// the command's error.
var cleanups []func(error)

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", driver.DefaultMaxDiagnostics, "maximum number of diagnostics per file")
	flags.Int("max-depth", normalize.DefaultMaxDepth, "maximum nesting depth of a parse tree")
	flags.String("log-level", "warning", "log level (trace|debug|info|warning|error)")
	flags.String("config", "", "path to rnorm.toml (default: search upwards from the working directory)")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "ring", "trace storage (stream|ring|both|log)")
	flags.Int("trace-ring-size", trace.DefaultRingSize, "ring buffer size for trace events")
	flags.Duration("trace-heartbeat", 0, "emit heartbeat trace events at this interval")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")
}

// main executes the root command and runs cleanups before exiting.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	runCleanups(err)
	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// prepare applies rnorm.toml, then sets up logging, tracing and profiling
// for every command.
func prepare(cmd *cobra.Command, _ []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	color.NoColor = !useColor(cmd, os.Stdout)
	logger, err := setupLogging(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, logger)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanup)

	stopProfiles, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopProfiles)
	return nil
}

func runCleanups(err error) {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i](err)
	}
	cleanups = nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for the given stream.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return false
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
