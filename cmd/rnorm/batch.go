package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rnorm/internal/astfmt"
	"rnorm/internal/driver"
	"rnorm/internal/observ"
	"rnorm/internal/source"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] dir",
	Short: "Normalize every raw parse tree under a directory",
	Long: `Batch normalizes all matching files under a directory in parallel.
A failing file is reported and the remaining files are still processed.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	batchCmd.Flags().StringSlice("include", driver.DefaultInclude, "file name patterns to pick up")
	batchCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	batchCmd.Flags().Bool("cache", false, "use the on-disk result cache")
	batchCmd.Flags().Int("cache-size", driver.DefaultCacheSize, "in-memory result cache entries")
	batchCmd.Flags().String("format", "json", "output format (json|yaml|msgpack|tree)")
	batchCmd.Flags().String("out", "", "write one result per input into this directory")
	addInputFormatFlag(batchCmd)
}

type batchSummary struct {
	total, ok, cached, failed int
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	flags := cmd.Flags()

	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	include, err := flags.GetStringSlice("include")
	if err != nil {
		return fmt.Errorf("failed to get include flag: %w", err)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	formatStr, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := astfmt.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	outDir, err := flags.GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	withUI, err := resolveUI(uiFlag, quiet)
	if err != nil {
		return err
	}

	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	if err := attachCaches(cmd, &opts); err != nil {
		return err
	}
	bopts := driver.BatchOptions{Options: opts, Jobs: jobs, Include: include}

	files, err := driver.ListInputs(dir, include)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}
	if len(files) == 0 {
		log.WithField("dir", dir).Warn("no input files found")
		return nil
	}

	var (
		fs      *source.FileSet
		results []driver.Result
	)
	if withUI {
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = displayPath(f, dir)
		}
		fs, results, err = runBatchWithUI(cmd.Context(), "normalize "+dir, names, dir, bopts)
	} else {
		fs, results, err = driver.NormalizeDir(cmd.Context(), dir, bopts)
	}
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	colored := useColor(cmd, os.Stderr)
	summary := batchSummary{total: len(results)}
	reports := make([]*observ.Report, 0, len(results))
	for i := range results {
		res := &results[i]
		reports = append(reports, res.Timing)
		switch {
		case res.Failed():
			summary.failed++
		case res.Cached:
			summary.cached++
		default:
			summary.ok++
		}
		log.WithFields(logrus.Fields{"file": res.Path, "cached": res.Cached, "failed": res.Failed()}).Debug("normalized")

		if res.Doc == nil {
			// файл не загрузился; в FileSet его нет
			for _, d := range res.Bag.Items() {
				fmt.Fprintln(os.Stderr, colorizeLine(fmt.Sprintf("error %s %s %s", d.Code.ID(), res.Path, d.Message), colored))
			}
			continue
		}
		printDiagnostics(os.Stderr, res.Bag.Items(), fs, colored, quiet)
		printSuppressed(os.Stderr, res.Bag)
		if outDir != "" && (res.Doc.Root != nil || format != astfmt.FormatTree) {
			if err := writeDocumentFile(outputPath(outDir, res.Path, format), res.Doc, format, astfmt.TreeOpts{Locations: true, Comments: true}); err != nil {
				return fmt.Errorf("write %s: %w", res.Path, err)
			}
		}
	}

	if !quiet {
		printSummary(cmd.OutOrStdout(), summary, colored)
	}
	if timings, _ := flags.GetBool("timings"); timings && !quiet {
		total := observ.Aggregate(reports...)
		printTimings(cmd.ErrOrStderr(), &total)
	}
	if summary.failed > 0 {
		return errFailed
	}
	return nil
}

// attachCaches wires the in-memory LRU and, with --cache, the disk cache.
func attachCaches(cmd *cobra.Command, opts *driver.Options) error {
	size, err := cmd.Flags().GetInt("cache-size")
	if err != nil {
		return fmt.Errorf("failed to get cache-size flag: %w", err)
	}
	if opts.Cache, err = driver.NewResultCache(size); err != nil {
		return err
	}
	withDisk, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	if withDisk {
		if opts.Disk, err = driver.OpenDiskCache("rnorm"); err != nil {
			// без дискового кэша тоже работаем
			log.WithError(err).Warn("disk cache unavailable")
			opts.Disk = nil
		}
	}
	return nil
}

func displayPath(path, dir string) string {
	if rel, err := source.RelativePath(path, dir); err == nil {
		return rel
	}
	return path
}

func printSummary(w io.Writer, s batchSummary, colored bool) {
	status := okColor
	if s.failed > 0 {
		status = errorColor
	}
	label := fmt.Sprintf("%d files", s.total)
	if colored {
		c := *status
		c.EnableColor()
		label = c.Sprint(label)
	}
	fmt.Fprintf(w, "%s: %d normalized, %d cached, %d failed\n", label, s.ok, s.cached, s.failed)
}

