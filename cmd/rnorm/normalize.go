package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rnorm/internal/astfmt"
	"rnorm/internal/driver"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [flags] file.xml",
	Short: "Normalize one raw parse tree",
	Long: `Normalize reads one raw parse tree (xmlparsedata XML or JSON) and prints
the normalized tree. Structural errors are reported as diagnostics on stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().String("format", "tree", "output format (tree|json|yaml|msgpack)")
	normalizeCmd.Flags().StringP("out", "o", "", "write the result to this file instead of stdout")
	normalizeCmd.Flags().Bool("locations", true, "show locations in tree output")
	normalizeCmd.Flags().Bool("comments", true, "show attached comments in tree output")
	normalizeCmd.Flags().Bool("cache", false, "use the on-disk result cache")
	addInputFormatFlag(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := astfmt.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	treeOpts, err := treeOptions(cmd)
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	withCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	if withCache {
		if opts.Disk, err = driver.OpenDiskCache("rnorm"); err != nil {
			log.WithError(err).Warn("disk cache unavailable")
		}
	}

	fs, res, err := driver.NormalizeFile(cmd.Context(), filePath, opts)
	if err != nil {
		return fmt.Errorf("normalization failed: %w", err)
	}
	log.WithFields(logrus.Fields{
		"file":   res.Path,
		"cached": res.Cached,
		"failed": res.Failed(),
	}).Debug("normalized")

	printDiagnostics(os.Stderr, res.Bag.Items(), fs, useColor(cmd, os.Stderr), quiet)
	printSuppressed(os.Stderr, res.Bag)
	if timings, _ := cmd.Flags().GetBool("timings"); timings && !quiet {
		printTimings(cmd.ErrOrStderr(), res.Timing)
	}

	// дерево без корня печатать нечего, машинные форматы несут диагностики
	if res.Doc.Root != nil || format != astfmt.FormatTree {
		if err := writeDocumentFile(outPath, res.Doc, format, treeOpts); err != nil {
			return fmt.Errorf("write %s: %w", format, err)
		}
	}
	if res.Failed() {
		return errFailed
	}
	return nil
}

func treeOptions(cmd *cobra.Command) (astfmt.TreeOpts, error) {
	locations, err := cmd.Flags().GetBool("locations")
	if err != nil {
		return astfmt.TreeOpts{}, fmt.Errorf("failed to get locations flag: %w", err)
	}
	comments, err := cmd.Flags().GetBool("comments")
	if err != nil {
		return astfmt.TreeOpts{}, fmt.Errorf("failed to get comments flag: %w", err)
	}
	return astfmt.TreeOpts{Locations: locations, Comments: comments}, nil
}
