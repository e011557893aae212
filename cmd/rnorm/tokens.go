package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rnorm/internal/rawtree"
	"rnorm/internal/source"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] file.xml",
	Short: "Dump the decoded raw token tree",
	Long:  `Tokens decodes a raw parse tree and prints it before normalization`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().String("format", "tree", "output format (tree|json|xml)")
	addInputFormatFlag(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	inputFormat, err := cmd.Flags().GetString("input-format")
	if err != nil {
		return fmt.Errorf("failed to get input-format flag: %w", err)
	}
	in, ok := rawtree.ParseFormat(inputFormat)
	if !ok {
		return fmt.Errorf("unknown input format %q (want auto|xml|json)", inputFormat)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(filePath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", filePath, err)
	}
	root, err := rawtree.Decode(fs, id, in)
	if err != nil {
		return err
	}
	log.WithField("file", filePath).Debugf("decoded %d comments", rawtree.Count(root, rawtree.KindComment))

	out := bufio.NewWriter(os.Stdout)
	switch format {
	case "tree":
		err = rawtree.Dump(out, root)
	case "json":
		err = rawtree.EncodeJSON(out, root)
	case "xml":
		err = rawtree.EncodeXML(out, root)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	return out.Flush()
}
