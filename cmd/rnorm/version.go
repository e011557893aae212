package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"rnorm/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show rnorm build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		asJSON, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !asJSON {
			_, err = fmt.Fprintln(out, version.Summary())
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(version.Current())
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "print build information as JSON")
}
