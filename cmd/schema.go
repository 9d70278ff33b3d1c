// Package cmd implements the command-line interface of tubemux.
package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"github.com/tubemux/tubemux/report"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.SetOut(os.Stdout)
}

// schemaCmd prints the JSON schema of the --json and --report output.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of download reports",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(report.Schema()))
	},
}
