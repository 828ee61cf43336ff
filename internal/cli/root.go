// Package cli implements the record-copier command line.
package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "record-copier",
	Short: "Copy record graphs loaded from YAML fixtures",
	Long: `record-copier clones a record and its relationship graph.

Records are loaded from a YAML fixture into an in-memory store, copied
with the configured per-type options, and the clone is printed as YAML.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.AddCommand(newCopyCmd())
	rootCmd.AddCommand(newCheckCmd())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
