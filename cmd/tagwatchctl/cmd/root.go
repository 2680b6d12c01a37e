// Package cmd implements the tagwatchctl command tree.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "tagwatchctl",
	Short:        "Operate a tagwatch relay",
	Long:         "tagwatchctl sends push events to a tagwatch relay and inspects stored image records.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "json", "output format: json or yaml")
}
