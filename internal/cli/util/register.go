// Package util provides utility CLI commands for relgate.
// Includes: version, tag, github-owner, history
package util

import (
	"github.com/spf13/cobra"
)

// Register adds all utility commands to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(ownerCmd)
	rootCmd.AddCommand(historyCmd)
}
