// Package config provides CLI commands for relgate configuration management.
// Includes: config (set, get, keys, show), doctor
package config

import (
	"github.com/spf13/cobra"
)

// Register adds all configuration commands to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
}
