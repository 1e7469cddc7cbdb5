package shared

import (
	"github.com/spf13/cobra"

	"github.com/pyrelease/relgate/internal/config"
)

// DefaultConfigPath is the project-local config file.
const DefaultConfigPath = ".relgate/config.json"

// LoadConfig loads configuration using the global --config flag.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}
