package config

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pyrelease/relgate/internal/cli/shared"
	cfgpkg "github.com/pyrelease/relgate/internal/config"
	apperrors "github.com/pyrelease/relgate/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change relgate configuration",
	Long: `Inspect and change relgate configuration.

Values are layered: built-in defaults, then ~/.relgate/config.json, then the
project file given by --config (default .relgate/config.json), then RELGATE_*
environment variables.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the project config file, or with --global in
~/.relgate/config.json. The value is validated against the key's type first.`,
	Example: `  # Never prompt in this checkout
  relgate config set confirm_mode deny

  # Keep a longer history everywhere
  relgate config set max_history 2000 --global`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")
		path, err := targetPath(cmd, global)
		if err != nil {
			return err
		}
		return runConfigSet(cmd.OutOrStdout(), path, args[0], args[1])
	},
}

var configGetCmd = &cobra.Command{
	Use:          "get <key>",
	Short:        "Print the effective value of a configuration key",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}
		return runConfigGet(cmd.OutOrStdout(), cfg, args[0])
	},
}

var configShowCmd = &cobra.Command{
	Use:          "show",
	Short:        "Print the effective configuration",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}
		runConfigShow(cmd.OutOrStdout(), cfg)
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List all available configuration keys",
	Long:  `Display all valid configuration keys with their types, defaults and descriptions.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runConfigKeys(cmd.OutOrStdout())
	},
}

func init() {
	configCmd.GroupID = shared.GroupConfiguration
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configKeysCmd)

	configSetCmd.Flags().Bool("global", false, "Write ~/.relgate/config.json instead of the project config")
}

func targetPath(cmd *cobra.Command, global bool) (string, error) {
	if global {
		return cfgpkg.GlobalConfigPath()
	}
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = shared.DefaultConfigPath
	}
	return path, nil
}

func runConfigSet(w io.Writer, path, key, value string) error {
	if _, err := cfgpkg.GetKeySchema(key); err != nil {
		return unknownKey(key)
	}
	if err := cfgpkg.SetConfigValue(path, key, value); err != nil {
		if apperrors.IsCLIError(err) {
			return err
		}
		return apperrors.NewArgumentError(err.Error()).WithCause(err)
	}
	fmt.Fprintf(w, "Set %s = %s in %s\n", key, value, path)
	return nil
}

func runConfigGet(w io.Writer, cfg *cfgpkg.Configuration, key string) error {
	value, ok := cfg.Value(key)
	if !ok {
		return unknownKey(key)
	}
	fmt.Fprintf(w, "%v\n", value)
	return nil
}

func runConfigShow(w io.Writer, cfg *cfgpkg.Configuration) {
	for _, key := range cfgpkg.KeyNames() {
		value, _ := cfg.Value(key)
		fmt.Fprintf(w, "%s: %v\n", key, value)
	}
}

func runConfigKeys(w io.Writer) {
	defaults := cfgpkg.GetDefaults()
	cyan := color.New(color.FgCyan).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, key := range cfgpkg.KeyNames() {
		schema := cfgpkg.KnownKeys[key]
		typ := schema.Type.String()
		if len(schema.AllowedValues) > 0 {
			typ = fmt.Sprintf("%s (%v)", typ, schema.AllowedValues)
		}
		fmt.Fprintf(w, "%s  %s\n", cyan(fmt.Sprintf("%-14s", key)), schema.Description)
		fmt.Fprintf(w, "%s\n", dim(fmt.Sprintf("%-14s  type: %s, default: %v", "", typ, defaults[key])))
	}
}

func unknownKey(key string) error {
	return apperrors.NewArgumentError(
		fmt.Sprintf("unknown configuration key %q", key),
		"Run 'relgate config keys' to list the available keys",
	)
}
