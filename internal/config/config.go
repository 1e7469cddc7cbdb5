// Package config loads relgate configuration from defaults, a global config
// file, a local config file and RELGATE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	apperrors "github.com/pyrelease/relgate/internal/errors"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "RELGATE_"

// Confirmation modes for the unreleased-docs waiver prompt.
const (
	// ConfirmPrompt asks the operator on stdin.
	ConfirmPrompt = "prompt"
	// ConfirmDeny declines every prompt without asking (fail-closed).
	ConfirmDeny = "deny"
)

// Configuration represents the relgate configuration
type Configuration struct {
	StateFile    string `koanf:"state_file" validate:"required"`
	StateDir     string `koanf:"state_dir" validate:"required"`
	DocsGlob     string `koanf:"docs_glob" validate:"required"`
	DocsMember   string `koanf:"docs_member" validate:"required"`
	ConfirmMode  string `koanf:"confirm_mode" validate:"required,oneof=prompt deny"`
	ShowProgress bool   `koanf:"show_progress"`
	MaxHistory   int    `koanf:"max_history" validate:"min=1,max=10000"`
}

// GlobalConfigPath returns ~/.relgate/config.json.
func GlobalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".relgate", "config.json"), nil
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	if globalPath, err := GlobalConfigPath(); err == nil {
		if err := loadFileIfExists(k, globalPath); err != nil {
			return nil, err
		}
	}

	if localConfigPath != "" {
		if err := loadFileIfExists(k, localConfigPath); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, apperrors.NewConfigError(
			fmt.Sprintf("config validation failed: %v", err),
			"Check the values in your config file and RELGATE_* environment variables",
		).WithCause(err)
	}

	cfg.StateDir = expandHomePath(cfg.StateDir)
	cfg.StateFile = expandHomePath(cfg.StateFile)

	return &cfg, nil
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return apperrors.ConfigParseError(path, err)
	}
	return nil
}

// envTransform converts environment variable names to config keys
// Example: RELGATE_DOCS_GLOB -> docs_glob
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// Value returns the effective value of a known key.
func (c *Configuration) Value(key string) (interface{}, bool) {
	switch key {
	case "state_file":
		return c.StateFile, true
	case "state_dir":
		return c.StateDir, true
	case "docs_glob":
		return c.DocsGlob, true
	case "docs_member":
		return c.DocsMember, true
	case "confirm_mode":
		return c.ConfirmMode, true
	case "show_progress":
		return c.ShowProgress, true
	case "max_history":
		return c.MaxHistory, true
	default:
		return nil, false
	}
}
