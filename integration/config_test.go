// Package integration exercises configuration loading and a complete release
// validation session across packages.
package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyrelease/relgate/internal/config"
	apperrors "github.com/pyrelease/relgate/internal/errors"
)

// TestConfigLayering loads every layer at once. It sets HOME and RELGATE_*
// variables, so it cannot run in parallel.
func TestConfigLayering(t *testing.T) {
	tests := map[string]struct {
		globalContent string
		localContent  string
		envVars       map[string]string
		wantGlob      string
		wantMode      string
		wantHistory   int
	}{
		"defaults only": {
			wantGlob:    "**/*.rst",
			wantMode:    config.ConfirmPrompt,
			wantHistory: 500,
		},
		"global file": {
			globalContent: `{"docs_glob": "**/*.txt", "max_history": 50}`,
			wantGlob:      "**/*.txt",
			wantMode:      config.ConfirmPrompt,
			wantHistory:   50,
		},
		"local beats global": {
			globalContent: `{"docs_glob": "**/*.txt", "max_history": 50}`,
			localContent:  `{"max_history": 75, "confirm_mode": "deny"}`,
			wantGlob:      "**/*.txt",
			wantMode:      config.ConfirmDeny,
			wantHistory:   75,
		},
		"env beats files": {
			localContent: `{"confirm_mode": "prompt"}`,
			envVars:      map[string]string{"RELGATE_CONFIRM_MODE": "deny", "RELGATE_DOCS_GLOB": "Doc/**/*.rst"},
			wantGlob:     "Doc/**/*.rst",
			wantMode:     config.ConfirmDeny,
			wantHistory:  500,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			home := t.TempDir()
			t.Setenv("HOME", home)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			if tt.globalContent != "" {
				globalPath := filepath.Join(home, ".relgate", "config.json")
				require.NoError(t, os.MkdirAll(filepath.Dir(globalPath), 0o755))
				require.NoError(t, os.WriteFile(globalPath, []byte(tt.globalContent), 0o644))
			}
			localPath := filepath.Join(t.TempDir(), "config.json")
			if tt.localContent != "" {
				require.NoError(t, os.WriteFile(localPath, []byte(tt.localContent), 0o644))
			}

			cfg, err := config.Load(localPath)
			require.NoError(t, err)
			assert.Equal(t, tt.wantGlob, cfg.DocsGlob)
			assert.Equal(t, tt.wantMode, cfg.ConfirmMode)
			assert.Equal(t, tt.wantHistory, cfg.MaxHistory)
			assert.Equal(t, filepath.Join(home, ".relgate", "state"), cfg.StateDir)
		})
	}
}

func TestConfigSetThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	localPath := filepath.Join(t.TempDir(), ".relgate", "config.json")
	require.NoError(t, config.SetConfigValue(localPath, "confirm_mode", "deny"))
	require.NoError(t, config.SetConfigValue(localPath, "max_history", "9"))

	cfg, err := config.Load(localPath)
	require.NoError(t, err)
	assert.Equal(t, config.ConfirmDeny, cfg.ConfirmMode)
	assert.Equal(t, 9, cfg.MaxHistory)
}

func TestConfigInvalidValue(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	localPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(localPath, []byte(`{"confirm_mode": "always"}`), 0o644))

	_, err := config.Load(localPath)
	require.Error(t, err)
	cliErr := apperrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, apperrors.Configuration, cliErr.Category)
}
