package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		setup   func(t *testing.T, path string)
		content string
	}{
		"creates new file and parent directories": {
			setup:   func(t *testing.T, path string) {},
			content: "fresh\n",
		},
		"replaces existing file": {
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
				require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))
			},
			content: "new\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "nested", "file.txt")
			tt.setup(t, path)

			require.NoError(t, WriteFileAtomic(path, []byte(tt.content), 0o644))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(got))

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temp file should not be left behind")
		})
	}
}

func TestWriteFileAtomic_KeepsMode(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	path := filepath.Join(t.TempDir(), "script.rst")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	mode, err := FileMode(path, 0o644)
	require.NoError(t, err)
	require.NoError(t, WriteFileAtomic(path, []byte("y"), mode))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileMode_Missing(t *testing.T) {
	t.Parallel()

	mode, err := FileMode(filepath.Join(t.TempDir(), "absent"), 0o640)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), mode)
}
