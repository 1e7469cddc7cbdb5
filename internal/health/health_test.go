package health

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyrelease/relgate/internal/git"
	"github.com/pyrelease/relgate/internal/inspect"
	"github.com/pyrelease/relgate/internal/state"
	"github.com/pyrelease/relgate/internal/tag"
)

func emptyRepoOpener(t *testing.T) git.Opener {
	t.Helper()

	repo, err := gogit.Init(memory.NewStorage(), nil)
	require.NoError(t, err)
	return &git.InMemoryOpener{Repo: repo}
}

func writeMagic(t *testing.T, repo string) {
	t.Helper()

	files := map[string]string{
		inspect.MagicHeaderFile:   "#define PYC_MAGIC_NUMBER 3571\n",
		inspect.MagicExpectedFile: "        EXPECTED_MAGIC_NUMBER = 3570\n",
	}
	for rel, content := range files {
		path := filepath.Join(repo, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestCheckStateDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "state")
	result := CheckStateDir(dir)
	assert.True(t, result.Passed, result.Message)
	assert.DirExists(t, dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file should be removed")

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	assert.False(t, CheckStateDir(filepath.Join(blocker, "state")).Passed)
}

func TestRunHealthChecks_NoState(t *testing.T) {
	t.Parallel()

	store := state.NewStore(filepath.Join(t.TempDir(), "state.yaml"))
	report := RunHealthChecks(t.TempDir(), store, emptyRepoOpener(t))

	assert.False(t, report.Passed)
	require.Len(t, report.Checks, 2)
	assert.True(t, report.Checks[0].Passed)
	assert.False(t, report.Checks[1].Passed)
	assert.Contains(t, report.Checks[1].Message, "release state not found")
}

func TestRunHealthChecks(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		release  string
		docs     bool
		passed   bool
		docsNote string
	}{
		"candidate with docs":    {release: "3.13.0rc1", docs: true, passed: true},
		"candidate without docs": {release: "3.13.0rc1", passed: false, docsNote: "not found"},
		"alpha":                  {release: "3.14.0a1", passed: true, docsNote: "not built for alpha releases"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			repo := t.TempDir()
			writeMagic(t, repo)
			release := tag.MustParse(tt.release)
			if tt.docs {
				archive := inspect.DocsArchivePath(repo, release)
				require.NoError(t, os.MkdirAll(filepath.Dir(archive), 0o755))
				require.NoError(t, os.WriteFile(archive, []byte("BZh"), 0o644))
			}

			store := state.NewStore(filepath.Join(t.TempDir(), "state.yaml"))
			require.NoError(t, store.Save(state.New(release, repo).WithCompleted("magic-number")))

			report := RunHealthChecks(t.TempDir(), store, emptyRepoOpener(t))
			require.Len(t, report.Checks, 5)
			assert.Equal(t, tt.passed, report.Passed)

			byName := map[string]CheckResult{}
			for _, c := range report.Checks {
				byName[c.Name] = c
			}
			assert.Contains(t, byName["Release state"].Message, "completed: magic-number")
			assert.Contains(t, byName["Git repository"].Message, "has no commits")
			// Mismatched magic numbers are still readable.
			assert.True(t, byName["Magic number sources"].Passed)
			assert.Contains(t, byName["Magic number sources"].Message, fmt.Sprintf("(%d)", 3570))
			if tt.docsNote != "" {
				assert.Contains(t, byName["Docs archive"].Message, tt.docsNote)
			}
		})
	}
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	report := &HealthReport{Checks: []CheckResult{
		{Name: "State directory", Passed: true, Message: "/tmp/s is writable"},
		{Name: "Release state", Passed: false, Message: "release state not found: s.yaml"},
	}}

	assert.Equal(t,
		"✓ State directory: /tmp/s is writable\n✗ Release state: release state not found: s.yaml\n",
		FormatReport(report))
}
