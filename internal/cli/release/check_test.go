package release

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyrelease/relgate/internal/confirm"
	apperrors "github.com/pyrelease/relgate/internal/errors"
	"github.com/pyrelease/relgate/internal/history"
	"github.com/pyrelease/relgate/internal/state"
	"github.com/pyrelease/relgate/internal/tag"
	"github.com/pyrelease/relgate/internal/validation"
)

// seedState saves a fresh release state for release and repo.
func seedState(t *testing.T, release, repo string) *state.Store {
	t.Helper()

	store := newStore(t)
	require.NoError(t, store.Save(state.New(tag.MustParse(release), repo)))
	return store
}

func TestRunCheck(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		release     string
		actual      int
		expected    int
		fixture     string
		answers     []string
		wantErr     error
		wantOut     []string
		wantDone    []string
		wantWaivers int
	}{
		"all pass": {
			release:  "3.13.0rc1",
			actual:   3571,
			expected: 3571,
			fixture:  "released.tar.bz2",
			wantOut:  []string{"Release checks for 3.13.0rc1: 2 passed"},
			wantDone: []string{validation.CheckNameMagicNumber, validation.CheckNameDocUnreleasedVersion},
		},
		"magic mismatch stops the run": {
			release:  "3.13.0rc1",
			actual:   3571,
			expected: 3570,
			fixture:  "unreleased.tar.bz2",
			wantErr:  apperrors.ErrArtifactMismatch,
		},
		"unreleased docs confirmed": {
			release:     "3.13.0rc1",
			actual:      3571,
			expected:    3571,
			fixture:     "unreleased.tar.bz2",
			answers:     []string{" YES "},
			wantOut:     []string{"line 3:", "line 4:", "1 passed, 1 waived"},
			wantDone:    []string{validation.CheckNameMagicNumber, validation.CheckNameDocUnreleasedVersion},
			wantWaivers: 1,
		},
		"unreleased docs declined": {
			release:  "3.13.0rc1",
			actual:   3571,
			expected: 3571,
			fixture:  "unreleased.tar.bz2",
			answers:  []string{"nope"},
			wantErr:  apperrors.ErrOperatorDeclined,
			wantOut:  []string{"3.13.0rc1 (unreleased)"},
			wantDone: []string{validation.CheckNameMagicNumber},
		},
		"alpha skips docs": {
			release:  "3.14.0a1",
			actual:   3600,
			expected: 3600,
			wantOut:  []string{"1 passed, 1 skipped"},
			wantDone: []string{validation.CheckNameMagicNumber, validation.CheckNameDocUnreleasedVersion},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			repo := newSourceTree(t, tt.actual, tt.expected)
			if tt.fixture != "" {
				placeDocs(t, repo, tt.release, tt.fixture)
			}
			store := seedState(t, tt.release, repo)
			var out bytes.Buffer

			err := runCheck(context.Background(), &out, checkOptions{
				store:     store,
				confirmer: confirm.NewScripted(tt.answers...),
				logger:    log.New(&bytes.Buffer{}),
			})
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, tt.wantErr), "got %v", err)
			} else {
				require.NoError(t, err)
			}
			for _, s := range tt.wantOut {
				assert.Contains(t, out.String(), s)
			}

			s, err := store.Load()
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.wantDone, s.CompletedChecks)
			assert.Len(t, s.Waivers, tt.wantWaivers)
		})
	}
}

func TestRunCheck_Resume(t *testing.T) {
	t.Parallel()

	repo := newSourceTree(t, 3571, 3571)
	placeDocs(t, repo, "3.13.0rc1", "unreleased.tar.bz2")
	store := seedState(t, "3.13.0rc1", repo)
	opts := checkOptions{
		store:     store,
		confirmer: confirm.NewScripted("y"),
		logger:    log.New(&bytes.Buffer{}),
	}
	require.NoError(t, runCheck(context.Background(), &bytes.Buffer{}, opts))

	t.Run("completed checks are not asked again", func(t *testing.T) {
		scripted := confirm.NewScripted()
		resumed := opts
		resumed.confirmer = scripted

		var out bytes.Buffer
		require.NoError(t, runCheck(context.Background(), &out, resumed))
		assert.Contains(t, out.String(), "0 passed, 2 skipped")
		assert.Empty(t, scripted.Questions())
	})

	t.Run("force re-runs", func(t *testing.T) {
		scripted := confirm.NewScripted("n")
		forced := opts
		forced.confirmer = scripted
		forced.force = true

		err := runCheck(context.Background(), &bytes.Buffer{}, forced)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrOperatorDeclined))
		assert.Equal(t, []string{validation.UnreleasedQuestion}, scripted.Questions())

		// Completed checks are never taken back.
		s, err := store.Load()
		require.NoError(t, err)
		assert.True(t, s.IsCompleted(validation.CheckNameDocUnreleasedVersion))
	})
}

func TestRunCheck_SelectedAndAdHoc(t *testing.T) {
	t.Parallel()

	repo := newSourceTree(t, 3571, 3571)
	store := newStore(t)
	stateDir := t.TempDir()
	var out bytes.Buffer

	err := runCheck(context.Background(), &out, checkOptions{
		names:   []string{validation.CheckNameMagicNumber},
		store:   store,
		history: history.NewWriter(stateDir, 10),
		logger:  log.New(&bytes.Buffer{}),
		tag:     "3.13.0rc1",
		repo:    repo,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "1 passed")
	assert.False(t, store.Exists(), "ad hoc runs leave the state file alone")

	hist, err := history.LoadHistory(stateDir)
	require.NoError(t, err)
	require.Len(t, hist.Entries, 1)
	assert.Equal(t, "check", hist.Entries[0].Command)
	assert.Equal(t, "3.13.0rc1", hist.Entries[0].Release)
	assert.Equal(t, validation.CheckNameMagicNumber, hist.Entries[0].Check)
	assert.Equal(t, history.StatusPassed, hist.Entries[0].Status)
}

func TestRunCheck_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		opts     func(t *testing.T) checkOptions
		category apperrors.ErrorCategory
	}{
		"unknown check": {
			opts: func(t *testing.T) checkOptions {
				return checkOptions{names: []string{"bogus"}, store: newStore(t)}
			},
			category: apperrors.Argument,
		},
		"no state file": {
			opts: func(t *testing.T) checkOptions {
				return checkOptions{store: newStore(t)}
			},
			category: apperrors.Prerequisite,
		},
		"tag without repo": {
			opts: func(t *testing.T) checkOptions {
				return checkOptions{store: newStore(t), tag: "3.13.0rc1"}
			},
			category: apperrors.Argument,
		},
		"invalid tag": {
			opts: func(t *testing.T) checkOptions {
				return checkOptions{store: newStore(t), tag: "3.13", repo: t.TempDir()}
			},
			category: apperrors.Argument,
		},
		"missing docs archive": {
			opts: func(t *testing.T) checkOptions {
				repo := newSourceTree(t, 3571, 3571)
				return checkOptions{store: seedState(t, "3.13.0rc1", repo)}
			},
			category: apperrors.Prerequisite,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts(t)
			opts.logger = log.New(&bytes.Buffer{})
			err := runCheck(context.Background(), &bytes.Buffer{}, opts)
			require.Error(t, err)
			cliErr := apperrors.AsCLIError(err)
			require.NotNil(t, cliErr, "got %v", err)
			assert.Equal(t, tt.category, cliErr.Category)
		})
	}
}

func TestWarnHeadMoved(t *testing.T) {
	t.Parallel()

	s := state.New(tag.MustParse("3.13.0rc1"), filepath.Join(t.TempDir(), "cpython")).
		WithRepoInfo("hugovk", headA, "3.13")

	tests := map[string]struct {
		head     string
		branch   string
		contains []string
		empty    bool
	}{
		"unchanged":      {head: headA, branch: "3.13", empty: true},
		"head moved":     {head: headB, branch: "3.13", contains: []string{"HEAD moved", "01234567 -> 89abcdef"}},
		"branch changed": {head: headA, branch: "main", contains: []string{"branch changed", "3.13 -> main"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			warnHeadMoved(log.New(&logs), newOpener(t, tt.head, tt.branch, ""), s)
			if tt.empty {
				assert.Empty(t, logs.String())
				return
			}
			for _, c := range tt.contains {
				assert.Contains(t, logs.String(), c)
			}
		})
	}
}
