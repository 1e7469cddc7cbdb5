package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryWriter_LogCheck(t *testing.T) {
	t.Parallel()

	stateDir := t.TempDir()
	w := NewWriter(stateDir, 500)
	started := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

	w.LogCheck("check", "3.13.0rc1", "doc-unreleased-version", StatusWaived, "confirmed by operator", started, 1500*time.Millisecond)

	history, err := LoadHistory(stateDir)
	require.NoError(t, err)
	require.Len(t, history.Entries, 1)

	got := history.Entries[0]
	_, err = uuid.Parse(got.ID)
	assert.NoError(t, err)
	assert.True(t, started.Equal(got.Timestamp))
	assert.Equal(t, "check", got.Command)
	assert.Equal(t, "3.13.0rc1", got.Release)
	assert.Equal(t, "doc-unreleased-version", got.Check)
	assert.Equal(t, StatusWaived, got.Status)
	assert.Equal(t, "confirmed by operator", got.Message)
	assert.Equal(t, "1.5s", got.Duration)
}

func TestHistoryWriter_Pruning(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		existingEntries int
		maxEntries      int
		wantEntries     int
	}{
		"no pruning needed": {
			existingEntries: 5,
			maxEntries:      10,
			wantEntries:     6,
		},
		"prune oldest when max exceeded": {
			existingEntries: 10,
			maxEntries:      10,
			wantEntries:     10,
		},
		"zero max keeps everything": {
			existingEntries: 3,
			maxEntries:      0,
			wantEntries:     4,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stateDir := t.TempDir()
			existing := &HistoryFile{}
			for i := 0; i < tc.existingEntries; i++ {
				existing.Entries = append(existing.Entries, HistoryEntry{
					ID:      fmt.Sprintf("old-%d", i),
					Check:   "magic-number",
					Status:  StatusPassed,
					Release: "3.13.0rc1",
				})
			}
			require.NoError(t, SaveHistory(stateDir, existing))

			w := NewWriter(stateDir, tc.maxEntries)
			require.NoError(t, w.Append(HistoryEntry{ID: "new", Check: "magic-number", Status: StatusFailed}))

			history, err := LoadHistory(stateDir)
			require.NoError(t, err)
			assert.Len(t, history.Entries, tc.wantEntries)
			assert.Equal(t, "new", history.Entries[len(history.Entries)-1].ID)
			if tc.maxEntries > 0 && tc.existingEntries >= tc.maxEntries {
				assert.Equal(t, "old-1", history.Entries[0].ID)
			}
		})
	}
}

func TestHistoryWriter_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	stateDir := t.TempDir()
	w := NewWriter(stateDir, 100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w.LogCheck("check", "3.13.0", fmt.Sprintf("check-%d", i), StatusPassed, "", time.Now(), time.Millisecond)
		}(i)
	}
	wg.Wait()

	history, err := LoadHistory(stateDir)
	require.NoError(t, err)
	assert.Len(t, history.Entries, 10)
}

func TestHistoryWriter_UnwritableDirIsNonFatal(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0o644))

	w := NewWriter(filepath.Join(blocker, "state"), 10)
	w.Logger = nil

	assert.NotPanics(t, func() {
		w.LogCheck("check", "3.13.0", "magic-number", StatusPassed, "", time.Now(), 0)
	})
	assert.Error(t, w.Append(HistoryEntry{Check: "magic-number"}))
}
