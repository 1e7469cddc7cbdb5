package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Writer appends entries to the history file and prunes the oldest ones.
type Writer struct {
	// StateDir is the directory containing the history file.
	StateDir string
	// MaxEntries is the maximum number of entries to retain.
	MaxEntries int
	// Logger receives warnings when an entry cannot be written.
	Logger *log.Logger

	mu sync.Mutex
}

// NewWriter creates a new history writer.
func NewWriter(stateDir string, maxEntries int) *Writer {
	return &Writer{
		StateDir:   stateDir,
		MaxEntries: maxEntries,
		Logger:     log.Default(),
	}
}

// LogEntry adds a new entry to the history file. Missing ID and Timestamp are
// filled in. Errors are non-fatal: they are logged as warnings and never fail
// the check run.
func (w *Writer) LogEntry(entry HistoryEntry) {
	if err := w.Append(entry); err != nil && w.Logger != nil {
		w.Logger.Warn("failed to log history", "err", err)
	}
}

// Append is LogEntry that returns the error.
func (w *Writer) Append(entry HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	history, err := LoadHistory(w.StateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	history.Entries = append(history.Entries, entry)

	if w.MaxEntries > 0 && len(history.Entries) > w.MaxEntries {
		excess := len(history.Entries) - w.MaxEntries
		history.Entries = history.Entries[excess:]
	}

	if err := SaveHistory(w.StateDir, history); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// LogCheck records the outcome of one check run.
func (w *Writer) LogCheck(command, release, check, status, message string, started time.Time, duration time.Duration) {
	w.LogEntry(HistoryEntry{
		Timestamp: started,
		Command:   command,
		Release:   release,
		Check:     check,
		Status:    status,
		Message:   message,
		Duration:  duration.String(),
	})
}
