// Package history keeps an append-only log of release check runs: which
// check ran against which release, its outcome, and any waiver message.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pyrelease/relgate/internal/fsutil"
)

const (
	// HistoryFileName is the name of the history file.
	HistoryFileName = "history.yaml"
	// BackupSuffix is the suffix for backup files when corruption is detected.
	BackupSuffix = ".backup"
)

// Status constants for history entries.
const (
	// StatusPassed indicates the check found nothing to report.
	StatusPassed = "passed"
	// StatusSkipped indicates the check did not apply or was already completed.
	StatusSkipped = "skipped"
	// StatusWaived indicates findings the operator accepted.
	StatusWaived = "waived"
	// StatusFailed indicates the check blocked the release.
	StatusFailed = "failed"
)

// HistoryEntry records one check run.
type HistoryEntry struct {
	// ID is a random UUID.
	ID string `yaml:"id"`
	// Timestamp is when the check started.
	Timestamp time.Time `yaml:"timestamp"`
	// Command is the relgate command that ran the check (e.g., "check").
	Command string `yaml:"command"`
	// Release is the release tag the check ran against.
	Release string `yaml:"release"`
	// Check is the registered check name.
	Check string `yaml:"check"`
	// Status is one of passed, skipped, waived, failed.
	Status string `yaml:"status"`
	// Message is the failure or waiver detail, if any.
	Message string `yaml:"message,omitempty"`
	// Duration is the execution duration in Go duration format.
	Duration string `yaml:"duration"`
}

// HistoryFile represents the YAML file containing all history entries.
type HistoryFile struct {
	// Entries is ordered oldest first.
	Entries []HistoryEntry `yaml:"entries"`
}

// Last returns up to n of the newest entries, newest last. n <= 0 returns all.
func (h *HistoryFile) Last(n int) []HistoryEntry {
	if n <= 0 || n >= len(h.Entries) {
		return h.Entries
	}
	return h.Entries[len(h.Entries)-n:]
}

// ForRelease returns the entries recorded for release, oldest first.
func (h *HistoryFile) ForRelease(release string) []HistoryEntry {
	var out []HistoryEntry
	for _, e := range h.Entries {
		if e.Release == release {
			out = append(out, e)
		}
	}
	return out
}

// DefaultStateDir returns the default directory for the history file.
// Location: ~/.relgate/state
func DefaultStateDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".relgate", "state"), nil
}

// LoadHistory loads the history file from the given state directory.
// Returns empty history if file doesn't exist.
// Handles corrupted files by backing them up and creating a fresh history.
func LoadHistory(stateDir string) (*HistoryFile, error) {
	historyPath := filepath.Join(stateDir, HistoryFileName)

	data, err := os.ReadFile(historyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &HistoryFile{Entries: []HistoryEntry{}}, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var history HistoryFile
	if err := yaml.Unmarshal(data, &history); err != nil {
		if backupErr := backupCorruptedFile(historyPath); backupErr != nil {
			return nil, fmt.Errorf("backing up corrupted history file: %w", backupErr)
		}
		return &HistoryFile{Entries: []HistoryEntry{}}, nil
	}

	if history.Entries == nil {
		history.Entries = []HistoryEntry{}
	}

	return &history, nil
}

// backupCorruptedFile renames a corrupted file with a .backup suffix.
func backupCorruptedFile(path string) error {
	if err := os.Rename(path, path+BackupSuffix); err != nil {
		return fmt.Errorf("renaming corrupted file to backup: %w", err)
	}
	return nil
}

// SaveHistory atomically writes the history file into stateDir, creating it
// if needed.
func SaveHistory(stateDir string, history *HistoryFile) error {
	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	if err := fsutil.WriteFileAtomic(filepath.Join(stateDir, HistoryFileName), data, 0o644); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	return nil
}

// ClearHistory removes all entries from the history file.
func ClearHistory(stateDir string) error {
	return SaveHistory(stateDir, &HistoryFile{Entries: []HistoryEntry{}})
}
