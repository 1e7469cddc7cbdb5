// Package progress renders release check progress: a spinner while a check
// runs on a terminal, plain lines otherwise, and a status mark per check.
package progress

import apperrors "github.com/pyrelease/relgate/internal/errors"

// CheckStatus is the display state of a check.
type CheckStatus int

const (
	// CheckPending has not started yet
	CheckPending CheckStatus = iota
	// CheckRunning is executing
	CheckRunning
	// CheckPassed finished without findings
	CheckPassed
	// CheckSkipped did not apply or was already completed
	CheckSkipped
	// CheckWaived had findings the operator accepted
	CheckWaived
	// CheckFailed stopped the run
	CheckFailed
)

// String returns the string representation of CheckStatus
func (s CheckStatus) String() string {
	switch s {
	case CheckPending:
		return "pending"
	case CheckRunning:
		return "running"
	case CheckPassed:
		return "passed"
	case CheckSkipped:
		return "skipped"
	case CheckWaived:
		return "waived"
	case CheckFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CheckInfo identifies a check within a run
type CheckInfo struct {
	// Name is the registered check name (e.g., "magic-number")
	Name string
	// Number is the 1-based position in the run
	Number int
	// Total is the number of checks selected for the run
	Total int
	// Status is the current state
	Status CheckStatus
}

// Validate checks that all CheckInfo fields are consistent
func (c CheckInfo) Validate() error {
	if c.Name == "" {
		return apperrors.NewArgumentError("check name cannot be empty")
	}
	if c.Number <= 0 {
		return apperrors.NewArgumentError("check number must be > 0")
	}
	if c.Total <= 0 {
		return apperrors.NewArgumentError("total checks must be > 0")
	}
	if c.Number > c.Total {
		return apperrors.NewArgumentError("check number cannot exceed total checks")
	}
	return nil
}

// TerminalCapabilities encapsulates detected terminal features
type TerminalCapabilities struct {
	// IsTTY indicates whether stdout is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal supports Unicode characters
	SupportsUnicode bool
	// Width is the terminal width in columns (0 if unknown/pipe)
	Width int
}

// ProgressSymbols defines the character set for visual indicators
type ProgressSymbols struct {
	// Checkmark is the success indicator ("✓" or "[OK]")
	Checkmark string
	// Failure is the failure indicator ("✗" or "[FAIL]")
	Failure string
	// Skip is the skipped indicator ("-" or "[SKIP]")
	Skip string
	// Waived is the waiver indicator ("!" or "[WAIVED]")
	Waived string
	// SpinnerSet is the index into spinner.CharSets
	SpinnerSet int
}
