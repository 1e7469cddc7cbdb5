// Package validation runs the release gate: independent checks over the
// release state, executed in order by a Runner that stops at the first
// failure. A check either passes, is skipped as not applicable, or is waived
// by the operator after reviewing its findings.
package validation

import (
	"context"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/pyrelease/relgate/internal/confirm"
	apperrors "github.com/pyrelease/relgate/internal/errors"
	"github.com/pyrelease/relgate/internal/state"
)

// Status is the result kind of a check that did not fail.
type Status int

const (
	// StatusPassed means the check found nothing to report.
	StatusPassed Status = iota
	// StatusSkipped means the check does not apply to this release.
	StatusSkipped
	// StatusWaived means the operator accepted the findings.
	StatusWaived
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusSkipped:
		return "skipped"
	case StatusWaived:
		return "waived"
	default:
		return "unknown"
	}
}

// Outcome is what a successful check returns.
type Outcome struct {
	Status Status
	Detail string
}

// Passed returns a passing outcome.
func Passed(detail string) Outcome { return Outcome{Status: StatusPassed, Detail: detail} }

// Skipped returns a not-applicable outcome.
func Skipped(reason string) Outcome { return Outcome{Status: StatusSkipped, Detail: reason} }

// Waived returns an operator-accepted outcome.
func Waived(detail string) Outcome { return Outcome{Status: StatusWaived, Detail: detail} }

// Env is everything a check may read. Checks never modify it.
type Env struct {
	State      state.State
	Confirmer  confirm.Confirmer // nil declines every question
	DocsMember string            // docs archive member to scan, "" for index.html
	Out        io.Writer         // findings shown to the operator, nil discards
	Logger     *log.Logger       // nil uses log.Default()
}

func (e Env) out() io.Writer {
	if e.Out == nil {
		return io.Discard
	}
	return e.Out
}

func (e Env) confirmer() confirm.Confirmer {
	if e.Confirmer == nil {
		return confirm.Deny{}
	}
	return e.Confirmer
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

// CheckFunc validates one release invariant.
type CheckFunc func(ctx context.Context, env Env) (Outcome, error)

// Check is a named CheckFunc.
type Check struct {
	Name        string
	Description string
	Run         CheckFunc
}

// Check names.
const (
	CheckNameMagicNumber          = "magic-number"
	CheckNameDocUnreleasedVersion = "doc-unreleased-version"
)

// DefaultChecks returns the registered checks in execution order.
func DefaultChecks() []Check {
	return []Check{
		{
			Name:        CheckNameMagicNumber,
			Description: "bytecode magic number matches the test suite's reference copy",
			Run:         CheckMagicNumber,
		},
		{
			Name:        CheckNameDocUnreleasedVersion,
			Description: "built docs do not announce this release as unreleased",
			Run:         CheckDocUnreleasedVersion,
		},
	}
}

// Names returns the registered check names in execution order.
func Names() []string {
	checks := DefaultChecks()
	names := make([]string, 0, len(checks))
	for _, c := range checks {
		names = append(names, c.Name)
	}
	return names
}

// Lookup finds a registered check by name.
func Lookup(name string) (Check, bool) {
	for _, c := range DefaultChecks() {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

// Select returns the named checks in registration order, or every check when
// names is empty. Duplicates are ignored.
func Select(names []string) ([]Check, error) {
	if len(names) == 0 {
		return DefaultChecks(), nil
	}
	for _, name := range names {
		if _, ok := Lookup(name); !ok {
			return nil, apperrors.UnknownCheck(name, Names())
		}
	}
	var selected []Check
	for _, c := range DefaultChecks() {
		if slices.Contains(names, c.Name) {
			selected = append(selected, c)
		}
	}
	return selected, nil
}
