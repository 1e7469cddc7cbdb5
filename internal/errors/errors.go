// Package errors provides structured CLI errors for relgate.
//
// A CLIError carries a category (used for the exit code and the heading), a
// message, optional usage text and remediation steps. The release taxonomy
// (parse failures, artifact mismatches, missing preconditions, operator
// declines, rewriter line failures) is expressed as sentinel errors that
// CLIError and the domain error types unwrap to, so callers can branch with
// errors.Is regardless of how the failure was decorated.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory classifies a CLIError.
type ErrorCategory int

const (
	// Argument errors come from bad command-line input.
	Argument ErrorCategory = iota
	// Configuration errors come from config or state files.
	Configuration
	// Prerequisite errors mean something the command needs is absent.
	Prerequisite
	// Runtime errors happen while executing a step.
	Runtime
	// Validation errors are release gate failures.
	Validation
)

// String returns the heading used when printing the error.
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Prerequisite:
		return "Prerequisite Error"
	case Runtime:
		return "Runtime Error"
	case Validation:
		return "Validation Error"
	default:
		return "Error"
	}
}

// Release taxonomy. None of these are retryable: each needs a human fix
// outside the program before the next run can succeed.
var (
	// ErrParse marks malformed input (version strings, magic number sources).
	ErrParse = stderrors.New("parse error")
	// ErrArtifactMismatch marks two independently derived values that disagree.
	ErrArtifactMismatch = stderrors.New("artifact mismatch")
	// ErrPreconditionMissing marks an expected file or archive that is absent.
	ErrPreconditionMissing = stderrors.New("precondition missing")
	// ErrOperatorDeclined marks a release blocked by the operator.
	ErrOperatorDeclined = stderrors.New("operator declined")
	// ErrLineProcessing marks a rewriter failure on a specific file line.
	ErrLineProcessing = stderrors.New("line processing error")
	// ErrStateConflict marks an attempt to overwrite a set release-state field.
	ErrStateConflict = stderrors.New("release state conflict")
)

// CLIError is an error with a category and user-facing guidance.
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Usage       string
	Remediation []string
	Cause       error
}

func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap exposes the cause for errors.Is / errors.As.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

func newError(category ErrorCategory, message string, remediation []string) *CLIError {
	return &CLIError{
		Category:    category,
		Message:     message,
		Remediation: remediation,
	}
}

// NewArgumentError creates an Argument error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return newError(Argument, message, remediation)
}

// NewArgumentErrorWithUsage creates an Argument error that prints usage.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	err := newError(Argument, message, remediation)
	err.Usage = usage
	return err
}

// NewConfigError creates a Configuration error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return newError(Configuration, message, remediation)
}

// NewPrerequisiteError creates a Prerequisite error.
func NewPrerequisiteError(message string, remediation ...string) *CLIError {
	return newError(Prerequisite, message, remediation)
}

// NewRuntimeError creates a Runtime error.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return newError(Runtime, message, remediation)
}

// NewValidationError creates a Validation error.
func NewValidationError(message string, remediation ...string) *CLIError {
	return newError(Validation, message, remediation)
}

// WithCause sets the wrapped cause and returns the receiver.
func (e *CLIError) WithCause(cause error) *CLIError {
	e.Cause = cause
	return e
}

// Wrap converts err into a CLIError of the given category, keeping err as
// the cause. Returns nil for a nil err.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
		Cause:       err,
	}
}

// WrapWithMessage is like Wrap but prefixes the message with context.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %s", message, err.Error()),
		Remediation: remediation,
		Cause:       err,
	}
}

// IsCLIError reports whether err is, or wraps, a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}

// Is is stdlib errors.Is, re-exported because this package shadows the name.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As is stdlib errors.As, re-exported because this package shadows the name.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
