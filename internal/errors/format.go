package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// FormatError renders err with colors for terminal output.
// Non-CLIError values are rendered as Runtime errors.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	cliErr := toCLIError(err)

	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", red("✗ "+cliErr.Category.String()+":"), cliErr.Message)
	if cliErr.Usage != "" {
		fmt.Fprintf(&sb, "\n%s\n  %s\n", yellow("Usage:"), cliErr.Usage)
	}
	if len(cliErr.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", cyan("To fix this:"))
		for _, step := range cliErr.Remediation {
			fmt.Fprintf(&sb, "  • %s\n", step)
		}
	}
	return sb.String()
}

// FormatErrorPlain renders err without ANSI escapes.
func FormatErrorPlain(err error) string {
	if err == nil {
		return ""
	}
	cliErr := toCLIError(err)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", cliErr.Category.String(), cliErr.Message)
	if cliErr.Usage != "" {
		fmt.Fprintf(&sb, "\nUsage:\n  %s\n", cliErr.Usage)
	}
	if len(cliErr.Remediation) > 0 {
		sb.WriteString("\nTo fix this:\n")
		for _, step := range cliErr.Remediation {
			fmt.Fprintf(&sb, "  - %s\n", step)
		}
	}
	return sb.String()
}

// FormatSimpleError renders a plain error under the given category heading.
func FormatSimpleError(err error, category ErrorCategory) string {
	if err == nil {
		return ""
	}
	return FormatError(&CLIError{Category: category, Message: err.Error()})
}

// PrintError writes the formatted error to stderr.
func PrintError(err error) {
	FprintError(os.Stderr, err)
}

// FprintError writes the formatted error to w.
func FprintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

func toCLIError(err error) *CLIError {
	if cliErr := AsCLIError(err); cliErr != nil {
		return cliErr
	}
	return &CLIError{Category: Runtime, Message: err.Error()}
}
