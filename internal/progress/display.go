package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// ProgressDisplay orchestrates the display of check progress
type ProgressDisplay struct {
	capabilities TerminalCapabilities
	current      *CheckInfo
	spinner      *spinner.Spinner
	symbols      ProgressSymbols
	out          io.Writer
}

// NewProgressDisplay creates a display writing status lines to stdout
func NewProgressDisplay(caps TerminalCapabilities) *ProgressDisplay {
	return NewProgressDisplayTo(caps, os.Stdout)
}

// NewProgressDisplayTo creates a display writing status lines to out
func NewProgressDisplayTo(caps TerminalCapabilities, out io.Writer) *ProgressDisplay {
	return &ProgressDisplay{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          out,
	}
}

// StartCheck begins displaying progress for a check
func (p *ProgressDisplay) StartCheck(check CheckInfo) error {
	if err := check.Validate(); err != nil {
		return err
	}

	p.current = &check
	msg := buildCheckMessage(check)

	if p.capabilities.IsTTY {
		p.spinner = spinner.New(
			spinner.CharSets[p.symbols.SpinnerSet],
			100*time.Millisecond,
		)
		p.spinner.Writer = os.Stderr
		p.spinner.Suffix = " " + msg
		p.spinner.Start()
	} else {
		fmt.Fprintln(p.out, msg)
	}

	return nil
}

// FinishCheck stops the spinner and prints the final status of the check.
// detail, if non-empty, is appended to the line.
func (p *ProgressDisplay) FinishCheck(check CheckInfo, status CheckStatus, detail string) {
	p.StopSpinner()

	mark := statusMark(p.symbols, status, p.capabilities.SupportsColor)
	counter := formatCounter(check.Number, check.Total)
	line := fmt.Sprintf("%s %s %s %s", mark, counter, check.Name, status)
	if detail != "" {
		line += ": " + detail
	}
	fmt.Fprintln(p.out, line)

	p.current = nil
}

// CompleteCheck shows a passed check
func (p *ProgressDisplay) CompleteCheck(check CheckInfo) {
	p.FinishCheck(check, CheckPassed, "")
}

// FailCheck shows a failed check with its error
func (p *ProgressDisplay) FailCheck(check CheckInfo, err error) {
	p.FinishCheck(check, CheckFailed, err.Error())
}

// StopSpinner stops the spinner without printing a status.
// Call it before writing interactive output such as a prompt.
func (p *ProgressDisplay) StopSpinner() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}

// Current returns the check being displayed, or nil.
func (p *ProgressDisplay) Current() *CheckInfo {
	return p.current
}
