package progress

import (
	"fmt"

	"github.com/fatih/color"
)

// formatCounter returns the [N/Total] counter string
func formatCounter(number, total int) string {
	return fmt.Sprintf("[%d/%d]", number, total)
}

// buildCheckMessage constructs the running message for a check
func buildCheckMessage(check CheckInfo) string {
	return fmt.Sprintf("%s Running %s check", formatCounter(check.Number, check.Total), check.Name)
}

// statusMark returns the symbol for a finished status, colored when supported
func statusMark(symbols ProgressSymbols, status CheckStatus, supportsColor bool) string {
	var mark string
	var attr color.Attribute
	switch status {
	case CheckPassed:
		mark, attr = symbols.Checkmark, color.FgGreen
	case CheckWaived:
		mark, attr = symbols.Waived, color.FgYellow
	case CheckSkipped:
		mark, attr = symbols.Skip, color.FgCyan
	default:
		mark, attr = symbols.Failure, color.FgRed
	}
	if !supportsColor {
		return mark
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(mark)
}
