package shared

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// NewLogger returns a stderr-style logger for the given verbosity: warnings
// by default, info at -v, debug at -vv or with --debug.
func NewLogger(w io.Writer, verbosity int, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "relgate"})
	switch {
	case debug || verbosity >= 2:
		logger.SetLevel(log.DebugLevel)
		logger.SetReportCaller(debug)
	case verbosity == 1:
		logger.SetLevel(log.InfoLevel)
	default:
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// LoggerFromFlags builds the logger from the global --verbose and --debug
// flags of cmd, writing to cmd's error stream.
func LoggerFromFlags(cmd *cobra.Command) *log.Logger {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	debug, _ := cmd.Flags().GetBool("debug")
	return NewLogger(cmd.ErrOrStderr(), verbosity, debug)
}
