package util

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pyrelease/relgate/internal/cli/shared"
	"github.com/pyrelease/relgate/internal/history"
)

var historyCmd = &cobra.Command{
	Use:          "history",
	Short:        "View check execution history",
	Long:         `View a log of check executions with timestamp, release, check name, status, and duration.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}
		return runHistoryWithStateDir(cmd, cfg.StateDir)
	},
}

func init() {
	historyCmd.GroupID = shared.GroupUtility
	historyCmd.Flags().StringP("release", "r", "", "Filter by release tag")
	historyCmd.Flags().String("check", "", "Filter by check name")
	historyCmd.Flags().String("status", "", "Filter by status (passed, skipped, waived, failed)")
	historyCmd.Flags().IntP("limit", "n", 0, "Limit to last N entries (most recent)")
	historyCmd.Flags().Bool("clear", false, "Clear all history")
}

type historyFilter struct {
	release string
	check   string
	status  string
}

func (f historyFilter) matches(entry history.HistoryEntry) bool {
	if f.release != "" && entry.Release != f.release {
		return false
	}
	if f.check != "" && entry.Check != f.check {
		return false
	}
	if f.status != "" && entry.Status != f.status {
		return false
	}
	return true
}

func (f historyFilter) describe() string {
	var parts []string
	if f.release != "" {
		parts = append(parts, fmt.Sprintf("release '%s'", f.release))
	}
	if f.check != "" {
		parts = append(parts, fmt.Sprintf("check '%s'", f.check))
	}
	if f.status != "" {
		parts = append(parts, fmt.Sprintf("status '%s'", f.status))
	}
	return strings.Join(parts, " and ")
}

// runHistoryWithStateDir runs the history command against stateDir.
func runHistoryWithStateDir(cmd *cobra.Command, stateDir string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	limit, _ := cmd.Flags().GetInt("limit")
	var filter historyFilter
	filter.release, _ = cmd.Flags().GetString("release")
	filter.check, _ = cmd.Flags().GetString("check")
	filter.status, _ = cmd.Flags().GetString("status")

	if limit < 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}

	if clearFlag {
		if err := history.ClearHistory(stateDir); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	histFile, err := history.LoadHistory(stateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	entries := filterEntries(histFile.Entries, filter, limit)
	if len(entries) == 0 {
		if desc := filter.describe(); desc != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No matching entries for %s.\n", desc)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No history available.")
		}
		return nil
	}

	displayEntries(cmd, entries)
	return nil
}

// filterEntries filters and limits history entries.
func filterEntries(entries []history.HistoryEntry, filter historyFilter, limit int) []history.HistoryEntry {
	var result []history.HistoryEntry
	for _, entry := range entries {
		if filter.matches(entry) {
			result = append(result, entry)
		}
	}

	if limit > 0 && len(result) > limit {
		result = result[len(result)-limit:]
	}
	return result
}

// displayEntries formats and displays history entries.
func displayEntries(cmd *cobra.Command, entries []history.HistoryEntry) {
	out := cmd.OutOrStdout()
	cyan := color.New(color.FgCyan).SprintFunc()

	for _, entry := range entries {
		line := fmt.Sprintf("%s  %-10s  %-12s  %-24s  %s  %s",
			cyan(entry.Timestamp.Format("2006-01-02 15:04:05")),
			entry.Release,
			entry.Command,
			entry.Check,
			formatStatus(entry.Status),
			entry.Duration,
		)
		if entry.Message != "" {
			line += "  " + entry.Message
		}
		fmt.Fprintln(out, line)
	}
}

// formatStatus returns a color-coded, fixed-width status string.
func formatStatus(status string) string {
	padded := fmt.Sprintf("%-8s", status)
	switch status {
	case history.StatusPassed:
		return color.GreenString(padded)
	case history.StatusSkipped:
		return color.New(color.Faint).Sprint(padded)
	case history.StatusWaived:
		return color.YellowString(padded)
	case history.StatusFailed:
		return color.RedString(padded)
	case "":
		return fmt.Sprintf("%-8s", "-")
	default:
		return padded
	}
}
