// Package release provides the release state and validation commands.
// Includes: state init, state show, state discard, check
package release

import (
	"github.com/spf13/cobra"

	"github.com/pyrelease/relgate/internal/cli/shared"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Manage the persisted release state",
	Long: `Manage the release state record that the validation checks read: the
release tag, the interpreter working tree, its GitHub owner, the HEAD commit
and branch it was created from, and the checks already completed.`,
}

func init() {
	stateCmd.GroupID = shared.GroupRelease
	checkCmd.GroupID = shared.GroupRelease

	stateCmd.AddCommand(stateInitCmd)
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateDiscardCmd)
}

// Register adds the release commands to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(checkCmd)
}
