package config

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pyrelease/relgate/internal/cli/shared"
	"github.com/pyrelease/relgate/internal/git"
	"github.com/pyrelease/relgate/internal/health"
	"github.com/pyrelease/relgate/internal/state"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Aliases: []string{"doc"},
	Short:   "Run preflight checks before validating a release (doc)",
	Long: `Run preflight checks to verify that relgate can validate the current release.

This command checks:
  - the history directory is writable
  - the release state file exists and is valid
  - the working tree is a git repository
  - both magic number sources are readable
  - the built docs archive exists, for releases that ship docs

Each check displays a checkmark if passed or an X with the reason if failed.`,
	Example: `  relgate doctor && relgate check`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}
		return runDoctor(cmd.OutOrStdout(), cfg.StateDir, state.NewStore(cfg.StateFile), &git.DefaultOpener{})
	},
}

func init() {
	doctorCmd.GroupID = shared.GroupConfiguration
}

func runDoctor(w io.Writer, stateDir string, store *state.Store, opener git.Opener) error {
	report := health.RunHealthChecks(stateDir, store, opener)
	fmt.Fprint(w, health.FormatReport(report))
	if !report.Passed {
		return shared.NewExitError(shared.ExitMissingDependency)
	}
	return nil
}
