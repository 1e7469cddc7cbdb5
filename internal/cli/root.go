// Package cli provides the Cobra-based command line for relgate: release state
// management, the release validation checks, documentation maintenance and
// small utilities.
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pyrelease/relgate/internal/cli/config"
	"github.com/pyrelease/relgate/internal/cli/docs"
	"github.com/pyrelease/relgate/internal/cli/release"
	"github.com/pyrelease/relgate/internal/cli/shared"
	"github.com/pyrelease/relgate/internal/cli/util"
	apperrors "github.com/pyrelease/relgate/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "relgate",
	Short: "Release gate checks for interpreter releases",
	Long: `relgate validates an interpreter release before it is tagged.

It records the release being cut in a state file, runs validation checks
against the source checkout (bytecode magic number, "(unreleased)" markers in
the built docs) and rewrites "next" version directives in documentation sources.`,
	Example: `  # Start a release session
  relgate state init --tag 3.13.0rc1 --repo ~/src/cpython

  # Run every check
  relgate check

  # Fill in version directives
  relgate docs bump 3.13 ~/src/cpython/Doc`,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		apperrors.PrintError(err)
		return shared.ExitCode(err)
	}
	return shared.ExitSuccess
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: shared.GroupRelease, Title: "Release:"})
	rootCmd.AddGroup(&cobra.Group{ID: shared.GroupDocs, Title: "Documentation:"})
	rootCmd.AddGroup(&cobra.Group{ID: shared.GroupUtility, Title: "Utilities:"})
	rootCmd.AddGroup(&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration:"})

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	})
	rootCmd.SetHelpCommandGroupID(shared.GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(shared.GroupConfiguration)

	rootCmd.PersistentFlags().StringP("config", "c", shared.DefaultConfigPath, "Path to config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug)")

	release.Register(rootCmd)
	docs.Register(rootCmd)
	util.Register(rootCmd)
	config.Register(rootCmd)
}
