package util

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pyrelease/relgate/internal/cli/shared"
	apperrors "github.com/pyrelease/relgate/internal/errors"
	"github.com/pyrelease/relgate/internal/git"
)

var ownerCmd = &cobra.Command{
	Use:   "github-owner",
	Short: "Print the GitHub owner of the origin remote",
	Long: `Print the GitHub user or organisation that owns the 'origin' remote of a
repository. Both https://github.com/<owner>/<repo> and git@github.com:<owner>/<repo>
remote URLs are understood.`,
	Example: `  relgate github-owner
  relgate github-owner --repo ../cpython`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _ := cmd.Flags().GetString("repo")
		return runGitHubOwner(cmd.OutOrStdout(), &git.DefaultOpener{}, repo)
	},
}

func init() {
	ownerCmd.GroupID = shared.GroupUtility
	ownerCmd.Flags().String("repo", ".", "Path to the git repository")
}

func runGitHubOwner(w io.Writer, opener git.Opener, repo string) error {
	info, err := git.Describe(opener, repo)
	if err != nil {
		return err
	}
	if info.OriginURL == "" {
		return apperrors.NewPrerequisiteError(
			fmt.Sprintf("repository %s has no '%s' remote", repo, git.OriginRemote),
			"Add one with 'git remote add origin <url>'",
		).WithCause(apperrors.ErrPreconditionMissing)
	}

	owner, err := git.ExtractGitHubOwner(info.OriginURL)
	if err != nil {
		return apperrors.NewRuntimeError(err.Error()).WithCause(apperrors.ErrParse)
	}
	fmt.Fprintln(w, owner)
	return nil
}
