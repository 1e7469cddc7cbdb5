package release

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pyrelease/relgate/internal/cli/shared"
	apperrors "github.com/pyrelease/relgate/internal/errors"
	"github.com/pyrelease/relgate/internal/git"
	"github.com/pyrelease/relgate/internal/state"
	"github.com/pyrelease/relgate/internal/tag"
)

var stateInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the release state for a tag",
	Long: `Create the release state record for a release tag and the interpreter working
tree it is cut from. HEAD, branch and the GitHub owner of 'origin' are recorded
when available. An existing state for the same release is kept; a state for a
different release is refused unless --force is given.`,
	Example: `  relgate state init --tag 3.13.0rc1 --repo ~/src/cpython
  relgate state init --tag 3.13.0rc2 --repo ~/src/cpython --force`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}
		tagInput, _ := cmd.Flags().GetString("tag")
		repo, _ := cmd.Flags().GetString("repo")
		force, _ := cmd.Flags().GetBool("force")

		return runStateInit(cmd.OutOrStdout(), initOptions{
			store:  state.NewStore(cfg.StateFile),
			opener: &git.DefaultOpener{},
			logger: shared.LoggerFromFlags(cmd),
			tag:    tagInput,
			repo:   repo,
			force:  force,
		})
	},
}

var stateShowCmd = &cobra.Command{
	Use:          "show",
	Short:        "Print the release state",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}
		plain, _ := cmd.Flags().GetBool("plain")
		return runStateShow(cmd.OutOrStdout(), state.NewStore(cfg.StateFile), plain)
	},
}

var stateDiscardCmd = &cobra.Command{
	Use:          "discard",
	Short:        "Remove the release state",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}
		store := state.NewStore(cfg.StateFile)
		if err := store.Discard(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Discarded release state %s\n", store.Path)
		return nil
	},
}

func init() {
	stateInitCmd.Flags().StringP("tag", "t", "", "Release tag (X.Y.Z, X.Y.ZaN, X.Y.ZbN, X.Y.ZrcN)")
	stateInitCmd.Flags().String("repo", ".", "Path to the interpreter source checkout")
	stateInitCmd.Flags().BoolP("force", "f", false, "Replace an existing release state")
	_ = stateInitCmd.MarkFlagRequired("tag")

	stateShowCmd.Flags().Bool("plain", false, "Print the raw YAML record")
}

type initOptions struct {
	store  *state.Store
	opener git.Opener
	logger *log.Logger
	tag    string
	repo   string
	force  bool
}

func runStateInit(w io.Writer, opts initOptions) error {
	release, err := tag.Parse(opts.tag)
	if err != nil {
		return apperrors.InvalidTag(opts.tag)
	}

	repo, err := resolveRepo(opts.repo)
	if err != nil {
		return err
	}

	logger := opts.logger
	if logger == nil {
		logger = log.Default()
	}

	s := state.New(release, repo)
	info, err := git.Describe(opts.opener, repo)
	switch {
	case err == nil:
		s = s.WithRepoInfo(info.Owner, info.HeadCommit, info.Branch)
		if info.Owner == "" {
			logger.Warn("origin remote is not on GitHub; github_owner left empty", "repo", repo)
		}
	case apperrors.Is(err, apperrors.ErrPreconditionMissing):
		logger.Warn("working tree is not a git repository; HEAD is not recorded", "repo", repo)
	default:
		return err
	}

	if opts.force {
		if err := opts.store.Discard(); err != nil {
			return err
		}
	} else if opts.store.Exists() {
		existing, err := opts.store.Load()
		if err != nil {
			return err
		}
		if existing.Release == s.Release && existing.GitRepo == s.GitRepo {
			fmt.Fprintf(w, "Release state for %s already exists at %s\n", existing.Release, opts.store.Path)
			return nil
		}
	}

	if err := opts.store.Save(s); err != nil {
		return err
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(w, "%s Created release state for %s at %s\n", green("✓"), s.Release, opts.store.Path)
	printState(w, s)
	return nil
}

func runStateShow(w io.Writer, store *state.Store, plain bool) error {
	s, err := store.Load()
	if err != nil {
		return err
	}
	if plain {
		data, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("marshaling release state: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	printState(w, s)
	return nil
}

func printState(w io.Writer, s state.State) {
	yellow := color.New(color.FgYellow).SprintFunc()
	field := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(w, "  %s %s\n", yellow(fmt.Sprintf("%-17s", label+":")), value)
	}

	field("release", s.Release.String())
	field("git_repo", s.GitRepo)
	field("github_owner", s.GitHubOwner)
	field("head_commit", s.HeadCommit)
	field("branch", s.Branch)
	field("created_at", s.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	for _, check := range s.CompletedChecks {
		field("completed", check)
	}
	for _, waiver := range s.Waivers {
		field("waived", fmt.Sprintf("%s (%s)", waiver.Check, waiver.Detail))
	}
}

// resolveRepo returns the absolute path of an existing directory.
func resolveRepo(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", apperrors.DirectoryNotFound(abs)
	}
	return abs, nil
}
