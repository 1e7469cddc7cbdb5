package release

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pyrelease/relgate/internal/cli/shared"
	"github.com/pyrelease/relgate/internal/config"
	"github.com/pyrelease/relgate/internal/confirm"
	apperrors "github.com/pyrelease/relgate/internal/errors"
	"github.com/pyrelease/relgate/internal/git"
	"github.com/pyrelease/relgate/internal/history"
	"github.com/pyrelease/relgate/internal/progress"
	"github.com/pyrelease/relgate/internal/state"
	"github.com/pyrelease/relgate/internal/tag"
	"github.com/pyrelease/relgate/internal/validation"
)

var checkCmd = &cobra.Command{
	Use:   "check [check...]",
	Short: "Run release validation checks",
	Long: `Run release validation checks against the persisted release state, in order,
stopping at the first failure. Checks already completed by an earlier run are
skipped unless --force is given.

Available checks:
  magic-number             bytecode magic number matches the test suite's reference copy
  doc-unreleased-version   built docs do not announce this release as unreleased

Questions about ambiguous findings are asked on the terminal. With
--non-interactive (or confirm_mode: deny) every question is declined and the
check fails.`,
	Example: `  # Run every check
  relgate check

  # Run one check without a state file
  relgate check magic-number --tag 3.13.0rc1 --repo ~/src/cpython

  # CI: never prompt
  relgate check --non-interactive`,
	SilenceUsage: true,
	ValidArgs:    validation.Names(),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		nonInteractive, _ := cmd.Flags().GetBool("non-interactive")
		tagInput, _ := cmd.Flags().GetString("tag")
		repo, _ := cmd.Flags().GetString("repo")

		logger := shared.LoggerFromFlags(cmd)
		out := cmd.OutOrStdout()

		var confirmer confirm.Confirmer = confirm.NewPrompter(cmd.InOrStdin(), out)
		if nonInteractive || cfg.ConfirmMode == config.ConfirmDeny {
			confirmer = confirm.Deny{Out: out}
		}

		var display *progress.ProgressDisplay
		if cfg.ShowProgress {
			display = progress.NewProgressDisplayTo(progress.DetectTerminalCapabilities(), out)
		}

		hist := history.NewWriter(cfg.StateDir, cfg.MaxHistory)
		hist.Logger = logger

		return runCheck(cmd.Context(), out, checkOptions{
			names:      args,
			store:      state.NewStore(cfg.StateFile),
			opener:     &git.DefaultOpener{},
			confirmer:  confirmer,
			display:    display,
			history:    hist,
			logger:     logger,
			docsMember: cfg.DocsMember,
			tag:        tagInput,
			repo:       repo,
			force:      force,
		})
	},
}

func init() {
	checkCmd.Flags().BoolP("force", "f", false, "Re-run checks that already completed")
	checkCmd.Flags().Bool("non-interactive", false, "Decline every question instead of prompting")
	checkCmd.Flags().StringP("tag", "t", "", "Release tag, to run without a state file")
	checkCmd.Flags().String("repo", "", "Interpreter source checkout, used with --tag")
}

type checkOptions struct {
	names      []string
	store      *state.Store
	opener     git.Opener // nil skips the HEAD comparison
	confirmer  confirm.Confirmer
	display    *progress.ProgressDisplay
	history    *history.Writer
	logger     *log.Logger
	docsMember string
	// tag and repo describe an ad-hoc release; the state file is then
	// neither read nor written.
	tag   string
	repo  string
	force bool
}

func runCheck(ctx context.Context, w io.Writer, opts checkOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.logger
	if logger == nil {
		logger = log.Default()
	}

	checks, err := validation.Select(opts.names)
	if err != nil {
		return err
	}

	s, adhoc, err := loadCheckState(opts)
	if err != nil {
		return err
	}
	warnHeadMoved(logger, opts.opener, s)

	runner := &validation.Runner{
		Checks:  checks,
		Display: opts.display,
		History: opts.history,
		Logger:  logger,
		Command: "check",
		Force:   opts.force,
	}
	env := validation.Env{
		State:      s,
		Confirmer:  opts.confirmer,
		DocsMember: opts.docsMember,
		Out:        w,
		Logger:     logger,
	}

	report, runErr := runner.Run(ctx, env)
	if !adhoc && report != nil {
		if err := opts.store.Save(report.Apply(s)); err != nil {
			if runErr != nil {
				logger.Error("saving release state", "err", err)
				return runErr
			}
			return err
		}
	}
	if runErr != nil {
		return runErr
	}

	printSummary(w, s.Release, report)
	return nil
}

// loadCheckState returns the state to check and whether it is ad hoc.
func loadCheckState(opts checkOptions) (state.State, bool, error) {
	if opts.tag == "" && opts.repo == "" {
		s, err := opts.store.Load()
		return s, false, err
	}
	if opts.tag == "" || opts.repo == "" {
		return state.State{}, false, apperrors.NewArgumentErrorWithUsage(
			"--tag and --repo must be given together",
			"relgate check [check...] --tag <tag> --repo <path>",
		)
	}

	release, err := tag.Parse(opts.tag)
	if err != nil {
		return state.State{}, false, apperrors.InvalidTag(opts.tag)
	}
	repo, err := resolveRepo(opts.repo)
	if err != nil {
		return state.State{}, false, err
	}
	return state.New(release, repo), true, nil
}

// warnHeadMoved reports a HEAD or branch change since the state was created.
func warnHeadMoved(logger *log.Logger, opener git.Opener, s state.State) {
	if opener == nil || s.HeadCommit == "" {
		return
	}
	info, err := git.Describe(opener, s.GitRepo)
	if err != nil {
		logger.Debug("cannot inspect working tree", "repo", s.GitRepo, "err", err)
		return
	}
	for _, warning := range git.CompareHeads(s.HeadCommit, s.Branch, info) {
		if warning.Level == "serious" {
			logger.Error(warning.Message)
		} else {
			logger.Warn(warning.Message)
		}
	}
}

func printSummary(w io.Writer, release tag.Tag, report *validation.Report) {
	counts := map[validation.Status]int{}
	for _, res := range report.Results {
		counts[res.Outcome.Status]++
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d passed", counts[validation.StatusPassed]))
	if n := counts[validation.StatusWaived]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d waived", n))
	}
	if n := counts[validation.StatusSkipped]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", n))
	}

	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s Release checks for %s: %s\n", green("✓"), release, strings.Join(parts, ", "))
}
