package validation

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pyrelease/relgate/internal/confirm"
	"github.com/pyrelease/relgate/internal/history"
	"github.com/pyrelease/relgate/internal/progress"
	"github.com/pyrelease/relgate/internal/state"
)

// Result is the record of one check in a run.
type Result struct {
	Check    string
	Outcome  Outcome
	Err      error
	Started  time.Time
	Duration time.Duration
	// Resumed is set when the check was skipped because an earlier run
	// already completed it.
	Resumed bool
}

// Failed reports whether the check stopped the run.
func (r Result) Failed() bool { return r.Err != nil }

// Report lists the results of a run in execution order.
type Report struct {
	Results []Result
}

// Failure returns the failing result, if any.
func (r *Report) Failure() *Result {
	for i := range r.Results {
		if r.Results[i].Failed() {
			return &r.Results[i]
		}
	}
	return nil
}

// Apply folds the report into s: every check that did not fail is marked
// completed and every waiver is recorded.
func (r *Report) Apply(s state.State) state.State {
	for _, res := range r.Results {
		if res.Failed() {
			continue
		}
		s = s.WithCompleted(res.Check)
		if res.Outcome.Status == StatusWaived {
			s = s.WithWaiver(state.Waiver{Check: res.Check, Detail: res.Outcome.Detail, At: res.Started.UTC()})
		}
	}
	return s
}

// Runner executes checks one after another and stops at the first failure.
// There are no retries: a failed check needs a human fix and a new run.
type Runner struct {
	Checks  []Check
	Display *progress.ProgressDisplay // optional
	History *history.Writer           // optional
	Logger  *log.Logger               // optional
	// Command is recorded in history entries.
	Command string
	// Force re-runs checks the state already lists as completed.
	Force bool
}

// Run executes r.Checks against env. The returned report always covers the
// checks that ran; err is the failure of the last one, if any.
func (r *Runner) Run(ctx context.Context, env Env) (*Report, error) {
	report := &Report{}
	if env.Logger == nil {
		env.Logger = r.Logger
	}
	if r.Display != nil {
		env.Out = &pausingWriter{w: env.out(), display: r.Display}
		env.Confirmer = &pausingConfirmer{inner: env.confirmer(), display: r.Display}
	}

	total := len(r.Checks)
	for i, check := range r.Checks {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		info := progress.CheckInfo{Name: check.Name, Number: i + 1, Total: total, Status: progress.CheckRunning}

		if !r.Force && env.State.IsCompleted(check.Name) {
			res := Result{
				Check:   check.Name,
				Outcome: Skipped("already completed"),
				Started: time.Now(),
				Resumed: true,
			}
			report.Results = append(report.Results, res)
			r.finish(env, info, res)
			continue
		}

		if r.Display != nil {
			if err := r.Display.StartCheck(info); err != nil {
				return report, err
			}
		}
		env.logger().Debug("running check", "check", check.Name, "release", env.State.Release)

		started := time.Now()
		outcome, err := check.Run(ctx, env)
		res := Result{
			Check:    check.Name,
			Outcome:  outcome,
			Err:      err,
			Started:  started,
			Duration: time.Since(started),
		}
		report.Results = append(report.Results, res)
		r.finish(env, info, res)

		if err != nil {
			return report, err
		}
	}
	return report, nil
}

// finish updates the display and the history for a finished check.
func (r *Runner) finish(env Env, info progress.CheckInfo, res Result) {
	status, detail := historyStatus(res)

	if r.Display != nil {
		if res.Failed() {
			r.Display.FailCheck(info, res.Err)
		} else {
			r.Display.FinishCheck(info, displayStatus(res.Outcome.Status), res.Outcome.Detail)
		}
	}
	if r.History != nil {
		r.History.LogCheck(r.Command, env.State.Release.String(), res.Check, status, detail, res.Started, res.Duration)
	}
	env.logger().Info("check finished", "check", res.Check, "status", status, "duration", res.Duration)
}

func historyStatus(res Result) (string, string) {
	if res.Failed() {
		return history.StatusFailed, res.Err.Error()
	}
	switch res.Outcome.Status {
	case StatusSkipped:
		return history.StatusSkipped, res.Outcome.Detail
	case StatusWaived:
		return history.StatusWaived, res.Outcome.Detail
	default:
		return history.StatusPassed, res.Outcome.Detail
	}
}

func displayStatus(s Status) progress.CheckStatus {
	switch s {
	case StatusSkipped:
		return progress.CheckSkipped
	case StatusWaived:
		return progress.CheckWaived
	default:
		return progress.CheckPassed
	}
}

// pausingWriter stops the spinner before findings are written.
type pausingWriter struct {
	w       io.Writer
	display *progress.ProgressDisplay
}

func (p *pausingWriter) Write(b []byte) (int, error) {
	p.display.StopSpinner()
	return p.w.Write(b)
}

// pausingConfirmer stops the spinner before prompting.
type pausingConfirmer struct {
	inner   confirm.Confirmer
	display *progress.ProgressDisplay
}

func (p *pausingConfirmer) Confirm(ctx context.Context, question string) (bool, error) {
	p.display.StopSpinner()
	return p.inner.Confirm(ctx, question)
}
