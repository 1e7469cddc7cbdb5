// Package health runs preflight checks that tell a release manager whether
// relgate can do its job before any release check is attempted.
package health

import (
	"fmt"
	"os"
	"strings"

	"github.com/pyrelease/relgate/internal/git"
	"github.com/pyrelease/relgate/internal/inspect"
	"github.com/pyrelease/relgate/internal/state"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

func (r *HealthReport) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed {
		r.Passed = false
	}
}

// RunHealthChecks checks the history directory and the release state, and,
// when a state exists, the working tree it points at.
func RunHealthChecks(stateDir string, store *state.Store, opener git.Opener) *HealthReport {
	report := &HealthReport{Passed: true}

	report.add(CheckStateDir(stateDir))

	s, result := CheckStateFile(store)
	report.add(result)
	if !result.Passed {
		return report
	}

	report.add(CheckGitRepo(opener, s.GitRepo))
	report.add(CheckMagicSources(s.GitRepo))
	report.add(CheckDocsArchive(s))
	return report
}

// CheckStateDir checks that history can be written to dir.
func CheckStateDir(dir string) CheckResult {
	result := CheckResult{Name: "State directory"}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		result.Message = fmt.Sprintf("cannot create %s: %v", dir, err)
		return result
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		result.Message = fmt.Sprintf("%s is not writable: %v", dir, err)
		return result
	}
	f.Close()
	os.Remove(f.Name())

	result.Passed = true
	result.Message = dir + " is writable"
	return result
}

// CheckStateFile loads the release state.
func CheckStateFile(store *state.Store) (state.State, CheckResult) {
	result := CheckResult{Name: "Release state"}
	s, err := store.Load()
	if err != nil {
		result.Message = err.Error()
		return s, result
	}

	result.Passed = true
	result.Message = fmt.Sprintf("%s in %s", s.Release, store.Path)
	if len(s.CompletedChecks) > 0 {
		result.Message += fmt.Sprintf(" (completed: %s)", strings.Join(s.CompletedChecks, ", "))
	}
	return s, result
}

// CheckGitRepo checks that repo is a git working tree.
func CheckGitRepo(opener git.Opener, repo string) CheckResult {
	result := CheckResult{Name: "Git repository"}
	info, err := git.Describe(opener, repo)
	if err != nil {
		result.Message = err.Error()
		return result
	}

	result.Passed = true
	result.Message = fmt.Sprintf("%s on %s", repo, info.Branch)
	if info.HeadCommit == "" {
		result.Message = repo + " has no commits"
	}
	if info.Owner != "" {
		result.Message += ", GitHub owner " + info.Owner
	}
	return result
}

// CheckMagicSources checks that both magic numbers can be read. It does not
// compare them; that is the magic-number check's job.
func CheckMagicSources(repo string) CheckResult {
	result := CheckResult{Name: "Magic number sources"}
	report, err := inspect.ReadMagicNumbers(repo)
	if err != nil {
		result.Message = err.Error()
		return result
	}

	result.Passed = true
	result.Message = fmt.Sprintf("%s (%d), %s (%d)", report.ActualFile, report.Actual, report.ExpectedFile, report.Expected)
	return result
}

// CheckDocsArchive checks that the built docs archive exists when the release
// ships docs.
func CheckDocsArchive(s state.State) CheckResult {
	result := CheckResult{Name: "Docs archive"}
	if !s.Release.IncludesDocs() {
		result.Passed = true
		result.Message = fmt.Sprintf("not built for %s releases", s.Release.Level())
		return result
	}

	path := inspect.DocsArchivePath(s.GitRepo, s.Release)
	if _, err := os.Stat(path); err != nil {
		result.Message = "not found: " + path
		return result
	}
	result.Passed = true
	result.Message = path
	return result
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var sb strings.Builder
	for _, check := range report.Checks {
		mark := "✓"
		if !check.Passed {
			mark = "✗"
		}
		fmt.Fprintf(&sb, "%s %s: %s\n", mark, check.Name, check.Message)
	}
	return sb.String()
}
