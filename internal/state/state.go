// Package state holds the persisted record of a release session.
//
// A State is a value: every change goes through a With... method that returns
// a new State, and the Store refuses to persist a record whose identity
// (release tag or working tree) differs from the one already on disk. The
// on-disk form is YAML with an explicit schema_version so records written by
// older or newer tools are detected instead of misread.
package state

import (
	"slices"
	"time"

	"github.com/pyrelease/relgate/internal/tag"
)

// SchemaVersion is the on-disk schema written by this package.
const SchemaVersion = 1

// Waiver records an operator override of a check finding.
type Waiver struct {
	Check  string    `yaml:"check" validate:"required"`
	Detail string    `yaml:"detail,omitempty"`
	At     time.Time `yaml:"at"`
}

// State is the release-state record shared by every step of a release run.
type State struct {
	SchemaVersion   int       `yaml:"schema_version" validate:"required"`
	Release         tag.Tag   `yaml:"release"`
	GitRepo         string    `yaml:"git_repo" validate:"required"`
	GitHubOwner     string    `yaml:"github_owner,omitempty"`
	HeadCommit      string    `yaml:"head_commit,omitempty" validate:"omitempty,len=40,hexadecimal"`
	Branch          string    `yaml:"branch,omitempty"`
	CreatedAt       time.Time `yaml:"created_at"`
	CompletedChecks []string  `yaml:"completed_checks,omitempty"`
	Waivers         []Waiver  `yaml:"waivers,omitempty" validate:"dive"`
}

// New creates the initial record for a release session.
func New(release tag.Tag, gitRepo string) State {
	return State{
		SchemaVersion: SchemaVersion,
		Release:       release,
		GitRepo:       gitRepo,
		CreatedAt:     time.Now().UTC(),
	}
}

// WithRepoInfo returns a copy with the working tree details filled in.
func (s State) WithRepoInfo(owner, headCommit, branch string) State {
	s = s.clone()
	s.GitHubOwner = owner
	s.HeadCommit = headCommit
	s.Branch = branch
	return s
}

// WithCompleted returns a copy with check appended to the completed list.
// Completing a check twice is a no-op.
func (s State) WithCompleted(check string) State {
	s = s.clone()
	if !slices.Contains(s.CompletedChecks, check) {
		s.CompletedChecks = append(s.CompletedChecks, check)
	}
	return s
}

// WithWaiver returns a copy with w appended to the waivers.
func (s State) WithWaiver(w Waiver) State {
	s = s.clone()
	if w.At.IsZero() {
		w.At = time.Now().UTC()
	}
	s.Waivers = append(s.Waivers, w)
	return s
}

// IsCompleted reports whether check already passed (or was waived) in this session.
func (s State) IsCompleted(check string) bool {
	return slices.Contains(s.CompletedChecks, check)
}

// clone copies the slices so the receiver's backing arrays are never shared.
func (s State) clone() State {
	s.CompletedChecks = slices.Clone(s.CompletedChecks)
	s.Waivers = slices.Clone(s.Waivers)
	return s
}
