// Package git inspects the release working tree: HEAD commit and branch, the
// origin remote and the GitHub owner derived from it. Repositories are opened
// with go-git through an Opener so tests can use in-memory storage.
package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	apperrors "github.com/pyrelease/relgate/internal/errors"
)

// OriginRemote is the remote whose URL identifies the release fork.
const OriginRemote = "origin"

// Opener abstracts the method of opening a git repository
// This allows for dependency injection in tests
type Opener interface {
	// Open opens a git repository at the given path
	Open(path string) (Repository, error)
}

// Repository is the subset of go-git's Repository used here.
type Repository interface {
	Head() (*plumbing.Reference, error)
	Remote(name string) (*git.Remote, error)
}

// DefaultOpener implements Opener using go-git's PlainOpen
type DefaultOpener struct{}

// Open opens the repository containing path.
func (d *DefaultOpener) Open(path string) (Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, apperrors.GitNotRepository(path)
		}
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	return repo, nil
}

// InMemoryOpener returns a pre-built repository regardless of path.
type InMemoryOpener struct {
	Repo *git.Repository
}

// Open returns the pre-configured in-memory repository
func (i *InMemoryOpener) Open(_ string) (Repository, error) {
	if i.Repo == nil {
		return nil, fmt.Errorf("no repository configured")
	}
	return i.Repo, nil
}

// RepoInfo describes the working tree a release is cut from.
type RepoInfo struct {
	HeadCommit string // 40-character hex SHA, empty for an unborn HEAD
	Branch     string // branch name, "detached", or empty for an unborn HEAD
	OriginURL  string // first URL of the origin remote, empty if none
	Owner      string // GitHub owner parsed from OriginURL, empty if not GitHub
}

// Describe collects RepoInfo for the repository at path. A repository without
// commits or without an origin remote is not an error; the corresponding
// fields are left empty.
func Describe(opener Opener, path string) (*RepoInfo, error) {
	repo, err := opener.Open(path)
	if err != nil {
		return nil, err
	}

	info := &RepoInfo{}

	head, err := repo.Head()
	switch {
	case err == nil:
		info.HeadCommit = head.Hash().String()
		if head.Name().IsBranch() {
			info.Branch = head.Name().Short()
		} else {
			info.Branch = "detached"
		}
	case errors.Is(err, plumbing.ErrReferenceNotFound):
	default:
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	remote, err := repo.Remote(OriginRemote)
	switch {
	case err == nil:
		if urls := remote.Config().URLs; len(urls) > 0 {
			info.OriginURL = urls[0]
			if owner, ownerErr := ExtractGitHubOwner(info.OriginURL); ownerErr == nil {
				info.Owner = owner
			}
		}
	case errors.Is(err, git.ErrRemoteNotFound):
	default:
		return nil, fmt.Errorf("reading %s remote: %w", OriginRemote, err)
	}

	return info, nil
}

// Warning is a non-fatal observation about the working tree.
type Warning struct {
	Level   string // "warning" or "serious"
	Message string
}

// CompareHeads compares the HEAD recorded when the release state was created
// with the current one. Checks validate the tree as it is now, so a moved HEAD
// or switched branch is worth surfacing before running them.
func CompareHeads(recordedCommit, recordedBranch string, current *RepoInfo) []Warning {
	if current == nil || recordedCommit == "" {
		return nil
	}

	var warnings []Warning
	if recordedBranch != "" && current.Branch != recordedBranch {
		warnings = append(warnings, Warning{
			Level:   "serious",
			Message: fmt.Sprintf("branch changed since release state was created: %s -> %s", recordedBranch, current.Branch),
		})
	}
	if current.HeadCommit != recordedCommit {
		warnings = append(warnings, Warning{
			Level:   "warning",
			Message: fmt.Sprintf("HEAD moved since release state was created: %s -> %s", short(recordedCommit), short(current.HeadCommit)),
		})
	}
	return warnings
}

func short(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
