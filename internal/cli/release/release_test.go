package release

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pyrelease/relgate/internal/errors"
	"github.com/pyrelease/relgate/internal/git"
	"github.com/pyrelease/relgate/internal/inspect"
	"github.com/pyrelease/relgate/internal/tag"
)

const (
	headA = "0123456789abcdef0123456789abcdef01234567"
	headB = "89abcdef0123456789abcdef0123456789abcdef"
)

// newOpener returns an opener for an in-memory repository whose HEAD points
// at head on branch, with an optional origin remote.
func newOpener(t *testing.T, head, branch, originURL string) git.Opener {
	t.Helper()

	store := memory.NewStorage()
	repo, err := gogit.Init(store, nil)
	require.NoError(t, err)

	if head != "" {
		ref := plumbing.NewBranchReferenceName(branch)
		require.NoError(t, store.SetReference(plumbing.NewHashReference(ref, plumbing.NewHash(head))))
		require.NoError(t, store.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, ref)))
	}
	if originURL != "" {
		_, err = repo.CreateRemote(&config.RemoteConfig{Name: git.OriginRemote, URLs: []string{originURL}})
		require.NoError(t, err)
	}
	return &git.InMemoryOpener{Repo: repo}
}

// notRepoOpener fails like DefaultOpener does outside a repository.
type notRepoOpener struct{}

func (notRepoOpener) Open(path string) (git.Repository, error) {
	return nil, apperrors.GitNotRepository(path)
}

// newSourceTree writes magic number sources to a new working tree.
func newSourceTree(t *testing.T, actual, expected int) string {
	t.Helper()

	repo := t.TempDir()
	files := map[string]string{
		inspect.MagicHeaderFile:   fmt.Sprintf("#define PYC_MAGIC_NUMBER %d\n", actual),
		inspect.MagicExpectedFile: fmt.Sprintf("        EXPECTED_MAGIC_NUMBER = %d\n", expected),
	}
	for rel, content := range files {
		path := filepath.Join(repo, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return repo
}

// placeDocs installs a docs archive fixture for release under repo.
func placeDocs(t *testing.T, repo, release, fixture string) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("..", "..", "inspect", "testdata", fixture))
	require.NoError(t, err)
	archive := inspect.DocsArchivePath(repo, tag.MustParse(release))
	require.NoError(t, os.MkdirAll(filepath.Dir(archive), 0o755))
	require.NoError(t, os.WriteFile(archive, data, 0o644))
}
