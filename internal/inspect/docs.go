package inspect

import (
	"archive/tar"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	apperrors "github.com/pyrelease/relgate/internal/errors"
	"github.com/pyrelease/relgate/internal/tag"
)

// DefaultDocsMember is the archive member holding the docs front page.
const DefaultDocsMember = "index.html"

// maxMemberSize caps how much of a single member is read into memory.
const maxMemberSize = 16 << 20

const bzip2MIME = "application/x-bzip2"

// DocsArchivePath returns where the built HTML docs for t are expected:
// <repo>/<tag>/docs/python-<tag>-docs-html.tar.bz2.
func DocsArchivePath(repo string, t tag.Tag) string {
	return filepath.Join(repo, t.String(), "docs", fmt.Sprintf("python-%s-docs-html.tar.bz2", t))
}

// ReadDocsMember streams the docs archive for t and returns the content of
// member. The member may sit at the archive root or under a single top-level
// directory. An empty member selects DefaultDocsMember.
func ReadDocsMember(repo string, t tag.Tag, member string) ([]byte, error) {
	if member == "" {
		member = DefaultDocsMember
	}
	archive := DocsArchivePath(repo, t)

	f, err := os.Open(archive)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.DocsArchiveMissing(archive)
		}
		return nil, fmt.Errorf("opening docs archive: %w", err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, apperrors.DocsArchiveInvalid(archive, err.Error())
	}
	if !mtype.Is(bzip2MIME) {
		return nil, apperrors.DocsArchiveInvalid(archive, "expected "+bzip2MIME+", got "+mtype.String())
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding docs archive: %w", err)
	}

	tr := tar.NewReader(bzip2.NewReader(f))
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.DocsArchiveInvalid(archive, err.Error())
		}
		if hdr.Typeflag != tar.TypeReg || !memberMatches(hdr.Name, member) {
			continue
		}
		if hdr.Size > maxMemberSize {
			return nil, apperrors.DocsArchiveInvalid(archive,
				fmt.Sprintf("%s is %d bytes, limit is %d", hdr.Name, hdr.Size, maxMemberSize))
		}
		data, err := io.ReadAll(io.LimitReader(tr, maxMemberSize))
		if err != nil {
			return nil, apperrors.DocsArchiveInvalid(archive, err.Error())
		}
		return data, nil
	}

	return nil, apperrors.DocsMemberMissing(archive, member)
}

// memberMatches reports whether name is member at the root or one level down.
func memberMatches(name, member string) bool {
	name = strings.TrimPrefix(path.Clean(name), "./")
	if name == member {
		return true
	}
	dir, file := path.Split(name)
	dir = strings.TrimSuffix(dir, "/")
	return file == member && dir != "" && !strings.Contains(dir, "/")
}
