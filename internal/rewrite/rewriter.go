package rewrite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	apperrors "github.com/pyrelease/relgate/internal/errors"
	"github.com/pyrelease/relgate/internal/fsutil"
)

// DefaultPattern selects reStructuredText sources anywhere under the root.
const DefaultPattern = "**/*.rst"

var errInvalidUTF8 = errors.New("invalid UTF-8")

// LineProcessingError reports the file and line where rewriting a file
// failed. The file is left untouched.
type LineProcessingError struct {
	Path string
	Line int
	Err  error
}

func (e *LineProcessingError) Error() string {
	return fmt.Sprintf("processing line %s:%d: %v", e.Path, e.Line, e.Err)
}

// Unwrap matches both ErrLineProcessing and the underlying cause.
func (e *LineProcessingError) Unwrap() []error {
	return []error{apperrors.ErrLineProcessing, e.Err}
}

// Options configures a Rewrite run.
type Options struct {
	// Version replaces the sentinel. Must be non-empty and single-line.
	Version string
	// Root is the directory to scan.
	Root string
	// Pattern is a doublestar glob relative to Root; empty means DefaultPattern.
	Pattern string
	// DryRun reports changes without writing files.
	DryRun bool
	// Logger receives per-file progress; nil discards it.
	Logger *log.Logger
}

// FileResult describes the changes to one file.
type FileResult struct {
	Path    string
	Changes int
	Lines   []int // 1-based numbers of rewritten lines
}

// Result summarizes a Rewrite run.
type Result struct {
	// Scanned is the number of files matched by the pattern.
	Scanned int
	// Files lists the files that had at least one change, in scan order.
	Files []FileResult
}

// Changes returns the total number of rewritten lines.
func (r *Result) Changes() int {
	n := 0
	for _, f := range r.Files {
		n += f.Changes
	}
	return n
}

// Rewrite replaces the sentinel in every matching file under opts.Root.
// Files are processed in lexical order and each is either rewritten in full
// or not touched. The first error stops the run.
func Rewrite(ctx context.Context, opts Options) (*Result, error) {
	if err := validateVersion(opts.Version); err != nil {
		return nil, err
	}
	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, apperrors.NewArgumentError(
			fmt.Sprintf("invalid glob pattern %q", pattern),
			"Use a doublestar pattern such as **/*.rst",
		)
	}
	info, err := os.Stat(opts.Root)
	if err != nil || !info.IsDir() {
		return nil, apperrors.DirectoryNotFound(opts.Root)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger.Infof("Updating %q versions in %s to %q", Sentinel, opts.Root, opts.Version)

	paths, err := doublestar.Glob(os.DirFS(opts.Root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("matching %s under %s: %w", pattern, opts.Root, err)
	}
	sort.Strings(paths)

	result := &Result{Scanned: len(paths)}
	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		path := filepath.Join(opts.Root, filepath.FromSlash(rel))

		fr, err := RewriteFile(path, opts.Version, opts.DryRun)
		if err != nil {
			return result, err
		}
		if fr.Changes == 0 {
			logger.Debugf("Unchanged file %s", path)
			continue
		}
		logger.Infof("Updating file %s (%d %s)", path, fr.Changes, plural(fr.Changes, "change"))
		result.Files = append(result.Files, fr)
	}
	return result, nil
}

// RewriteFile rewrites a single file. A file without matches is never opened
// for writing; with dryRun no file is written at all.
func RewriteFile(path, version string, dryRun bool) (FileResult, error) {
	if err := validateVersion(version); err != nil {
		return FileResult{}, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("reading %s: %w", path, err)
	}

	updated, lines, err := RewriteContent(content, version)
	if err != nil {
		var lineErr *LineProcessingError
		if errors.As(err, &lineErr) {
			lineErr.Path = path
		}
		return FileResult{}, err
	}

	fr := FileResult{Path: path, Changes: len(lines), Lines: lines}
	if fr.Changes == 0 || dryRun {
		return fr, nil
	}

	mode, err := fsutil.FileMode(path, 0o644)
	if err != nil {
		return FileResult{}, err
	}
	if err := fsutil.WriteFileAtomic(path, updated, mode); err != nil {
		return FileResult{}, fmt.Errorf("writing %s: %w", path, err)
	}
	return fr, nil
}

// RewriteContent applies the substitution to content line by line and
// returns the new content with the numbers of the changed lines. Line
// endings and every byte outside the sentinel are kept as they are.
func RewriteContent(content []byte, version string) ([]byte, []int, error) {
	var (
		out     bytes.Buffer
		changed []int
	)
	out.Grow(len(content))

	for i, line := range bytes.SplitAfter(content, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		lineno := i + 1
		if !utf8.Valid(line) {
			return nil, nil, &LineProcessingError{Line: lineno, Err: errInvalidUTF8}
		}
		if m, ok := MatchDirective(string(line)); ok {
			out.WriteString(m.Replace(version))
			changed = append(changed, lineno)
			continue
		}
		out.Write(line)
	}
	return out.Bytes(), changed, nil
}

func validateVersion(version string) error {
	if version == "" || strings.ContainsAny(version, "\r\n") {
		return apperrors.MissingVersionArgument()
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
