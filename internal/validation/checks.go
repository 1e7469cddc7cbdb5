package validation

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	apperrors "github.com/pyrelease/relgate/internal/errors"
	"github.com/pyrelease/relgate/internal/inspect"
	"github.com/pyrelease/relgate/internal/tag"
)

// UnreleasedQuestion is asked once when built docs still carry markers.
const UnreleasedQuestion = "Are these `(unreleased)` strings in built docs expected?"

// maxMarkerContext bounds how much of a matching line is shown.
const maxMarkerContext = 200

// CheckMagicNumber fails when the interpreter's magic number and the test
// suite's expected copy disagree.
func CheckMagicNumber(ctx context.Context, env Env) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	report, err := inspect.ReadMagicNumbers(env.State.GitRepo)
	if err != nil {
		return Outcome{}, err
	}
	env.logger().Debug("read magic numbers",
		"actual_file", report.ActualFile, "actual", report.Actual,
		"expected_file", report.ExpectedFile, "expected", report.Expected)

	if err := report.Verify(); err != nil {
		return Outcome{}, err
	}
	return Passed(fmt.Sprintf("magic number %d", report.Actual)), nil
}

// CheckDocUnreleasedVersion scans the built docs front page for
// "<tag> (unreleased)". Findings are shown and the operator must confirm them;
// a decline blocks the release. Alpha releases have no docs and are skipped.
func CheckDocUnreleasedVersion(ctx context.Context, env Env) (Outcome, error) {
	release := env.State.Release
	if !release.RequiresUnreleasedDocCheck() {
		return Skipped(fmt.Sprintf("%s releases ship without docs", release.Level())), nil
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	content, err := inspect.ReadDocsMember(env.State.GitRepo, release, env.DocsMember)
	if err != nil {
		return Outcome{}, err
	}

	markers := FindUnreleasedMarkers(content, release)
	if len(markers) == 0 {
		return Passed(""), nil
	}

	out := env.out()
	fmt.Fprintf(out, "Found %d `%s` string(s) in %s:\n", len(markers), UnreleasedMarker(release),
		inspect.DocsArchivePath(env.State.GitRepo, release))
	for _, m := range markers {
		fmt.Fprintf(out, "  line %d: %s\n", m.Line, m.Text)
	}

	ok, err := env.confirmer().Confirm(ctx, UnreleasedQuestion)
	if err != nil {
		return Outcome{}, fmt.Errorf("asking for confirmation: %w", err)
	}
	if !ok {
		return Outcome{}, apperrors.UnreleasedDocsDeclined(release.String())
	}
	return Waived(fmt.Sprintf("%d `(unreleased)` string(s) confirmed by operator", len(markers))), nil
}

// Marker is one occurrence of the unreleased marker.
type Marker struct {
	Line int    // 1-based line in the scanned content
	Text string // trimmed line, truncated for display
}

// UnreleasedMarker returns the literal searched for in built docs.
func UnreleasedMarker(t tag.Tag) string {
	return t.String() + " (unreleased)"
}

// FindUnreleasedMarkers returns every line of content that contains the
// unreleased marker for t. "New in 3.13" does not match "3.13.0rc1 (unreleased)".
func FindUnreleasedMarkers(content []byte, t tag.Tag) []Marker {
	needle := []byte(UnreleasedMarker(t))
	if !bytes.Contains(content, needle) {
		return nil
	}

	var markers []Marker
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(nil, len(content)+bufio.MaxScanTokenSize)
	line := 0
	for scanner.Scan() {
		line++
		if !bytes.Contains(scanner.Bytes(), needle) {
			continue
		}
		text := strings.TrimSpace(scanner.Text())
		if runes := []rune(text); len(runes) > maxMarkerContext {
			text = string(runes[:maxMarkerContext]) + "..."
		}
		markers = append(markers, Marker{Line: line, Text: text})
	}
	return markers
}
