// Package inspect reads release artifacts out of an interpreter source
// checkout: the bytecode magic number and the built HTML docs archive.
package inspect

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	apperrors "github.com/pyrelease/relgate/internal/errors"
)

// Magic number locations, relative to the working tree.
const (
	MagicHeaderFile    = "Include/internal/pycore_magic_number.h"
	MagicBootstrapFile = "Lib/importlib/_bootstrap_external.py"
	MagicExpectedFile  = "Lib/test/test_importlib/test_util.py"
)

type magicSource struct {
	path    string
	pattern *regexp.Regexp
}

var (
	// Newer trees keep the canonical value in a C header; older ones in the
	// frozen importlib bootstrap.
	actualSources = []magicSource{
		{MagicHeaderFile, regexp.MustCompile(`(?m)^#define\s+PYC_MAGIC_NUMBER\s+(\d+)\s*$`)},
		{MagicBootstrapFile, regexp.MustCompile(`MAGIC_NUMBER = \(?(\d+)\)?\.to_bytes`)},
	}
	expectedSource = magicSource{
		MagicExpectedFile, regexp.MustCompile(`(?m)^\s+EXPECTED_MAGIC_NUMBER = (\d+)\s*$`),
	}
)

// MagicReport holds both magic numbers and where they were read from.
type MagicReport struct {
	ActualFile   string
	Actual       int
	ExpectedFile string
	Expected     int
}

// Verify fails with ErrArtifactMismatch when the two values differ.
func (r *MagicReport) Verify() error {
	if r.Actual != r.Expected {
		return apperrors.MagicNumberMismatch(r.ActualFile, r.Actual, r.ExpectedFile, r.Expected)
	}
	return nil
}

// ReadMagicNumbers reads the canonical magic number and the reference copy
// kept by the test suite from the working tree at repo.
func ReadMagicNumbers(repo string) (*MagicReport, error) {
	report := &MagicReport{}

	var candidates []string
	found := false
	for _, src := range actualSources {
		path := filepath.Join(repo, src.path)
		candidates = append(candidates, path)
		value, err := readMagic(path, src.pattern)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		report.ActualFile, report.Actual = path, value
		found = true
		break
	}
	if !found {
		return nil, apperrors.MagicSourceMissing(candidates...)
	}

	path := filepath.Join(repo, expectedSource.path)
	value, err := readMagic(path, expectedSource.pattern)
	if os.IsNotExist(err) {
		return nil, apperrors.MagicSourceMissing(path)
	}
	if err != nil {
		return nil, err
	}
	report.ExpectedFile, report.Expected = path, value

	return report, nil
}

// readMagic returns the first capture of pattern in the file at path. A
// missing file is returned as the raw os error so callers can try the next
// source.
func readMagic(path string, pattern *regexp.Regexp) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, err
		}
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	m := pattern.FindSubmatch(data)
	if m == nil {
		return 0, apperrors.MagicNumberUnreadable(path, "magic number definition not found")
	}
	value, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return 0, apperrors.MagicNumberUnreadable(path, err.Error())
	}
	if value <= 0 {
		return 0, apperrors.MagicNumberUnreadable(path, "magic number must be positive")
	}
	return value, nil
}
