// Package tag models interpreter release version identifiers such as
// 3.13.0a1, 3.13.0b2, 3.13.0rc1 and 3.13.0.
package tag

import (
	"fmt"
	"regexp"
	"strconv"

	apperrors "github.com/pyrelease/relgate/internal/errors"
	"golang.org/x/mod/semver"
)

// Level is the pre-release qualifier of a tag.
type Level int

const (
	// Alpha is an "aN" pre-release.
	Alpha Level = iota
	// Beta is a "bN" pre-release.
	Beta
	// Candidate is an "rcN" pre-release.
	Candidate
	// Final is a release without qualifier.
	Final
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Candidate:
		return "candidate"
	case Final:
		return "final"
	default:
		return "unknown"
	}
}

// suffix returns the textual qualifier used in tags ("a", "b", "rc").
func (l Level) suffix() string {
	switch l {
	case Alpha:
		return "a"
	case Beta:
		return "b"
	case Candidate:
		return "rc"
	default:
		return ""
	}
}

var tagPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:(a|b|rc)(\d+))?$`)

// ParseError reports a string that does not match the tag grammar.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid release tag %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid release tag %q", e.Input)
}

// Unwrap lets errors.Is match the parse taxonomy sentinel.
func (e *ParseError) Unwrap() error {
	return apperrors.ErrParse
}

// Tag is a parsed release version. The zero value is not a valid tag; use
// Parse. Tags are values and never change after parsing.
type Tag struct {
	major, minor, micro int
	level               Level
	serial              int
	valid               bool
}

// Parse parses s as X.Y.Z, X.Y.ZaN, X.Y.ZbN or X.Y.ZrcN.
func Parse(s string) (Tag, error) {
	m := tagPattern.FindStringSubmatch(s)
	if m == nil {
		return Tag{}, &ParseError{Input: s}
	}

	nums := make([]int, 0, 4)
	for _, part := range []string{m[1], m[2], m[3], m[5]} {
		if part == "" {
			nums = append(nums, 0)
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return Tag{}, &ParseError{Input: s, Reason: err.Error()}
		}
		nums = append(nums, n)
	}

	t := Tag{major: nums[0], minor: nums[1], micro: nums[2], level: Final, valid: true}
	switch m[4] {
	case "a":
		t.level = Alpha
	case "b":
		t.level = Beta
	case "rc":
		t.level = Candidate
	}
	if t.level != Final {
		t.serial = nums[3]
	}
	return t, nil
}

// MustParse is Parse that panics on error. Intended for tests and constants.
func MustParse(s string) Tag {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// IsZero reports whether t is the zero value (never parsed).
func (t Tag) IsZero() bool { return !t.valid }

// Major returns the major version.
func (t Tag) Major() int { return t.major }

// Minor returns the minor version.
func (t Tag) Minor() int { return t.minor }

// Micro returns the micro version.
func (t Tag) Micro() int { return t.micro }

// Level returns the pre-release qualifier.
func (t Tag) Level() Level { return t.level }

// Serial returns the pre-release serial number (0 for final releases).
func (t Tag) Serial() int { return t.serial }

// String returns the canonical textual form, e.g. "3.13.0rc1".
func (t Tag) String() string {
	if !t.valid {
		return ""
	}
	if t.level == Final {
		return t.Series()
	}
	return fmt.Sprintf("%s%s%d", t.Series(), t.level.suffix(), t.serial)
}

// Series returns major.minor.micro.
func (t Tag) Series() string {
	return fmt.Sprintf("%d.%d.%d", t.major, t.minor, t.micro)
}

// BasicVersion returns major.minor.
func (t Tag) BasicVersion() string {
	return fmt.Sprintf("%d.%d", t.major, t.minor)
}

// GitName returns the name of the git tag for this release.
func (t Tag) GitName() string {
	return "v" + t.String()
}

// Nickname returns the dotless form used in some artifact names, e.g. "3130rc1".
func (t Tag) Nickname() string {
	if t.level == Final {
		return fmt.Sprintf("%d%d%d", t.major, t.minor, t.micro)
	}
	return fmt.Sprintf("%d%d%d%s%d", t.major, t.minor, t.micro, t.level.suffix(), t.serial)
}

// Branch returns the branch a release is cut from: alphas come from main,
// everything else from the maintenance branch.
func (t Tag) Branch() string {
	if t.IsAlpha() {
		return "main"
	}
	return t.BasicVersion()
}

// IsAlpha reports an alpha pre-release.
func (t Tag) IsAlpha() bool { return t.valid && t.level == Alpha }

// IsBeta reports a beta pre-release.
func (t Tag) IsBeta() bool { return t.valid && t.level == Beta }

// IsReleaseCandidate reports a release candidate.
func (t Tag) IsReleaseCandidate() bool { return t.valid && t.level == Candidate }

// IsFinal reports a final release.
func (t Tag) IsFinal() bool { return t.valid && t.level == Final }

// IsPrerelease reports alpha, beta and candidate tags.
func (t Tag) IsPrerelease() bool { return t.valid && t.level != Final }

// IsFeatureFreeze reports the first beta, which starts feature freeze.
func (t Tag) IsFeatureFreeze() bool { return t.IsBeta() && t.serial == 1 }

// IncludesDocs reports whether a docs archive is built for this release.
// Alpha releases ship without documentation.
func (t Tag) IncludesDocs() bool { return t.valid && !t.IsAlpha() }

// RequiresUnreleasedDocCheck reports whether built docs must be scanned for
// "(unreleased)" markers. Only alpha releases are exempt.
func (t Tag) RequiresUnreleasedDocCheck() bool { return t.IncludesDocs() }

// semver returns t as a semantic version, mapping a/b/rc onto pre-release
// identifiers that sort in the same order ("a" < "b" < "rc").
func (t Tag) semver() string {
	v := "v" + t.Series()
	if t.level != Final {
		v += fmt.Sprintf("-%s.%d", t.level.suffix(), t.serial)
	}
	return v
}

// Compare returns -1, 0 or +1 as t sorts before, equal to or after other.
func (t Tag) Compare(other Tag) int {
	return semver.Compare(t.semver(), other.semver())
}

// Less reports whether t sorts before other.
func (t Tag) Less(other Tag) bool { return t.Compare(other) < 0 }

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	if !t.valid {
		return nil, &ParseError{Input: "", Reason: "empty tag"}
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tag) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
