// Package rewrite replaces the "next" placeholder in reStructuredText version
// directives with a concrete release version.
//
// A line is eligible when it matches, as a whole:
//
//	[ws] ".." ws+ NAME [ws] "::" [ws] "next" REMAINDER
//
// where NAME is one of DirectiveNames and "next" is followed by end of line,
// whitespace or punctuation other than '.', '-' and '_'. Only the first
// argument is ever substituted: for deprecated-removed the removal version
// stays in REMAINDER untouched.
package rewrite

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentinel is the placeholder awaiting a release version.
const Sentinel = "next"

// DirectiveNames lists the directives whose version argument may be "next".
// Longer names come first so "deprecated-removed" is not read as "deprecated".
var DirectiveNames = []string{
	"deprecated-removed",
	"versionchanged",
	"versionremoved",
	"versionadded",
	"deprecated",
}

// DirectiveMatch is a line that matched the directive grammar.
type DirectiveMatch struct {
	// Prefix is everything before the sentinel: indentation, "..", the
	// directive name, "::" and surrounding whitespace.
	Prefix string
	// Name is the directive name.
	Name string
	// Remainder is everything after the sentinel, including the line ending.
	Remainder string
}

// Replace returns the line with the sentinel replaced by version.
func (m DirectiveMatch) Replace(version string) string {
	return m.Prefix + version + m.Remainder
}

// MatchDirective matches line against the directive grammar. line should be
// valid UTF-8 and may carry its line ending.
func MatchDirective(line string) (DirectiveMatch, bool) {
	i := skipSpace(line, 0)
	if !strings.HasPrefix(line[i:], "..") {
		return DirectiveMatch{}, false
	}
	i += len("..")

	j := skipSpace(line, i)
	if j == i {
		return DirectiveMatch{}, false
	}
	i = j

	name := matchName(line[i:])
	if name == "" {
		return DirectiveMatch{}, false
	}
	i += len(name)

	i = skipSpace(line, i)
	if !strings.HasPrefix(line[i:], "::") {
		return DirectiveMatch{}, false
	}
	i = skipSpace(line, i+len("::"))

	if !strings.HasPrefix(line[i:], Sentinel) {
		return DirectiveMatch{}, false
	}
	rest := line[i+len(Sentinel):]
	if !isBoundary(rest) {
		return DirectiveMatch{}, false
	}

	return DirectiveMatch{Prefix: line[:i], Name: name, Remainder: rest}, true
}

func matchName(s string) string {
	for _, name := range DirectiveNames {
		if strings.HasPrefix(s, name) {
			return name
		}
	}
	return ""
}

// skipSpace returns the index of the first non-space rune at or after i.
func skipSpace(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

// isBoundary reports whether rest may follow the sentinel, so that words such
// as "nextgen" or "next-release" are left alone.
func isBoundary(rest string) bool {
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	switch {
	case unicode.IsSpace(r):
		return true
	case r == '.' || r == '-' || r == '_':
		return false
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return true
	default:
		return false
	}
}
