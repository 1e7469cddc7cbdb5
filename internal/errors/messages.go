package errors

import "fmt"

// InvalidTag reports a version string that does not match the tag grammar.
func InvalidTag(input string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid release tag %q", input),
		"relgate state init --tag X.Y.Z[aN|bN|rcN] --repo <path>",
		"Use a tag such as 3.13.0a1, 3.13.0b2, 3.13.0rc1 or 3.13.0",
	).WithCause(ErrParse)
}

// MissingVersionArgument reports an empty target version for the rewriter.
func MissingVersionArgument() *CLIError {
	return NewArgumentErrorWithUsage(
		"target version must be a non-empty single-line string",
		"relgate docs bump <version> <directory>",
		"Pass the version that replaces \"next\", usually X.Y",
	)
}

// DirectoryNotFound reports a missing directory argument.
func DirectoryNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("directory not found: %s", path),
		"Check the path exists and is a directory",
	).WithCause(ErrPreconditionMissing)
}

// MagicNumberMismatch reports a canonical magic number that differs from the
// reference copy used by the test suite.
func MagicNumberMismatch(actualFile string, actual int, expectedFile string, expected int) *CLIError {
	return NewValidationError(
		fmt.Sprintf("Magic numbers in %s (%d) and %s (%d) don't match", actualFile, actual, expectedFile, expected),
		"Regenerate the reference magic number in "+expectedFile,
		"Re-run the check after committing the fix",
	).WithCause(ErrArtifactMismatch)
}

// MagicSourceMissing reports a magic number source file that does not exist.
func MagicSourceMissing(paths ...string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("magic number source not found (tried %v)", paths),
		"Check that git_repo points at an interpreter source checkout",
	).WithCause(ErrPreconditionMissing)
}

// MagicNumberUnreadable reports a source file whose magic number could not be parsed.
func MagicNumberUnreadable(path, detail string) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("cannot read magic number from %s: %s", path, detail),
		"Check the file still uses the expected definition syntax",
	).WithCause(ErrParse)
}

// DocsArchiveMissing reports the absent built docs archive.
func DocsArchiveMissing(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("docs archive not found: %s", path),
		"Build the HTML documentation archive for this release first",
	).WithCause(ErrPreconditionMissing)
}

// DocsMemberMissing reports an archive without the expected member.
func DocsMemberMissing(archive, member string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("%s not found in %s", member, archive),
		"Rebuild the HTML documentation archive",
	).WithCause(ErrPreconditionMissing)
}

// DocsArchiveInvalid reports a docs archive that is not a bzip2 tarball.
func DocsArchiveInvalid(path, detail string) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("docs archive %s is not readable: %s", path, detail),
		"Rebuild the HTML documentation archive",
	).WithCause(ErrParse)
}

// UnreleasedDocsDeclined reports that the operator blocked the release.
func UnreleasedDocsDeclined(tag string) *CLIError {
	return NewValidationError(
		fmt.Sprintf("`(unreleased)` strings for %s found in built docs", tag),
		"Run 'relgate docs bump' over the Doc/ directory and rebuild the docs",
	).WithCause(ErrOperatorDeclined)
}

// StateFileNotFound reports a missing persisted release state.
func StateFileNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("release state not found: %s", path),
		"Run 'relgate state init --tag <tag> --repo <path>' first",
		"Or pass --tag and --repo to run without a state file",
	).WithCause(ErrPreconditionMissing)
}

// StateConflict reports an attempt to replace an already-set state field.
func StateConflict(path, field, existing, proposed string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("release state %s already has %s=%q (refusing to set %q)", path, field, existing, proposed),
		"Run 'relgate state discard' to start a new release session",
		"Or pass --force to replace the state explicitly",
	).WithCause(ErrStateConflict)
}

// ConfigParseError reports an unreadable configuration file.
func ConfigParseError(path string, err error) *CLIError {
	return NewConfigError(
		fmt.Sprintf("failed to load config %s: %v", path, err),
		"Check the file is valid JSON",
		"Run with --debug for more detail",
	).WithCause(err)
}

// GitNotRepository reports a working tree path that is not a git repository.
func GitNotRepository(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("not a git repository: %s", path),
		"Point --repo at a git checkout",
	).WithCause(ErrPreconditionMissing)
}

// UnknownCheck reports a check name that is not registered.
func UnknownCheck(name string, available []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("unknown check %q", name),
		fmt.Sprintf("Available checks: %v", available),
	)
}
