package errors

import (
	"strings"
	"testing"
)

func TestInvalidTag(t *testing.T) {
	err := InvalidTag("3.13")

	if err.Category != Argument {
		t.Errorf("Expected Argument category, got %v", err.Category)
	}
	if err.Usage == "" {
		t.Error("Expected non-empty usage")
	}
	if !strings.Contains(err.Message, `"3.13"`) {
		t.Error("Expected message to contain the input")
	}
	if !Is(err, ErrParse) {
		t.Error("Expected ErrParse in chain")
	}
}

func TestMagicNumberMismatch(t *testing.T) {
	err := MagicNumberMismatch("a.h", 3571, "b.py", 3570)

	if err.Category != Validation {
		t.Errorf("Expected Validation category, got %v", err.Category)
	}
	if err.Message != "Magic numbers in a.h (3571) and b.py (3570) don't match" {
		t.Errorf("Unexpected message %q", err.Message)
	}
	if !Is(err, ErrArtifactMismatch) {
		t.Error("Expected ErrArtifactMismatch in chain")
	}
}

func TestPreconditionMessages(t *testing.T) {
	tests := map[string]struct {
		err      *CLIError
		contains string
	}{
		"docs archive":   {err: DocsArchiveMissing("/r/docs.tar.bz2"), contains: "/r/docs.tar.bz2"},
		"docs member":    {err: DocsMemberMissing("/r/docs.tar.bz2", "index.html"), contains: "index.html"},
		"magic source":   {err: MagicSourceMissing("/r/a.h"), contains: "/r/a.h"},
		"state file":     {err: StateFileNotFound("/r/state.yaml"), contains: "/r/state.yaml"},
		"directory":      {err: DirectoryNotFound("/r/Doc"), contains: "/r/Doc"},
		"git repository": {err: GitNotRepository("/r"), contains: "/r"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Category != Prerequisite {
				t.Errorf("Expected Prerequisite category, got %v", tt.err.Category)
			}
			if !strings.Contains(tt.err.Message, tt.contains) {
				t.Errorf("Expected message %q to contain %q", tt.err.Message, tt.contains)
			}
			if !Is(tt.err, ErrPreconditionMissing) {
				t.Error("Expected ErrPreconditionMissing in chain")
			}
			if len(tt.err.Remediation) == 0 {
				t.Error("Expected remediation steps")
			}
		})
	}
}

func TestUnreleasedDocsDeclined(t *testing.T) {
	err := UnreleasedDocsDeclined("3.13.0rc1")

	if err.Category != Validation {
		t.Errorf("Expected Validation category, got %v", err.Category)
	}
	if !Is(err, ErrOperatorDeclined) {
		t.Error("Expected ErrOperatorDeclined in chain")
	}
}

func TestStateConflict(t *testing.T) {
	err := StateConflict("state.yaml", "release", "3.13.0rc1", "3.13.0rc2")

	if err.Category != Configuration {
		t.Errorf("Expected Configuration category, got %v", err.Category)
	}
	if !strings.Contains(err.Message, "3.13.0rc2") {
		t.Error("Expected message to contain proposed value")
	}
	if !Is(err, ErrStateConflict) {
		t.Error("Expected ErrStateConflict in chain")
	}
}

func TestConfigParseError(t *testing.T) {
	original := &testError{}
	err := ConfigParseError("/path/to/config", original)

	if err.Category != Configuration {
		t.Errorf("Expected Configuration category, got %v", err.Category)
	}
	if err.Cause != original {
		t.Error("Expected original error as cause")
	}
}

func TestUnknownCheck(t *testing.T) {
	err := UnknownCheck("bogus", []string{"magic-number"})

	if err.Category != Argument {
		t.Errorf("Expected Argument category, got %v", err.Category)
	}
	if !strings.Contains(err.Remediation[0], "magic-number") {
		t.Error("Expected remediation to list available checks")
	}
}
