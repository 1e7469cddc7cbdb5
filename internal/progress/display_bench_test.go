package progress_test

import (
	"errors"
	"io"
	"testing"

	"github.com/pyrelease/relgate/internal/progress"
)

func BenchmarkProgressDisplay_StartCheck(b *testing.B) {
	display := progress.NewProgressDisplayTo(progress.TerminalCapabilities{}, io.Discard)
	check := progress.CheckInfo{Name: "magic-number", Number: 1, Total: 2}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = display.StartCheck(check)
	}
}

func BenchmarkProgressDisplay_FinishCheck(b *testing.B) {
	display := progress.NewProgressDisplayTo(progress.TerminalCapabilities{SupportsUnicode: true, SupportsColor: true}, io.Discard)
	check := progress.CheckInfo{Name: "magic-number", Number: 1, Total: 2}
	err := errors.New("mismatch")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		display.FailCheck(check, err)
	}
}
