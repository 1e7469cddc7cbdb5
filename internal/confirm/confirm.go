// Package confirm provides the operator confirmation used by release checks
// that need a human decision. Checks depend on the Confirmer interface so an
// interactive prompt, a fail-closed non-interactive mode and scripted answers
// in tests are interchangeable.
package confirm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Confirmer asks a yes/no question and reports whether the answer was yes.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// IsAffirmative reports whether answer is an accepted "yes".
func IsAffirmative(answer string) bool {
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}

// Prompter asks on Out and reads a line from In. There is no timeout: an
// unattended prompt blocks until input arrives or In is closed.
type Prompter struct {
	In  io.Reader
	Out io.Writer

	once   sync.Once
	reader *bufio.Reader
}

// NewPrompter creates a Prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{In: in, Out: out}
}

// Confirm prints question and returns true only for "y" or "yes". Any other
// answer, including end of input, is a decline.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p.once.Do(func() { p.reader = bufio.NewReader(p.In) })

	fmt.Fprintf(p.Out, "%s [y/N]: ", question)

	answer, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(p.Out)
	}
	return IsAffirmative(answer), nil
}

// Deny is the fail-closed confirmer used in non-interactive runs.
type Deny struct {
	Out io.Writer // optional; receives a note that the question was declined
}

// Confirm always declines.
func (d Deny) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if d.Out != nil {
		fmt.Fprintf(d.Out, "%s [y/N]: n (non-interactive)\n", question)
	}
	return false, nil
}

// ErrNoAnswers is returned by Scripted when all answers have been consumed.
var ErrNoAnswers = errors.New("scripted confirmer has no answers left")

// Scripted replays fixed answers in order and records the questions asked.
type Scripted struct {
	mu        sync.Mutex
	answers   []string
	questions []string
}

// NewScripted creates a Scripted confirmer with the given answers.
func NewScripted(answers ...string) *Scripted {
	return &Scripted{answers: answers}
}

// Confirm pops the next answer.
func (s *Scripted) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.answers) == 0 {
		return false, fmt.Errorf("%w (question: %q)", ErrNoAnswers, question)
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	s.questions = append(s.questions, question)
	return IsAffirmative(answer), nil
}

// Remaining returns the number of unused answers.
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

// Questions returns the questions asked so far.
func (s *Scripted) Questions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.questions...)
}
