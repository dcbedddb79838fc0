package process

import (
	"context"
	"fmt"
	"sync"
)

// FakeCommand scripts the result of one expected invocation.
type FakeCommand struct {
	// Cmd is matched against the argv joined with spaces.
	Cmd string

	Stdout   string
	Stderr   string
	ExitCode int

	// Err, when set, is returned instead of a result (spawn failure).
	Err error
}

// Fake is a scripted ProcessManager for tests. Commands are matched in
// registration order; an unexpected command fails loudly.
type Fake struct {
	mu       sync.Mutex
	expected []FakeCommand

	// CannotRun lists executables CanRun reports false for.
	CannotRun []string
}

// NewFake creates a fake with no expectations.
func NewFake() *Fake { return &Fake{} }

// Expect appends a scripted command.
func (f *Fake) Expect(cmd FakeCommand) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expected = append(f.expected, cmd)
	return f
}

// Remaining returns how many scripted commands were never run.
func (f *Fake) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.expected)
}

func (f *Fake) CanRun(executable string) bool {
	for _, name := range f.CannotRun {
		if name == executable {
			return false
		}
	}
	return true
}

func (f *Fake) Run(_ context.Context, _ string, cmd Command) (*RunResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.expected) == 0 {
		return nil, fmt.Errorf("unexpected command: %s", cmd)
	}
	next := f.expected[0]
	if next.Cmd != cmd.String() {
		return nil, fmt.Errorf("unexpected command: got %q, want %q", cmd.String(), next.Cmd)
	}
	f.expected = f.expected[1:]

	if next.Err != nil {
		return nil, next.Err
	}
	return &RunResult{Stdout: next.Stdout, Stderr: next.Stderr, ExitCode: next.ExitCode}, nil
}
