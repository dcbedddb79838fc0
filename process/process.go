package process

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	toolerrors "github.com/Zombie9904/flutter/errors"
)

// ErrProcessNotFound indicates the executable is not installed or not on PATH.
var ErrProcessNotFound = errors.New("executable not found")

// RunResult contains the output of a finished process.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Command is an argv: executable followed by its arguments.
type Command []string

func (c Command) String() string { return strings.Join(c, " ") }

// ProcessManager spawns external processes. Run reports err only when the
// process could not be started or the context ended; a nonzero exit is a
// normal result, visible in RunResult.ExitCode.
type ProcessManager interface {
	// CanRun reports whether the executable can be located.
	CanRun(executable string) bool

	// Run executes cmd in dir (empty means inherit) and waits for it.
	Run(ctx context.Context, dir string, cmd Command) (*RunResult, error)
}

type local struct{}

// NewLocal returns the exec-backed process manager.
func NewLocal() ProcessManager { return &local{} }

func (l *local) CanRun(executable string) bool {
	_, err := exec.LookPath(executable)
	return err == nil
}

func (l *local) Run(ctx context.Context, dir string, cmd Command) (*RunResult, error) {
	if len(cmd) == 0 {
		return nil, errors.New("empty command")
	}

	start := time.Now()
	c := exec.CommandContext(ctx, cmd[0], cmd[1:]...)
	c.Dir = dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	result := &RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	case errors.Is(err, exec.ErrNotFound):
		return nil, ErrProcessNotFound
	default:
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
}

// errorHandling decorates a ProcessManager so spawn failures the user can
// act on surface as tool exits with guidance.
type errorHandling struct {
	delegate ProcessManager
}

// NewErrorHandling wraps pm with user-facing error translation. This is the
// decoration the default process manager capability ships with.
func NewErrorHandling(pm ProcessManager) ProcessManager {
	return &errorHandling{delegate: pm}
}

func (e *errorHandling) CanRun(executable string) bool {
	return e.delegate.CanRun(executable)
}

func (e *errorHandling) Run(ctx context.Context, dir string, cmd Command) (*RunResult, error) {
	result, err := e.delegate.Run(ctx, dir, cmd)
	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, ErrProcessNotFound):
		return nil, &toolerrors.ToolExitError{
			Message:    "The Flutter tool could not locate the executable " + cmd[0] + ".",
			Suggestion: "Please ensure that it is installed and on your PATH.",
			Err:        err,
		}
	case toolerrors.IsPermissionError(err):
		return nil, &toolerrors.ToolExitError{
			Message:    "The Flutter tool is not allowed to run " + cmd[0] + ".",
			Suggestion: "Please ensure that the executable has execute permission for the current user.",
			Err:        err,
		}
	default:
		return nil, err
	}
}
