package process

import (
	"context"
	"fmt"
	"strings"

	"github.com/Zombie9904/flutter/logging"
)

// Utils layers run policy and trace logging over a ProcessManager. This is
// what most of the tool actually calls; the raw manager exists so tests can
// script process behavior underneath it.
type Utils struct {
	pm     ProcessManager
	logger logging.Logger
}

// NewUtils creates process utilities over pm, tracing through logger.
func NewUtils(pm ProcessManager, logger logging.Logger) *Utils {
	return &Utils{pm: pm, logger: logger}
}

// Manager returns the underlying ProcessManager.
func (u *Utils) Manager() ProcessManager { return u.pm }

// RunSync runs cmd and returns its result. When throwOnError is set, a
// nonzero exit becomes an error carrying the process stderr.
func (u *Utils) RunSync(ctx context.Context, dir string, cmd Command, throwOnError bool) (*RunResult, error) {
	if len(cmd) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	u.logger.Tracef("executing: %s", cmd)
	result, err := u.pm.Run(ctx, dir, cmd)
	if err != nil {
		u.logger.Tracef("failed to start %q: %v", cmd[0], err)
		return nil, err
	}
	u.logger.Tracef("exit code %d from: %s (%s)", result.ExitCode, cmd, result.Duration.Round(1e6))

	if throwOnError && result.ExitCode != 0 {
		detail := strings.TrimSpace(result.Stderr)
		if detail == "" {
			detail = strings.TrimSpace(result.Stdout)
		}
		return result, fmt.Errorf("%s exited with code %d: %s", cmd[0], result.ExitCode, detail)
	}
	return result, nil
}

// RunOutput runs cmd and returns its trimmed stdout, erroring on nonzero exit.
func (u *Utils) RunOutput(ctx context.Context, dir string, cmd Command) (string, error) {
	result, err := u.RunSync(ctx, dir, cmd, true)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Stdout), nil
}

// ExitsHappy reports whether cmd runs and exits zero.
func (u *Utils) ExitsHappy(ctx context.Context, cmd Command) bool {
	result, err := u.pm.Run(ctx, "", cmd)
	return err == nil && result.ExitCode == 0
}
