package logging

import (
	"fmt"
	"time"

	"github.com/Zombie9904/flutter/clock"
)

// verbose prefixes every message with the time elapsed since the logger was
// created and promotes trace messages to visible output.
type verbose struct {
	inner   Logger
	clock   clock.Clock
	started time.Time
}

// NewVerbose wraps inner for --verbose runs: trace becomes visible and all
// output carries an elapsed-time prefix.
func NewVerbose(inner Logger, clk clock.Clock) Logger {
	return &verbose{inner: inner, clock: clk, started: clk.Now()}
}

func (l *verbose) prefix() string {
	ms := l.clock.Since(l.started).Milliseconds()
	return fmt.Sprintf("[%+6d ms] ", ms)
}

func (l *verbose) Errorf(format string, args ...any) {
	l.inner.Errorf("%s"+format, prepend(l.prefix(), args)...)
}

func (l *verbose) Warningf(format string, args ...any) {
	l.inner.Warningf("%s"+format, prepend(l.prefix(), args)...)
}

func (l *verbose) Statusf(format string, args ...any) {
	l.inner.Statusf("%s"+format, prepend(l.prefix(), args)...)
}

// Tracef is visible in verbose runs, routed through the inner status stream.
func (l *verbose) Tracef(format string, args ...any) {
	l.inner.Statusf("%s"+format, prepend(l.prefix(), args)...)
}

func (l *verbose) PrintBox(message string, title string) {
	l.inner.PrintBox(message, title)
}

func prepend(p string, args []any) []any {
	out := make([]any, 0, len(args)+1)
	out = append(out, p)
	return append(out, args...)
}
