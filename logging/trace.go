package logging

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// traceLogger emits machine-parseable leveled output via slog, used when the
// tool runs under FLUTTER_TOOL_TRACE or on bots where plain status lines are
// hard to correlate.
type traceLogger struct {
	sl *slog.Logger
}

// NewTrace creates a Logger backed by slog with a tint handler. Color is the
// caller's decision; pass the terminal's answer.
func NewTrace(w io.Writer, useColor bool) Logger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelDebug,
		NoColor:    !useColor,
		TimeFormat: time.TimeOnly,
	})
	return &traceLogger{sl: slog.New(handler)}
}

func (l *traceLogger) Errorf(format string, args ...any) {
	l.sl.Error(fmt.Sprintf(format, args...))
}

func (l *traceLogger) Warningf(format string, args ...any) {
	l.sl.Warn(fmt.Sprintf(format, args...))
}

func (l *traceLogger) Statusf(format string, args ...any) {
	l.sl.Info(fmt.Sprintf(format, args...))
}

func (l *traceLogger) Tracef(format string, args ...any) {
	l.sl.Debug(fmt.Sprintf(format, args...))
}

func (l *traceLogger) PrintBox(message string, title string) {
	l.sl.Info(message, "box", title)
}
