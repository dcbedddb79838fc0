package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/Zombie9904/flutter/terminal"
)

// Logger is the capability all user-facing tool output goes through.
type Logger interface {
	// Errorf prints an error message to the error stream.
	Errorf(format string, args ...any)

	// Warningf prints a warning to the error stream.
	Warningf(format string, args ...any)

	// Statusf prints normal progress output.
	Statusf(format string, args ...any)

	// Tracef prints verbose diagnostics. The stdout logger drops these;
	// wrap it in a verbose or trace logger to see them.
	Tracef(format string, args ...any)

	// PrintBox prints message in a drawn box with an optional title, used
	// for output that must stand out from surrounding noise.
	PrintBox(message string, title string)
}

type stdoutLogger struct {
	term  terminal.Terminal
	stdio *terminal.Stdio
}

// NewStdout creates the standard interactive logger: errors and warnings on
// stderr with color when supported, status on stdout, trace dropped.
func NewStdout(term terminal.Terminal, stdio *terminal.Stdio) Logger {
	return &stdoutLogger{term: term, stdio: stdio}
}

func (l *stdoutLogger) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(l.stdio.Err, l.term.Color(msg, terminal.Red))
}

func (l *stdoutLogger) Warningf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(l.stdio.Err, l.term.Color(msg, terminal.Yellow))
}

func (l *stdoutLogger) Statusf(format string, args ...any) {
	fmt.Fprintf(l.stdio.Out, format+"\n", args...)
}

func (l *stdoutLogger) Tracef(string, ...any) {}

func (l *stdoutLogger) PrintBox(message string, title string) {
	writeBox(l.stdio.Out, message, title)
}

// writeBox draws message inside a unicode box. A non-empty title is embedded
// in the top border.
func writeBox(w io.Writer, message string, title string) {
	lines := strings.Split(strings.TrimRight(message, "\n"), "\n")

	width := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}
	top := "┌─"
	if title != "" {
		top += " " + title + " "
		if n := len([]rune(title)) + 2; n > width {
			width = n
		}
		top += strings.Repeat("─", width-len([]rune(title))-2)
	} else {
		top += strings.Repeat("─", width)
	}
	top += "─┐"

	fmt.Fprintln(w, top)
	for _, line := range lines {
		pad := width - len([]rune(line))
		fmt.Fprintln(w, "│ "+line+strings.Repeat(" ", pad)+" │")
	}
	fmt.Fprintln(w, "└─"+strings.Repeat("─", width)+"─┘")
}
