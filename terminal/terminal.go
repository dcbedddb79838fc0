// Package terminal provides the tool's standard streams and ANSI styling,
// keeping all "is this a real terminal" logic in one place.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Stdio bundles the tool's standard streams so tests can capture output.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// NewStdio returns the process streams.
func NewStdio() *Stdio {
	return &Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Color names an ANSI foreground color.
type Color int

// Colors supported by Terminal.Color.
const (
	Red Color = iota
	Green
	Yellow
	Blue
	Cyan
	Magenta
	Grey
)

var colorCodes = map[Color]string{
	Red:     "\x1b[31m",
	Green:   "\x1b[32m",
	Yellow:  "\x1b[33m",
	Blue:    "\x1b[34m",
	Cyan:    "\x1b[36m",
	Magenta: "\x1b[35m",
	Grey:    "\x1b[90m",
}

const (
	boldCode  = "\x1b[1m"
	resetCode = "\x1b[0m"
)

// Terminal applies ANSI styling when the output supports it.
type Terminal interface {
	// SupportsColor reports whether stdout is an ANSI-capable terminal.
	SupportsColor() bool

	// Bolden wraps s in bold codes when supported, otherwise returns s.
	Bolden(s string) string

	// Color wraps s in the given color when supported, otherwise returns s.
	Color(s string, c Color) string
}

type ansiTerminal struct {
	stdio *Stdio
	// forced, when non-nil, pins color support for tests.
	forced *bool
}

// Option configures New.
type Option func(*ansiTerminal)

// WithColor pins color support on or off, bypassing terminal detection.
func WithColor(enabled bool) Option {
	return func(t *ansiTerminal) { t.forced = &enabled }
}

// New creates a Terminal over the given streams.
func New(stdio *Stdio, opts ...Option) Terminal {
	t := &ansiTerminal{stdio: stdio}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *ansiTerminal) SupportsColor() bool {
	if t.forced != nil {
		return *t.forced
	}
	f, ok := t.stdio.Out.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (t *ansiTerminal) Bolden(s string) string {
	if !t.SupportsColor() || s == "" {
		return s
	}
	return boldCode + s + resetCode
}

func (t *ansiTerminal) Color(s string, c Color) string {
	if !t.SupportsColor() || s == "" {
		return s
	}
	code, ok := colorCodes[c]
	if !ok {
		return s
	}
	return code + s + resetCode
}

// PromptForChar prints prompt and reads a single-character answer from the
// input stream. Only runes in accepted are returned; anything else re-asks.
// An empty line returns defaultAnswer when it is one of the accepted runes.
func PromptForChar(stdio *Stdio, prompt string, accepted []rune, defaultAnswer rune) (rune, error) {
	reader := bufio.NewReader(stdio.In)
	for {
		fmt.Fprintf(stdio.Out, "%s [%s]: ", prompt, string(accepted))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return 0, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			for _, r := range accepted {
				if r == defaultAnswer {
					return defaultAnswer, nil
				}
			}
			continue
		}
		answer := []rune(strings.ToLower(line))[0]
		for _, r := range accepted {
			if r == answer {
				return answer, nil
			}
		}
	}
}
