package logging

import (
	"fmt"
	"strings"
	"sync"
)

// Buffer is a Logger that captures output per level, for tests.
type Buffer struct {
	mu       sync.Mutex
	errors   strings.Builder
	warnings strings.Builder
	status   strings.Builder
	trace    strings.Builder
}

// NewBuffer creates an empty capturing logger.
func NewBuffer() *Buffer { return &Buffer{} }

func (b *Buffer) Errorf(format string, args ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintf(&b.errors, format+"\n", args...)
}

func (b *Buffer) Warningf(format string, args ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintf(&b.warnings, format+"\n", args...)
}

func (b *Buffer) Statusf(format string, args ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintf(&b.status, format+"\n", args...)
}

func (b *Buffer) Tracef(format string, args ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintf(&b.trace, format+"\n", args...)
}

func (b *Buffer) PrintBox(message string, title string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeBox(&b.status, message, title)
}

// ErrorText returns everything logged at error level.
func (b *Buffer) ErrorText() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errors.String()
}

// WarningText returns everything logged at warning level.
func (b *Buffer) WarningText() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.warnings.String()
}

// StatusText returns everything logged at status level, including boxes.
func (b *Buffer) StatusText() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status.String()
}

// TraceText returns everything logged at trace level.
func (b *Buffer) TraceText() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.trace.String()
}
