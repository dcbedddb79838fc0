// Package clock abstracts time for capabilities that stamp or measure it.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

type system struct{}

// System returns the real wall clock.
func System() Clock { return system{} }

func (system) Now() time.Time                  { return time.Now() }
func (system) Since(t time.Time) time.Duration { return time.Since(t) }

// Fixed is a Clock frozen at a settable instant, for tests.
type Fixed struct {
	Time time.Time
}

func (f *Fixed) Now() time.Time { return f.Time }

func (f *Fixed) Since(t time.Time) time.Duration { return f.Time.Sub(t) }

// Advance moves the fixed clock forward.
func (f *Fixed) Advance(d time.Duration) { f.Time = f.Time.Add(d) }
