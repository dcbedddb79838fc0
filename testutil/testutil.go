// Package testutil provides helpers for tests that need an ambient
// registry wired with fakes instead of the process defaults.
package testutil

import (
	"context"
	"testing"
	"time"

	flutter "github.com/Zombie9904/flutter"
	"github.com/Zombie9904/flutter/appcontext"
	"github.com/Zombie9904/flutter/botdetector"
	"github.com/Zombie9904/flutter/clock"
	"github.com/Zombie9904/flutter/fsys"
	"github.com/Zombie9904/flutter/logging"
	"github.com/Zombie9904/flutter/platform"
	"github.com/Zombie9904/flutter/process"
)

// TestContext returns a context that is canceled when the test ends, so
// goroutines started during the test are cleaned up.
func TestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// TestContextWithTimeout returns a context with a timeout that is also
// canceled when the test ends.
func TestContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// Fakes collects the doubles a test scope is wired with.
type Fakes struct {
	FS       fsys.FileSystem
	Logger   *logging.Buffer
	Platform *platform.Fake
	Process  *process.Fake
	Clock    *clock.Fixed
}

// Scope returns a context whose registry resolves the core dependencies to
// fresh fakes, plus the fakes themselves for scripting and assertions. The
// scope is a child of the process root, so anything not faked here still
// resolves to its lazy default.
func Scope(t *testing.T) (context.Context, *Fakes) {
	t.Helper()

	f := &Fakes{
		FS:       fsys.NewMemory(),
		Logger:   logging.NewBuffer(),
		Platform: platform.NewFake(),
		Process:  process.NewFake(),
		Clock:    &clock.Fixed{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	ctx := appcontext.With(TestContext(t), flutter.Root())
	ctx = appcontext.Child(ctx, appcontext.Scope{
		Name: t.Name(),
		Overrides: map[appcontext.Key]appcontext.Generator{
			flutter.KeyFileSystem:     appcontext.Fixed(f.FS),
			flutter.KeyLogger:         appcontext.Fixed(logging.Logger(f.Logger)),
			flutter.KeyPlatform:       appcontext.Fixed(platform.Platform(f.Platform)),
			flutter.KeyProcessManager: appcontext.Fixed(process.ProcessManager(f.Process)),
			flutter.KeyClock:          appcontext.Fixed(clock.Clock(f.Clock)),
			flutter.KeyBotDetector:    appcontext.Fixed(botdetector.New(f.Platform)),
		},
	})
	return ctx, f
}
