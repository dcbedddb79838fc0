package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/Zombie9904/flutter/fsys"
	"github.com/Zombie9904/flutter/logging"
	"github.com/Zombie9904/flutter/platform"
)

func newTestCache(t *testing.T) (*Cache, fsys.FileSystem) {
	t.Helper()
	fs := fsys.NewMemory()
	return New(Options{
		FS:           fs,
		Logger:       logging.NewBuffer(),
		Platform:     platform.NewFake(),
		RootOverride: "/sdk",
	}), fs
}

func TestRootResolution(t *testing.T) {
	p := platform.NewFake()
	p.Env["FLUTTER_ROOT"] = "/opt/flutter"
	c := New(Options{FS: fsys.NewMemory(), Logger: logging.NewBuffer(), Platform: p})
	if c.Root() != "/opt/flutter" {
		t.Errorf("Root() = %q, want FLUTTER_ROOT value", c.Root())
	}

	// Override wins over the environment.
	c = New(Options{FS: fsys.NewMemory(), Logger: logging.NewBuffer(), Platform: p, RootOverride: "/sdk"})
	if c.Root() != "/sdk" {
		t.Errorf("Root() = %q, want override", c.Root())
	}
}

func TestDirs(t *testing.T) {
	c, _ := newTestCache(t)
	if got := c.Dir(); got != "/sdk/bin/cache" {
		t.Errorf("Dir() = %q", got)
	}
	if got := c.ArtifactDir("engine"); got != "/sdk/bin/cache/artifacts/engine" {
		t.Errorf("ArtifactDir() = %q", got)
	}
	if got := c.DartSdkDir(); got != "/sdk/bin/cache/dart-sdk" {
		t.Errorf("DartSdkDir() = %q", got)
	}
}

func TestStamps(t *testing.T) {
	c, _ := newTestCache(t)

	if got := c.StampFor("material_fonts"); got != "" {
		t.Errorf("StampFor() = %q before any fetch", got)
	}
	if err := c.SetStampFor("material_fonts", "rev42"); err != nil {
		t.Fatalf("SetStampFor() error = %v", err)
	}
	if got := c.StampFor("material_fonts"); got != "rev42" {
		t.Errorf("StampFor() = %q, want rev42", got)
	}
}

func TestEngineVersion(t *testing.T) {
	c, fs := newTestCache(t)
	if got := c.EngineVersion(); got != "" {
		t.Errorf("EngineVersion() = %q without a checkout", got)
	}
	if err := fsys.WriteFile(fs, "/sdk/bin/internal/engine.version", []byte("abcdef123\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := c.EngineVersion(); got != "abcdef123" {
		t.Errorf("EngineVersion() = %q", got)
	}
}

func TestLockUnlock(t *testing.T) {
	c, fs := newTestCache(t)
	ctx := context.Background()

	if err := c.Lock(ctx); err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	if !fsys.Exists(fs, "/sdk/bin/cache/lockfile") {
		t.Error("Lock() did not create the lock file")
	}

	// A second locker times out while the lock is held.
	timeoutCtx, cancel := context.WithTimeout(ctx, 120*time.Millisecond)
	defer cancel()
	if err := c.Lock(timeoutCtx); err == nil {
		t.Error("second Lock() succeeded while lock held")
	}

	c.Unlock()
	if err := c.Lock(ctx); err != nil {
		t.Errorf("Lock() after Unlock() error = %v", err)
	}
	c.Unlock()
}

func TestArtifacts(t *testing.T) {
	c, _ := newTestCache(t)
	a := NewArtifacts(c)

	tests := []struct {
		artifact Artifact
		want     string
	}{
		{ArtifactDartSdk, "/sdk/bin/cache/dart-sdk"},
		{ArtifactDartBinary, "/sdk/bin/cache/dart-sdk/bin/dart"},
		{ArtifactEngine, "/sdk/bin/cache/artifacts/engine"},
		{ArtifactMaterialFonts, "/sdk/bin/cache/artifacts/material_fonts"},
	}
	for _, tt := range tests {
		got, err := a.ArtifactPath(tt.artifact)
		if err != nil {
			t.Errorf("ArtifactPath(%s) error = %v", tt.artifact, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ArtifactPath(%s) = %q, want %q", tt.artifact, got, tt.want)
		}
	}

	if _, err := a.ArtifactPath(Artifact("bogus")); err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Errorf("ArtifactPath(bogus) error = %v", err)
	}
}

func TestArtifacts_WindowsDartBinary(t *testing.T) {
	p := platform.NewFake()
	p.OS = "windows"
	c := New(Options{FS: fsys.NewMemory(), Logger: logging.NewBuffer(), Platform: p, RootOverride: "/sdk"})

	got, err := NewArtifacts(c).ArtifactPath(ArtifactDartBinary)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, "dart.exe") {
		t.Errorf("ArtifactPath(dart) = %q, want .exe on windows", got)
	}
}

// failingLockFS makes any OpenFile fail with a permission error, leaving
// directory operations intact.
type failingLockFS struct {
	fsys.FileSystem
}

func (f *failingLockFS) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
}

func TestLock_NonContentionErrorReturns(t *testing.T) {
	c := New(Options{
		FS:           &failingLockFS{FileSystem: fsys.NewMemory()},
		Logger:       logging.NewBuffer(),
		Platform:     platform.NewFake(),
		RootOverride: "/sdk",
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := c.Lock(ctx)
	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("Lock() error = %v, want the permission error", err)
	}
	if ctx.Err() != nil {
		t.Error("Lock() polled until cancellation instead of returning the error")
	}
}
