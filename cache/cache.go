package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Zombie9904/flutter/fsys"
	"github.com/Zombie9904/flutter/logging"
	"github.com/Zombie9904/flutter/platform"
)

// Cache is the SDK artifact cache under <root>/bin/cache: downloaded engine
// artifacts, the bundled Dart SDK, and the version stamps that say what is
// present.
type Cache struct {
	fs       fsys.FileSystem
	logger   logging.Logger
	platform platform.Platform
	root     string
}

// Options configures New.
type Options struct {
	FS       fsys.FileSystem
	Logger   logging.Logger
	Platform platform.Platform

	// RootOverride pins the SDK root, bypassing FLUTTER_ROOT.
	RootOverride string
}

// New creates a cache rooted at the SDK location. The root comes from
// RootOverride, then the FLUTTER_ROOT environment variable, then the
// current directory as a last resort.
func New(opts Options) *Cache {
	root := opts.RootOverride
	if root == "" {
		root, _ = opts.Platform.LookupEnv("FLUTTER_ROOT")
	}
	if root == "" {
		root = "."
		opts.Logger.Tracef("FLUTTER_ROOT is not set; using %q as the SDK root", root)
	}
	return &Cache{fs: opts.FS, logger: opts.Logger, platform: opts.Platform, root: root}
}

// Root returns the SDK root directory.
func (c *Cache) Root() string { return c.root }

// Dir returns the cache directory itself.
func (c *Cache) Dir() string { return filepath.Join(c.root, "bin", "cache") }

// ArtifactDir returns the directory for a named downloaded artifact set.
func (c *Cache) ArtifactDir(name string) string {
	return filepath.Join(c.Dir(), "artifacts", name)
}

// DartSdkDir returns the bundled Dart SDK location.
func (c *Cache) DartSdkDir() string { return filepath.Join(c.Dir(), "dart-sdk") }

// StampFor returns the recorded version stamp for an artifact set, or ""
// when the artifact has never been fetched.
func (c *Cache) StampFor(name string) string {
	data, err := fsys.ReadFile(c.fs, c.stampPath(name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetStampFor records the version stamp for an artifact set.
func (c *Cache) SetStampFor(name, version string) error {
	return fsys.WriteFile(c.fs, c.stampPath(name), []byte(version+"\n"), 0o644)
}

func (c *Cache) stampPath(name string) string {
	return filepath.Join(c.Dir(), name+".stamp")
}

// EngineVersion returns the pinned engine revision, or "" when the SDK
// checkout has no engine.version file.
func (c *Cache) EngineVersion() string {
	data, err := fsys.ReadFile(c.fs, filepath.Join(c.root, "bin", "internal", "engine.version"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// lockFileName guards the cache against concurrent tool invocations.
const lockFileName = "lockfile"

// lockRetryInterval paces Lock polling.
const lockRetryInterval = 50 * time.Millisecond

// Lock takes the cache lock, waiting for other tool invocations to release
// it. Callers must pair it with Unlock, normally via a shutdown hook.
func (c *Cache) Lock(ctx context.Context) error {
	if err := c.fs.MkdirAll(c.Dir(), 0o755); err != nil {
		return err
	}
	path := filepath.Join(c.Dir(), lockFileName)
	printed := false
	for {
		f, err := c.fs.OpenFile(path, fsys.LockFlags, 0o644)
		if err == nil {
			f.Close()
			return nil
		}
		// Only an existing lockfile means contention; anything else
		// (permissions, a vanished cache dir) will not resolve by waiting.
		if !errors.Is(err, os.ErrExist) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !printed {
			c.logger.Statusf("Waiting for another flutter command to release the startup lock...")
			printed = true
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

// Unlock releases the cache lock. Safe to call when not held.
func (c *Cache) Unlock() {
	_ = c.fs.Remove(filepath.Join(c.Dir(), lockFileName))
}
