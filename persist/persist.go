// Package persist stores tool state that survives invocations but is not
// user configuration: whether the welcome message was shown, the last
// active version per channel.
package persist

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Zombie9904/flutter/fsys"
	"github.com/Zombie9904/flutter/logging"
)

// stateFileName lives in the cache directory, next to the artifacts.
const stateFileName = ".flutter_tool_state"

// state is the on-disk document.
type state struct {
	RedisplayWelcomeMessage *bool             `yaml:"redisplay-welcome-message,omitempty"`
	LastActiveVersion       map[string]string `yaml:"last-active-version,omitempty"`
}

// ToolState is the persistent tool state, loaded lazily and written back
// explicitly via Save.
type ToolState struct {
	fs     fsys.FileSystem
	logger logging.Logger
	path   string

	state state
}

// New loads tool state from the given cache directory. Missing and corrupt
// files both start empty; state is best-effort by design.
func New(fs fsys.FileSystem, logger logging.Logger, cacheDir string) *ToolState {
	t := &ToolState{
		fs:     fs,
		logger: logger,
		path:   filepath.Join(cacheDir, stateFileName),
	}
	data, err := fsys.ReadFile(fs, t.path)
	if err != nil {
		return t
	}
	if err := yaml.Unmarshal(data, &t.state); err != nil {
		logger.Tracef("ignoring malformed tool state at %s: %v", t.path, err)
		t.state = state{}
	}
	return t
}

// Path returns the state file location.
func (t *ToolState) Path() string { return t.path }

// ShouldRedisplayWelcomeMessage reports whether the first-run welcome should
// be shown again. Defaults to true for a fresh install.
func (t *ToolState) ShouldRedisplayWelcomeMessage() bool {
	if t.state.RedisplayWelcomeMessage == nil {
		return true
	}
	return *t.state.RedisplayWelcomeMessage
}

// SetRedisplayWelcomeMessage records whether to show the welcome again.
func (t *ToolState) SetRedisplayWelcomeMessage(v bool) {
	t.state.RedisplayWelcomeMessage = &v
}

// LastActiveVersion returns the framework version last used on channel, or
// "" when unknown.
func (t *ToolState) LastActiveVersion(channel string) string {
	return t.state.LastActiveVersion[channel]
}

// SetLastActiveVersion records the framework version used on channel.
func (t *ToolState) SetLastActiveVersion(channel, version string) {
	if t.state.LastActiveVersion == nil {
		t.state.LastActiveVersion = make(map[string]string)
	}
	t.state.LastActiveVersion[channel] = version
}

// Save writes the state file atomically.
func (t *ToolState) Save() error {
	data, err := yaml.Marshal(&t.state)
	if err != nil {
		return fmt.Errorf("encode tool state: %w", err)
	}
	if err := fsys.WriteFileAtomic(t.fs, t.path, data, 0o644); err != nil {
		return fmt.Errorf("write tool state to %s: %w", t.path, err)
	}
	return nil
}
