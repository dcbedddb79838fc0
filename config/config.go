package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Zombie9904/flutter/fsys"
	"github.com/Zombie9904/flutter/logging"
	"github.com/Zombie9904/flutter/platform"
)

// EnvPrefix is prepended to upper-cased keys for environment overrides:
// key "enable-web" maps to FLUTTER_ENABLE_WEB.
const EnvPrefix = "FLUTTER_"

// Config is the persistent tool configuration. Values resolve in order
// default < settings file < environment; only file values are written back
// by Save.
type Config struct {
	fs       fsys.FileSystem
	logger   logging.Logger
	platform platform.Platform

	path     string
	defaults map[string]string
	values   map[string]string
}

// Options configures New.
type Options struct {
	FS       fsys.FileSystem
	Logger   logging.Logger
	Platform platform.Platform

	// Path locates the settings file. Empty means the per-user default
	// under the platform's config directory.
	Path string

	// Defaults provides built-in values for keys absent everywhere else.
	Defaults map[string]string
}

// New loads the tool configuration. A missing settings file is normal; a
// corrupt one is warned about and treated as empty rather than killing the
// tool.
func New(opts Options) *Config {
	c := &Config{
		fs:       opts.FS,
		logger:   opts.Logger,
		platform: opts.Platform,
		path:     opts.Path,
		defaults: opts.Defaults,
		values:   make(map[string]string),
	}
	if c.path == "" {
		c.path = defaultPath(opts.Platform)
	}
	c.load()
	return c
}

// defaultPath places settings under the conventional per-user config dir.
func defaultPath(p platform.Platform) string {
	if p.IsWindows() {
		if appData, ok := p.LookupEnv("APPDATA"); ok && appData != "" {
			return filepath.Join(appData, "flutter", "settings.yaml")
		}
	}
	if xdg, ok := p.LookupEnv("XDG_CONFIG_HOME"); ok && xdg != "" {
		return filepath.Join(xdg, "flutter", "settings.yaml")
	}
	home, _ := p.LookupEnv("HOME")
	return filepath.Join(home, ".config", "flutter", "settings.yaml")
}

func (c *Config) load() {
	data, err := fsys.ReadFile(c.fs, c.path)
	if err != nil {
		return
	}
	if err := yaml.Unmarshal(data, &c.values); err != nil {
		c.logger.Warningf("Ignoring malformed settings file at %s: %v", c.path, err)
		c.values = make(map[string]string)
	}
	if c.values == nil {
		c.values = make(map[string]string)
	}
}

// Path returns the settings file location.
func (c *Config) Path() string { return c.path }

// envKey maps "enable-web" to "FLUTTER_ENABLE_WEB".
func envKey(key string) string {
	upper := strings.ToUpper(key)
	upper = strings.NewReplacer("-", "_", ".", "_").Replace(upper)
	return EnvPrefix + upper
}

// Lookup resolves key and reports where the value came from.
func (c *Config) Lookup(key string) (string, Source, bool) {
	if v, ok := c.platform.LookupEnv(envKey(key)); ok && v != "" {
		return v, SourceEnv, true
	}
	if v, ok := c.values[key]; ok {
		return v, SourceFile, true
	}
	if v, ok := c.defaults[key]; ok {
		return v, SourceDefault, true
	}
	return "", SourceDefault, false
}

// Get resolves key, returning "" when it is set nowhere.
func (c *Config) Get(key string) string {
	v, _, _ := c.Lookup(key)
	return v
}

// GetBool resolves key as a boolean; unset and unparseable values are false.
func (c *Config) GetBool(key string) bool {
	v := strings.ToLower(c.Get(key))
	return v == "true" || v == "1" || v == "yes"
}

// Set stores a value in the settings file layer. Call Save to persist.
func (c *Config) Set(key, value string) {
	c.values[key] = value
}

// Remove deletes a key from the settings file layer.
func (c *Config) Remove(key string) {
	delete(c.values, key)
}

// Keys returns every key with a value in any layer, sorted.
func (c *Config) Keys() []string {
	seen := make(map[string]bool)
	for k := range c.defaults {
		seen[k] = true
	}
	for k := range c.values {
		seen[k] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save writes the file layer back atomically.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c.values)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := fsys.WriteFileAtomic(c.fs, c.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings to %s: %w", c.path, err)
	}
	return nil
}
