// Package config stores persistent tool settings.
//
// Values resolve in order: built-in default, settings file, environment
// variable (FLUTTER_ prefix, upper-cased key). Only the file layer is
// written back by Save, atomically. The settings file is YAML, a flat
// string-to-string map.
//
// Example usage:
//
//	cfg := config.New(config.Options{
//	    FS:       fs,
//	    Logger:   logger,
//	    Platform: plat,
//	    Defaults: map[string]string{"crash-reporting": "true"},
//	})
//	if cfg.GetBool("crash-reporting") { ... }
//	cfg.Set("android-sdk", "/opt/android")
//	if err := cfg.Save(); err != nil { ... }
package config
