// Package cache manages the SDK artifact cache under <root>/bin/cache and
// resolves artifact paths for the selected build configuration.
//
// The cache answers where things live (artifact dirs, the bundled Dart SDK),
// what is present (version stamps, engine revision), and serializes cache
// mutation across tool invocations with an advisory lock file.
package cache
