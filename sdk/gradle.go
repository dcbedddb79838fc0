package sdk

import (
	"path/filepath"

	"github.com/Zombie9904/flutter/fsys"
	"github.com/Zombie9904/flutter/platform"
)

// Gradle locates the Gradle wrapper inside a project checkout. Flutter
// projects carry the wrapper under android/.
type Gradle struct {
	fs       fsys.FileSystem
	platform platform.Platform
}

// NewGradle returns a Gradle wrapper locator.
func NewGradle(fs fsys.FileSystem, p platform.Platform) *Gradle {
	return &Gradle{fs: fs, platform: p}
}

// WrapperPath returns the gradlew script for projectDir, or "" when the
// project has no wrapper.
func (g *Gradle) WrapperPath(projectDir string) string {
	script := "gradlew"
	if g.platform.IsWindows() {
		script = "gradlew.bat"
	}
	candidates := []string{
		filepath.Join(projectDir, "android", script),
		filepath.Join(projectDir, script),
	}
	for _, path := range candidates {
		if fsys.Exists(g.fs, path) {
			return path
		}
	}
	return ""
}
