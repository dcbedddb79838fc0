package cache

import (
	"fmt"
	"path/filepath"
)

// Artifact names something the build needs a path to.
type Artifact string

// Artifacts the tool can ask for.
const (
	ArtifactDartSdk       Artifact = "dart-sdk"
	ArtifactDartBinary    Artifact = "dart"
	ArtifactEngine        Artifact = "engine"
	ArtifactMaterialFonts Artifact = "material-fonts"
	ArtifactGradleWrapper Artifact = "gradle-wrapper"
)

// Artifacts resolves artifact names to paths for the currently selected
// build configuration. There is no process-wide default: which artifacts
// are "current" depends on the command being run, so the capability is
// optional and callers must handle its absence.
type Artifacts interface {
	ArtifactPath(artifact Artifact) (string, error)
}

// cacheArtifacts serves artifact paths out of the local SDK cache.
type cacheArtifacts struct {
	cache *Cache
}

// NewArtifacts creates cache-backed artifact resolution.
func NewArtifacts(c *Cache) Artifacts {
	return &cacheArtifacts{cache: c}
}

func (a *cacheArtifacts) ArtifactPath(artifact Artifact) (string, error) {
	switch artifact {
	case ArtifactDartSdk:
		return a.cache.DartSdkDir(), nil
	case ArtifactDartBinary:
		name := "dart"
		if a.cache.platform.IsWindows() {
			name = "dart.exe"
		}
		return filepath.Join(a.cache.DartSdkDir(), "bin", name), nil
	case ArtifactEngine:
		return a.cache.ArtifactDir("engine"), nil
	case ArtifactMaterialFonts:
		return a.cache.ArtifactDir("material_fonts"), nil
	case ArtifactGradleWrapper:
		return a.cache.ArtifactDir("gradle_wrapper"), nil
	default:
		return "", fmt.Errorf("unknown artifact %q", artifact)
	}
}
