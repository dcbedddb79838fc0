package sdk

import (
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/Zombie9904/flutter/fsys"
	"github.com/Zombie9904/flutter/platform"
)

// AndroidSDK is a located Android SDK installation.
type AndroidSDK struct {
	// Dir is the SDK root.
	Dir string

	fs       fsys.FileSystem
	platform platform.Platform
}

// LocateAndroidSDK finds an Android SDK via ANDROID_HOME, ANDROID_SDK_ROOT,
// or the platform's conventional install location. Returns nil when no
// candidate directory exists; an Android SDK is not required to use the
// tool.
func LocateAndroidSDK(fs fsys.FileSystem, p platform.Platform) *AndroidSDK {
	var candidates []string
	if v, ok := p.LookupEnv("ANDROID_HOME"); ok && v != "" {
		candidates = append(candidates, v)
	}
	if v, ok := p.LookupEnv("ANDROID_SDK_ROOT"); ok && v != "" {
		candidates = append(candidates, v)
	}
	if home, ok := p.LookupEnv("HOME"); ok && home != "" {
		switch {
		case p.IsMacOS():
			candidates = append(candidates, filepath.Join(home, "Library", "Android", "sdk"))
		case p.IsLinux():
			candidates = append(candidates, filepath.Join(home, "Android", "Sdk"))
		}
	}
	if p.IsWindows() {
		if localAppData, ok := p.LookupEnv("LOCALAPPDATA"); ok && localAppData != "" {
			candidates = append(candidates, filepath.Join(localAppData, "Android", "Sdk"))
		}
	}

	for _, dir := range candidates {
		if fsys.IsDir(fs, dir) {
			return &AndroidSDK{Dir: dir, fs: fs, platform: p}
		}
	}
	return nil
}

// ADBPath returns the adb location within the SDK.
func (s *AndroidSDK) ADBPath() string {
	name := "adb"
	if s.platform.IsWindows() {
		name = "adb.exe"
	}
	return filepath.Join(s.Dir, "platform-tools", name)
}

// LatestBuildTools returns the newest installed build-tools version, or ""
// when none is installed.
func (s *AndroidSDK) LatestBuildTools() string {
	entries, err := afero.ReadDir(s.fs, filepath.Join(s.Dir, "build-tools"))
	if err != nil {
		return ""
	}
	var versions []string
	for _, entry := range entries {
		if entry.IsDir() {
			versions = append(versions, entry.Name())
		}
	}
	if len(versions) == 0 {
		return ""
	}
	sort.Strings(versions)
	return versions[len(versions)-1]
}
