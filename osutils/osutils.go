// Package osutils collects small operating-system chores that need both the
// platform and process capabilities: locating executables, naming the host.
package osutils

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Zombie9904/flutter/platform"
	"github.com/Zombie9904/flutter/process"
)

// OSUtils answers host questions through the injected capabilities, never
// through the os package directly, so everything here is fakeable.
type OSUtils struct {
	platform platform.Platform
	utils    *process.Utils
}

// New creates OSUtils over the given platform and process utilities.
func New(p platform.Platform, u *process.Utils) *OSUtils {
	return &OSUtils{platform: p, utils: u}
}

// Which returns the path of the first matching executable, or "" when none
// is found.
func (o *OSUtils) Which(ctx context.Context, executable string) string {
	all := o.WhichAll(ctx, executable)
	if len(all) == 0 {
		return ""
	}
	return all[0]
}

// WhichAll returns every PATH match for executable.
func (o *OSUtils) WhichAll(ctx context.Context, executable string) []string {
	cmd := process.Command{"which", "-a", executable}
	if o.platform.IsWindows() {
		cmd = process.Command{"where", executable}
	}
	result, err := o.utils.Manager().Run(ctx, "", cmd)
	if err != nil || result.ExitCode != 0 {
		return nil
	}
	var paths []string
	for _, line := range strings.Split(result.Stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}

var titleCaser = cases.Title(language.English)

// HostPlatformName returns the host OS name the way it is written to users:
// "macOS", "Linux", "Windows".
func (o *OSUtils) HostPlatformName() string {
	os := o.platform.OperatingSystem()
	if os == "darwin" {
		return "macOS"
	}
	return titleCaser.String(os)
}

// HostPlatformLabel returns the OS-arch pair used in artifact names, e.g.
// "linux-x64" or "darwin-arm64".
func (o *OSUtils) HostPlatformLabel() string {
	arch := o.platform.Architecture()
	if arch == "amd64" {
		arch = "x64"
	}
	return o.platform.OperatingSystem() + "-" + arch
}
