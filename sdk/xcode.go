package sdk

import (
	"context"
	"strings"

	"github.com/Zombie9904/flutter/platform"
	"github.com/Zombie9904/flutter/process"
)

// Xcode probes the local Xcode installation. All probes are no-ops on
// non-macOS hosts.
type Xcode struct {
	utils    *process.Utils
	platform platform.Platform
}

// LocateXcode returns an Xcode probe, or nil when the host is not macOS or
// xcode-select is not runnable.
func LocateXcode(utils *process.Utils, p platform.Platform) *Xcode {
	if !p.IsMacOS() {
		return nil
	}
	if !utils.Manager().CanRun("xcode-select") {
		return nil
	}
	return &Xcode{utils: utils, platform: p}
}

// SelectPath returns the developer directory reported by xcode-select, or
// "" when no Xcode is selected.
func (x *Xcode) SelectPath(ctx context.Context) string {
	out, err := x.utils.RunOutput(ctx, "", process.Command{"xcode-select", "--print-path"})
	if err != nil {
		return ""
	}
	return out
}

// IsInstalled reports whether a full Xcode (not just the command line
// tools) is selected.
func (x *Xcode) IsInstalled(ctx context.Context) bool {
	path := x.SelectPath(ctx)
	return path != "" && strings.Contains(path, "Xcode.app")
}

// Version returns the xcodebuild version line, e.g. "Xcode 15.2", or ""
// when xcodebuild cannot run.
func (x *Xcode) Version(ctx context.Context) string {
	out, err := x.utils.RunOutput(ctx, "", process.Command{"xcodebuild", "-version"})
	if err != nil {
		return ""
	}
	if line, _, found := strings.Cut(out, "\n"); found {
		return strings.TrimSpace(line)
	}
	return out
}
