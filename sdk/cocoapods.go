package sdk

import (
	"context"
	"strings"

	"github.com/Zombie9904/flutter/process"
)

// CocoaPodsStatus classifies the local CocoaPods installation.
type CocoaPodsStatus int

const (
	// CocoaPodsNotInstalled means the pod executable is missing.
	CocoaPodsNotInstalled CocoaPodsStatus = iota
	// CocoaPodsBroken means pod exists but fails to report a version.
	CocoaPodsBroken
	// CocoaPodsInstalled means pod runs and reports a version.
	CocoaPodsInstalled
)

func (s CocoaPodsStatus) String() string {
	switch s {
	case CocoaPodsNotInstalled:
		return "not installed"
	case CocoaPodsBroken:
		return "broken"
	case CocoaPodsInstalled:
		return "installed"
	default:
		return "unknown"
	}
}

// CocoaPods probes the local CocoaPods installation.
type CocoaPods struct {
	utils *process.Utils
}

// LocateCocoaPods returns a CocoaPods probe, or nil when the pod executable
// is not on PATH.
func LocateCocoaPods(utils *process.Utils) *CocoaPods {
	if !utils.Manager().CanRun("pod") {
		return nil
	}
	return &CocoaPods{utils: utils}
}

// Version returns the installed CocoaPods version, e.g. "1.15.2".
func (c *CocoaPods) Version(ctx context.Context) (string, error) {
	out, err := c.utils.RunOutput(ctx, "", process.Command{"pod", "--version"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Status classifies the installation by probing pod --version.
func (c *CocoaPods) Status(ctx context.Context) CocoaPodsStatus {
	version, err := c.Version(ctx)
	if err != nil || version == "" {
		return CocoaPodsBroken
	}
	return CocoaPodsInstalled
}
