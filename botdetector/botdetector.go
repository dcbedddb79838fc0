// Package botdetector decides whether the tool is driven by automation
// rather than a person, which gates crash reporting and first-run output.
package botdetector

import (
	"github.com/Zombie9904/flutter/platform"
)

// BotDetector reports whether the current invocation runs on a bot.
type BotDetector interface {
	IsRunningOnBot() bool
}

// ciMarkers are environment variables whose presence alone marks CI.
var ciMarkers = []string{
	"TRAVIS",
	"CIRCLECI",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRRUS_CI",
	"APPVEYOR",
	"BUILDKITE",
	"TF_BUILD",
	"JENKINS_URL",
}

type detector struct {
	platform platform.Platform
}

// New creates a detector reading the given platform's environment.
// Detection is deterministic and performs no I/O.
func New(p platform.Platform) BotDetector {
	return &detector{platform: p}
}

func (d *detector) IsRunningOnBot() bool {
	// Explicit opt-outs: humans on machines that look like bots.
	if v, ok := d.platform.LookupEnv("FLUTTER_HOST"); ok && v != "" {
		return false
	}

	if v, _ := d.platform.LookupEnv("BOT"); v == "true" {
		return true
	}
	if v, _ := d.platform.LookupEnv("CI"); v == "true" || v == "1" {
		return true
	}
	if _, ok := d.platform.LookupEnv("CONTINUOUS_INTEGRATION"); ok {
		return true
	}
	if v, _ := d.platform.LookupEnv("CHROME_HEADLESS"); v == "1" {
		return true
	}
	for _, name := range ciMarkers {
		if _, ok := d.platform.LookupEnv(name); ok {
			return true
		}
	}
	return false
}

// Fake is a BotDetector with a fixed answer, for tests.
type Fake struct {
	Bot bool
}

func (f *Fake) IsRunningOnBot() bool { return f.Bot }
