package version

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/Zombie9904/flutter/platform"
	"github.com/Zombie9904/flutter/process"
)

// DefaultGitURL is the upstream framework repository.
const DefaultGitURL = "https://github.com/flutter/flutter.git"

// GitURL returns the upstream repository URL: the FLUTTER_GIT_URL
// environment variable when set and non-empty, else DefaultGitURL.
func GitURL(p platform.Platform) string {
	if v, ok := p.LookupEnv("FLUTTER_GIT_URL"); ok && v != "" {
		return v
	}
	return DefaultGitURL
}

// unknownVersion is reported when the SDK checkout has no version tags.
const unknownVersion = "0.0.0-unknown"

// FlutterVersion describes the SDK checkout the tool runs from. Everything
// is derived from git in the SDK root and cached after the first question:
// answering again never re-runs git within one process.
type FlutterVersion struct {
	utils    *process.Utils
	platform platform.Platform
	root     string

	mu     sync.Mutex
	cached map[string]string
}

// New creates a FlutterVersion for the SDK checkout at root.
func New(utils *process.Utils, p platform.Platform, root string) *FlutterVersion {
	return &FlutterVersion{
		utils:    utils,
		platform: p,
		root:     root,
		cached:   make(map[string]string),
	}
}

// memoized runs compute once per field name and caches its answer.
func (v *FlutterVersion) memoized(field string, compute func() string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if val, ok := v.cached[field]; ok {
		return val
	}
	val := compute()
	v.cached[field] = val
	return val
}

func (v *FlutterVersion) git(ctx context.Context, args ...string) string {
	out, err := v.utils.RunOutput(ctx, v.root, append(process.Command{"git"}, args...))
	if err != nil {
		return ""
	}
	return out
}

// Channel returns the release channel of the checkout. Branches that are
// not official channels are reported in brackets, detached heads as
// "[unknown]".
func (v *FlutterVersion) Channel(ctx context.Context) string {
	return v.memoized("channel", func() string {
		branch := v.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
		if branch == "" || branch == "HEAD" {
			return "[unknown]"
		}
		if ch, ok := ParseChannel(branch); ok {
			return string(ch)
		}
		return "[" + branch + "]"
	})
}

// FrameworkRevision returns the full commit hash of the checkout, or ""
// when the root is not a git repository.
func (v *FlutterVersion) FrameworkRevision(ctx context.Context) string {
	return v.memoized("revision", func() string {
		return v.git(ctx, "rev-parse", "HEAD")
	})
}

// FrameworkRevisionShort returns the abbreviated commit hash.
func (v *FlutterVersion) FrameworkRevisionShort(ctx context.Context) string {
	return v.memoized("revision-short", func() string {
		return v.git(ctx, "rev-parse", "--short", "HEAD")
	})
}

// FrameworkAge returns how long ago the checkout's HEAD was committed, in
// git's human phrasing ("3 weeks ago").
func (v *FlutterVersion) FrameworkAge(ctx context.Context) string {
	return v.memoized("age", func() string {
		return v.git(ctx, "log", "-n", "1", "--pretty=format:%ar")
	})
}

// FrameworkVersion returns the version tag describing HEAD, or
// "0.0.0-unknown" when no version tag reaches it.
func (v *FlutterVersion) FrameworkVersion(ctx context.Context) string {
	return v.memoized("version", func() string {
		described := v.git(ctx, "describe", "--match", "*.*.*", "--tags", "HEAD")
		if tag, ok := ParseGitTagVersion(described); ok {
			return tag.String()
		}
		return unknownVersion
	})
}

// RepositoryURL returns the checkout's origin URL, or "" when there is none.
func (v *FlutterVersion) RepositoryURL(ctx context.Context) string {
	return v.memoized("repository", func() string {
		return v.git(ctx, "remote", "get-url", "origin")
	})
}

// Summary renders the one-line banner shown by `flutter --version`.
func (v *FlutterVersion) Summary(ctx context.Context) string {
	return fmt.Sprintf("Flutter %s • channel %s • %s",
		v.FrameworkVersion(ctx), v.Channel(ctx), GitURL(v.platform))
}

// GitTagVersion is a parsed framework version tag.
type GitTagVersion struct {
	X, Y, Z int

	// DevX, DevY are the pre-release counters of beta tags
	// ("3.25.0-0.1.pre"); both are -1 on stable tags.
	DevX, DevY int

	// Commits is the number of commits since the tag, from git describe's
	// "-<n>-g<hash>" suffix. Zero when HEAD is the tagged commit.
	Commits int
}

// IsStable reports whether the tag is a stable release.
func (t GitTagVersion) IsStable() bool { return t.DevX < 0 }

func (t GitTagVersion) String() string {
	base := fmt.Sprintf("%d.%d.%d", t.X, t.Y, t.Z)
	if !t.IsStable() {
		base += fmt.Sprintf("-%d.%d.pre", t.DevX, t.DevY)
	}
	if t.Commits > 0 {
		base += fmt.Sprintf(".%d", t.Commits)
	}
	return base
}

var tagPattern = regexp.MustCompile(
	`^(\d+)\.(\d+)\.(\d+)(?:-(\d+)\.(\d+)\.pre)?(?:-(\d+)-g[0-9a-f]+)?$`)

// ParseGitTagVersion parses a `git describe` result like "3.24.0",
// "3.25.0-0.1.pre" or "3.24.0-12-gabc123".
func ParseGitTagVersion(described string) (GitTagVersion, bool) {
	m := tagPattern.FindStringSubmatch(described)
	if m == nil {
		return GitTagVersion{}, false
	}
	tag := GitTagVersion{DevX: -1, DevY: -1}
	tag.X = atoi(m[1])
	tag.Y = atoi(m[2])
	tag.Z = atoi(m[3])
	if m[4] != "" {
		tag.DevX = atoi(m[4])
		tag.DevY = atoi(m[5])
	}
	if m[6] != "" {
		tag.Commits = atoi(m[6])
	}
	return tag, true
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
