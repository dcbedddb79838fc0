package flutter

import (
	"context"
	"sync"

	"github.com/Zombie9904/flutter/appcontext"
	"github.com/Zombie9904/flutter/botdetector"
	"github.com/Zombie9904/flutter/cache"
	"github.com/Zombie9904/flutter/clock"
	"github.com/Zombie9904/flutter/config"
	"github.com/Zombie9904/flutter/crash"
	"github.com/Zombie9904/flutter/device"
	"github.com/Zombie9904/flutter/fsys"
	"github.com/Zombie9904/flutter/logging"
	"github.com/Zombie9904/flutter/osutils"
	"github.com/Zombie9904/flutter/persist"
	"github.com/Zombie9904/flutter/platform"
	"github.com/Zombie9904/flutter/process"
	"github.com/Zombie9904/flutter/sdk"
	"github.com/Zombie9904/flutter/terminal"
	"github.com/Zombie9904/flutter/version"
)

var (
	rootOnce sync.Once
	rootCtx  *appcontext.AppContext
)

// Root returns the process-wide root registry. It is created on first use
// and carries a lazy fallback generator for every core dependency, so any
// accessor works on a bare context.
func Root() *appcontext.AppContext {
	rootOnce.Do(func() { rootCtx = newRoot() })
	return rootCtx
}

// ResetGlobalsForTesting discards the root registry and its memoized
// values. Not safe to call concurrently with accessor use.
func ResetGlobalsForTesting() {
	rootOnce = sync.Once{}
	rootCtx = nil
}

func newRoot() *appcontext.AppContext {
	return appcontext.New("root", appcontext.WithFallbacks(map[appcontext.Key]appcontext.Generator{
		KeyPlatform: func(ctx context.Context) any { return platform.Local() },
		KeyClock:    func(ctx context.Context) any { return clock.System() },
		KeyStdio:    func(ctx context.Context) any { return terminal.NewStdio() },
		KeyTerminal: func(ctx context.Context) any { return terminal.New(Stdio(ctx)) },
		KeyFileSystem: func(ctx context.Context) any {
			return fsys.NewErrorHandling(fsys.NewLocal())
		},
		KeyLogger: func(ctx context.Context) any {
			if v, ok := Platform(ctx).LookupEnv("FLUTTER_TOOL_TRACE"); ok && v != "" {
				return logging.NewTrace(Stdio(ctx).Err, Terminal(ctx).SupportsColor())
			}
			return logging.NewStdout(Terminal(ctx), Stdio(ctx))
		},
		KeyProcessManager: func(ctx context.Context) any {
			return process.NewErrorHandling(process.NewLocal())
		},
		KeyProcessUtils: func(ctx context.Context) any {
			return process.NewUtils(ProcessManager(ctx), Logger(ctx))
		},
		KeyOS: func(ctx context.Context) any {
			return osutils.New(Platform(ctx), ProcessUtils(ctx))
		},
		KeyBotDetector: func(ctx context.Context) any {
			return botdetector.New(Platform(ctx))
		},
		KeyShutdownHooks: func(ctx context.Context) any {
			return process.NewShutdownHooks()
		},
		KeyCache: func(ctx context.Context) any {
			return cache.New(cache.Options{
				FS:       FS(ctx),
				Logger:   Logger(ctx),
				Platform: Platform(ctx),
			})
		},
		KeyConfig: func(ctx context.Context) any {
			return config.New(config.Options{
				FS:       FS(ctx),
				Logger:   Logger(ctx),
				Platform: Platform(ctx),
			})
		},
		KeyPersistentToolState: func(ctx context.Context) any {
			return persist.New(FS(ctx), Logger(ctx), Cache(ctx).Dir())
		},
		KeyFlutterVersion: func(ctx context.Context) any {
			return version.New(ProcessUtils(ctx), Platform(ctx), Cache(ctx).Root())
		},
		KeyCrashReporter: func(ctx context.Context) any {
			cfg := Config(ctx)
			return crash.NewReporter(crash.Options{
				Logger:   Logger(ctx),
				Detector: BotDetector(ctx),
				Enabled: func() bool {
					// Reporting is on unless the user turned it off.
					v, _, ok := cfg.Lookup("enable-crash-reporting")
					return !ok || v == "true"
				},
				OSName: OS(ctx).HostPlatformName(),
			})
		},
	}))
}

// ensure returns ctx with the root registry attached when no registry is
// present yet, so accessors work on context.Background().
func ensure(ctx context.Context) context.Context {
	if appcontext.From(ctx) != nil {
		return ctx
	}
	return appcontext.With(ctx, Root())
}

// RunInScope runs body under a child scope of whatever registry ctx
// carries (the root registry when none is attached). Overrides and
// fallbacks in scope shadow outer values for the duration of body only.
func RunInScope(ctx context.Context, scope appcontext.Scope, body func(ctx context.Context) error) error {
	return appcontext.Run(ensure(ctx), scope, body)
}

// FS returns the ambient filesystem.
func FS(ctx context.Context) fsys.FileSystem {
	return appcontext.MustValue[fsys.FileSystem](ensure(ctx), KeyFileSystem)
}

// Logger returns the ambient logger.
func Logger(ctx context.Context) logging.Logger {
	return appcontext.MustValue[logging.Logger](ensure(ctx), KeyLogger)
}

// Terminal returns the ambient terminal.
func Terminal(ctx context.Context) terminal.Terminal {
	return appcontext.MustValue[terminal.Terminal](ensure(ctx), KeyTerminal)
}

// Stdio returns the ambient standard streams.
func Stdio(ctx context.Context) *terminal.Stdio {
	return appcontext.MustValue[*terminal.Stdio](ensure(ctx), KeyStdio)
}

// Platform returns the ambient host platform.
func Platform(ctx context.Context) platform.Platform {
	return appcontext.MustValue[platform.Platform](ensure(ctx), KeyPlatform)
}

// ProcessManager returns the ambient process manager.
func ProcessManager(ctx context.Context) process.ProcessManager {
	return appcontext.MustValue[process.ProcessManager](ensure(ctx), KeyProcessManager)
}

// ProcessUtils returns the ambient process helpers.
func ProcessUtils(ctx context.Context) *process.Utils {
	return appcontext.MustValue[*process.Utils](ensure(ctx), KeyProcessUtils)
}

// OS returns the ambient operating system helpers.
func OS(ctx context.Context) *osutils.OSUtils {
	return appcontext.MustValue[*osutils.OSUtils](ensure(ctx), KeyOS)
}

// Clock returns the ambient clock.
func Clock(ctx context.Context) clock.Clock {
	return appcontext.MustValue[clock.Clock](ensure(ctx), KeyClock)
}

// BotDetector returns the ambient CI/bot detector.
func BotDetector(ctx context.Context) botdetector.BotDetector {
	return appcontext.MustValue[botdetector.BotDetector](ensure(ctx), KeyBotDetector)
}

// Cache returns the ambient artifact cache.
func Cache(ctx context.Context) *cache.Cache {
	return appcontext.MustValue[*cache.Cache](ensure(ctx), KeyCache)
}

// Config returns the ambient user settings.
func Config(ctx context.Context) *config.Config {
	return appcontext.MustValue[*config.Config](ensure(ctx), KeyConfig)
}

// PersistentToolState returns the ambient cross-invocation tool state.
func PersistentToolState(ctx context.Context) *persist.ToolState {
	return appcontext.MustValue[*persist.ToolState](ensure(ctx), KeyPersistentToolState)
}

// FlutterVersion returns the ambient framework version information.
func FlutterVersion(ctx context.Context) *version.FlutterVersion {
	return appcontext.MustValue[*version.FlutterVersion](ensure(ctx), KeyFlutterVersion)
}

// CrashReporter returns the ambient crash reporter.
func CrashReporter(ctx context.Context) *crash.Reporter {
	return appcontext.MustValue[*crash.Reporter](ensure(ctx), KeyCrashReporter)
}

// ShutdownHooks returns the ambient shutdown hook list.
func ShutdownHooks(ctx context.Context) *process.ShutdownHooks {
	return appcontext.MustValue[*process.ShutdownHooks](ensure(ctx), KeyShutdownHooks)
}

// Artifacts returns the ambient artifact resolver, or nil when no scope
// provides one.
func Artifacts(ctx context.Context) cache.Artifacts {
	v, ok := appcontext.Value[cache.Artifacts](ensure(ctx), KeyArtifacts)
	if !ok {
		return nil
	}
	return v
}

// DeviceManager returns the ambient device manager, or nil when no scope
// provides one.
func DeviceManager(ctx context.Context) device.Manager {
	v, ok := appcontext.Value[device.Manager](ensure(ctx), KeyDeviceManager)
	if !ok {
		return nil
	}
	return v
}

// AndroidSDK returns the ambient Android SDK, or nil when no scope
// provides one.
func AndroidSDK(ctx context.Context) *sdk.AndroidSDK {
	v, ok := appcontext.Value[*sdk.AndroidSDK](ensure(ctx), KeyAndroidSDK)
	if !ok {
		return nil
	}
	return v
}

// Xcode returns the ambient Xcode probe, or nil when no scope provides one.
func Xcode(ctx context.Context) *sdk.Xcode {
	v, ok := appcontext.Value[*sdk.Xcode](ensure(ctx), KeyXcode)
	if !ok {
		return nil
	}
	return v
}

// CocoaPods returns the ambient CocoaPods probe, or nil when no scope
// provides one.
func CocoaPods(ctx context.Context) *sdk.CocoaPods {
	v, ok := appcontext.Value[*sdk.CocoaPods](ensure(ctx), KeyCocoaPods)
	if !ok {
		return nil
	}
	return v
}

// Gradle returns the ambient Gradle locator, or nil when no scope
// provides one.
func Gradle(ctx context.Context) *sdk.Gradle {
	v, ok := appcontext.Value[*sdk.Gradle](ensure(ctx), KeyGradle)
	if !ok {
		return nil
	}
	return v
}

// FlutterGit returns the upstream repository URL, honoring the
// FLUTTER_GIT_URL environment variable.
func FlutterGit(ctx context.Context) string {
	return version.GitURL(Platform(ctx))
}
