package flutter

import "github.com/Zombie9904/flutter/appcontext"

// The closed set of registry keys the tool reads. Every accessor in this
// package resolves exactly one of these.
const (
	KeyFileSystem          appcontext.Key = "fileSystem"
	KeyLogger              appcontext.Key = "logger"
	KeyTerminal            appcontext.Key = "terminal"
	KeyStdio               appcontext.Key = "stdio"
	KeyPlatform            appcontext.Key = "platform"
	KeyProcessManager      appcontext.Key = "processManager"
	KeyProcessUtils        appcontext.Key = "processUtils"
	KeyOS                  appcontext.Key = "osUtils"
	KeyClock               appcontext.Key = "clock"
	KeyBotDetector         appcontext.Key = "botDetector"
	KeyCache               appcontext.Key = "cache"
	KeyConfig              appcontext.Key = "config"
	KeyPersistentToolState appcontext.Key = "persistentToolState"
	KeyFlutterVersion      appcontext.Key = "flutterVersion"
	KeyCrashReporter       appcontext.Key = "crashReporter"
	KeyShutdownHooks       appcontext.Key = "shutdownHooks"

	// Optional dependencies. These have no root fallback; accessors return
	// nil until a scope provides them.
	KeyArtifacts     appcontext.Key = "artifacts"
	KeyDeviceManager appcontext.Key = "deviceManager"
	KeyAndroidSDK    appcontext.Key = "androidSdk"
	KeyXcode         appcontext.Key = "xcode"
	KeyCocoaPods     appcontext.Key = "cocoaPods"
	KeyGradle        appcontext.Key = "gradle"
)
