// Package platform exposes host operating system information and the process
// environment behind an interface, so tests can run against a fake host.
package platform

import (
	"os"
	"runtime"
	"strings"
)

// Platform describes the host the tool runs on.
type Platform interface {
	// OperatingSystem returns the GOOS-style name: "linux", "darwin", "windows".
	OperatingSystem() string

	// Architecture returns the GOARCH-style name: "amd64", "arm64".
	Architecture() string

	// Environment returns the process environment as a map. The returned map
	// is owned by the caller and safe to mutate.
	Environment() map[string]string

	// LookupEnv returns the value of an environment variable and whether it
	// is set at all.
	LookupEnv(name string) (string, bool)

	IsWindows() bool
	IsMacOS() bool
	IsLinux() bool
}

// local reads the real host. Environment is snapshotted per call so callers
// see changes made via os.Setenv (tests rely on t.Setenv).
type local struct{}

// Local returns the real host platform.
func Local() Platform { return local{} }

func (local) OperatingSystem() string { return runtime.GOOS }
func (local) Architecture() string    { return runtime.GOARCH }

func (local) Environment() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

func (local) LookupEnv(name string) (string, bool) {
	return os.LookupEnv(name)
}

func (local) IsWindows() bool { return runtime.GOOS == "windows" }
func (local) IsMacOS() bool   { return runtime.GOOS == "darwin" }
func (local) IsLinux() bool   { return runtime.GOOS == "linux" }

// Fake is a settable Platform for tests.
type Fake struct {
	OS   string
	Arch string
	Env  map[string]string
}

// NewFake returns a fake linux/amd64 host with an empty environment.
func NewFake() *Fake {
	return &Fake{OS: "linux", Arch: "amd64", Env: make(map[string]string)}
}

func (f *Fake) OperatingSystem() string { return f.OS }
func (f *Fake) Architecture() string    { return f.Arch }

func (f *Fake) Environment() map[string]string {
	env := make(map[string]string, len(f.Env))
	for k, v := range f.Env {
		env[k] = v
	}
	return env
}

func (f *Fake) LookupEnv(name string) (string, bool) {
	v, ok := f.Env[name]
	return v, ok
}

func (f *Fake) IsWindows() bool { return f.OS == "windows" }
func (f *Fake) IsMacOS() bool   { return f.OS == "darwin" }
func (f *Fake) IsLinux() bool   { return f.OS == "linux" }
