package sdk

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Zombie9904/flutter/fsys"
	"github.com/Zombie9904/flutter/logging"
	"github.com/Zombie9904/flutter/platform"
	"github.com/Zombie9904/flutter/process"
)

func TestLocateAndroidSDK_EnvWins(t *testing.T) {
	fs := fsys.NewMemory()
	if err := fs.MkdirAll("/opt/android", 0o755); err != nil {
		t.Fatal(err)
	}
	p := platform.NewFake()
	p.Env["ANDROID_HOME"] = "/opt/android"

	sdk := LocateAndroidSDK(fs, p)
	if sdk == nil {
		t.Fatal("expected SDK to be located")
	}
	if sdk.Dir != "/opt/android" {
		t.Errorf("Dir = %q, want /opt/android", sdk.Dir)
	}
}

func TestLocateAndroidSDK_HomeFallback(t *testing.T) {
	fs := fsys.NewMemory()
	dir := filepath.Join("/home/dev", "Android", "Sdk")
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	p := platform.NewFake()
	p.Env["HOME"] = "/home/dev"

	sdk := LocateAndroidSDK(fs, p)
	if sdk == nil {
		t.Fatal("expected SDK to be located via HOME")
	}
	if sdk.Dir != dir {
		t.Errorf("Dir = %q, want %q", sdk.Dir, dir)
	}
}

func TestLocateAndroidSDK_Missing(t *testing.T) {
	sdk := LocateAndroidSDK(fsys.NewMemory(), platform.NewFake())
	if sdk != nil {
		t.Errorf("expected nil, got %+v", sdk)
	}
}

func TestAndroidSDK_LatestBuildTools(t *testing.T) {
	fs := fsys.NewMemory()
	for _, v := range []string{"33.0.1", "34.0.0", "30.0.3"} {
		if err := fs.MkdirAll(filepath.Join("/sdk/build-tools", v), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	sdk := &AndroidSDK{Dir: "/sdk", fs: fs, platform: platform.NewFake()}
	if got := sdk.LatestBuildTools(); got != "34.0.0" {
		t.Errorf("LatestBuildTools() = %q, want 34.0.0", got)
	}
}

func TestAndroidSDK_ADBPath(t *testing.T) {
	p := platform.NewFake()
	p.OS = "windows"
	sdk := &AndroidSDK{Dir: `C:\sdk`, fs: fsys.NewMemory(), platform: p}
	want := filepath.Join(`C:\sdk`, "platform-tools", "adb.exe")
	if got := sdk.ADBPath(); got != want {
		t.Errorf("ADBPath() = %q, want %q", got, want)
	}
}

func TestLocateXcode_NonMac(t *testing.T) {
	utils := process.NewUtils(process.NewFake(), logging.NewBuffer())
	if x := LocateXcode(utils, platform.NewFake()); x != nil {
		t.Errorf("expected nil Xcode on linux, got %+v", x)
	}
}

func TestXcode_SelectPathAndVersion(t *testing.T) {
	fake := process.NewFake()
	fake.Expect(process.FakeCommand{
		Cmd:    "xcode-select --print-path",
		Stdout: "/Applications/Xcode.app/Contents/Developer\n",
	})
	fake.Expect(process.FakeCommand{
		Cmd:    "xcodebuild -version",
		Stdout: "Xcode 15.2\nBuild version 15C500b\n",
	})
	utils := process.NewUtils(fake, logging.NewBuffer())
	p := platform.NewFake()
	p.OS = "darwin"

	x := LocateXcode(utils, p)
	if x == nil {
		t.Fatal("expected Xcode probe")
	}
	ctx := context.Background()
	if !x.IsInstalled(ctx) {
		t.Error("expected IsInstalled to be true")
	}
	if got := x.Version(ctx); got != "Xcode 15.2" {
		t.Errorf("Version() = %q, want Xcode 15.2", got)
	}
}

func TestLocateCocoaPods_NotOnPath(t *testing.T) {
	fake := process.NewFake()
	fake.CannotRun = append(fake.CannotRun, "pod")
	utils := process.NewUtils(fake, logging.NewBuffer())
	if c := LocateCocoaPods(utils); c != nil {
		t.Errorf("expected nil, got %+v", c)
	}
}

func TestCocoaPods_Status(t *testing.T) {
	fake := process.NewFake()
	fake.Expect(process.FakeCommand{Cmd: "pod --version", Stdout: "1.15.2\n"})
	utils := process.NewUtils(fake, logging.NewBuffer())

	c := LocateCocoaPods(utils)
	if c == nil {
		t.Fatal("expected CocoaPods probe")
	}
	if got := c.Status(context.Background()); got != CocoaPodsInstalled {
		t.Errorf("Status() = %v, want installed", got)
	}
}

func TestCocoaPods_Broken(t *testing.T) {
	fake := process.NewFake()
	fake.Expect(process.FakeCommand{Cmd: "pod --version", ExitCode: 1, Stderr: "LoadError"})
	utils := process.NewUtils(fake, logging.NewBuffer())

	c := &CocoaPods{utils: utils}
	if got := c.Status(context.Background()); got != CocoaPodsBroken {
		t.Errorf("Status() = %v, want broken", got)
	}
}

func TestGradle_WrapperPath(t *testing.T) {
	fs := fsys.NewMemory()
	wrapper := filepath.Join("/proj", "android", "gradlew")
	if err := fsys.WriteFile(fs, wrapper, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	g := NewGradle(fs, platform.NewFake())
	if got := g.WrapperPath("/proj"); got != wrapper {
		t.Errorf("WrapperPath() = %q, want %q", got, wrapper)
	}
	if got := g.WrapperPath("/other"); got != "" {
		t.Errorf("WrapperPath() = %q, want empty", got)
	}
}
