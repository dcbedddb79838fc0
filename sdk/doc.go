// Package sdk locates host development toolchains: the Android SDK, Xcode,
// CocoaPods, and the Gradle wrapper. Locators return nil when the toolchain
// is absent; none of them is required to run the tool.
package sdk
