package config

// Source indicates where a configuration value came from.
type Source string

// Configuration source constants.
const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault Source = "default"

	// SourceFile indicates the value came from the settings file.
	SourceFile Source = "file"

	// SourceEnv indicates the value came from a FLUTTER_-prefixed
	// environment variable.
	SourceEnv Source = "env"
)
