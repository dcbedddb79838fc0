// Package logging provides the Logger capability: all user-facing output of
// the tool flows through one of its implementations.
//
//   - NewStdout: interactive default; errors and warnings to stderr with
//     color when the terminal supports it, status to stdout, trace dropped
//   - NewVerbose: wraps another logger with elapsed-time prefixes and makes
//     trace visible
//   - NewTrace: leveled slog output for bots and debugging sessions
//   - NewBuffer: captures output per level for tests
package logging
