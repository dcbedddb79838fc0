// Package errors provides the tool's error patterns.
//
// Core type:
//   - ToolExitError: a final, user-facing failure with message, optional
//     suggestion, and process exit code. Printed without a stack trace.
//
// Predicates classify errors for reporting decisions:
//   - IsToolExit: deliberate exits (never crash-reported)
//   - IsNetworkError: connectivity, TLS, timeout failures
//   - IsPermissionError: filesystem and process permission failures
//   - IsDiskFullError: out-of-space failures
//
// Example usage:
//
//	if err := cache.Update(ctx); err != nil {
//	    return errors.ToolExitf("failed to update the artifact cache: %w", err)
//	}
//
//	// At the top level
//	if errors.IsToolExit(err) {
//	    logger.Errorf("%s", err)
//	    os.Exit(errors.ExitCode(err))
//	}
package errors
