package errors

import (
	"errors"
	"os"
	"strings"
)

// IsToolExit checks if an error is a deliberate tool exit.
func IsToolExit(err error) bool {
	var exit *ToolExitError
	return errors.As(err, &exit)
}

// ExitCode returns the process exit code an error asks for. Deliberate tool
// exits carry their own code; anything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exit *ToolExitError
	if errors.As(err, &exit) && exit.ExitCode != 0 {
		return exit.ExitCode
	}
	return 1
}

// IsNetworkError checks if an error is connectivity-related.
// This includes TLS errors, timeouts, and DNS failures.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	// Network connectivity
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp") {
		return true
	}
	// TLS/certificate errors
	if strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") {
		return true
	}
	// Timeout errors
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}
	return false
}

// IsPermissionError checks if an error is permission-related.
func IsPermissionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, os.ErrPermission) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "permission denied") ||
		strings.Contains(errStr, "operation not permitted") ||
		strings.Contains(errStr, "access is denied")
}

// IsDiskFullError checks if an error indicates the device is out of space.
func IsDiskFullError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "no space left on device") ||
		strings.Contains(errStr, "disk full") ||
		strings.Contains(errStr, "not enough space")
}
