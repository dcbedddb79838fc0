package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestToolExit(t *testing.T) {
	err := ToolExit("cache is corrupted")

	if !IsToolExit(err) {
		t.Error("IsToolExit() = false for ToolExit error")
	}
	if err.Error() != "cache is corrupted" {
		t.Errorf("Error() = %q", err.Error())
	}
	if got := ExitCode(err); got != 1 {
		t.Errorf("ExitCode() = %d, want 1", got)
	}
}

func TestToolExitf_Wraps(t *testing.T) {
	underlying := os.ErrPermission
	err := ToolExitf("failed to write stamp: %w", underlying)

	if !errors.Is(err, underlying) {
		t.Error("ToolExitf did not wrap the underlying error")
	}
	if !IsToolExit(err) {
		t.Error("IsToolExit() = false")
	}
}

func TestToolExitError_Suggestion(t *testing.T) {
	err := &ToolExitError{
		Message:    "the flutter tool cannot access /opt/flutter",
		Suggestion: "Please ensure that the SDK is writable by the current user.",
	}

	want := "the flutter tool cannot access /opt/flutter\nPlease ensure that the SDK is writable by the current user."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), 1},
		{"tool exit default", ToolExit("bye"), 1},
		{"tool exit custom", &ToolExitError{Message: "bye", ExitCode: 64}, 64},
		{"wrapped tool exit", fmt.Errorf("outer: %w", &ToolExitError{Message: "bye", ExitCode: 3}), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsNetworkError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("dial tcp 10.0.0.1:443: connection refused"), true},
		{errors.New("x509: certificate signed by unknown authority"), true},
		{errors.New("context deadline exceeded"), true},
		{errors.New("lookup storage.googleapis.com: no such host"), true},
		{errors.New("file not found"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsNetworkError(tt.err); got != tt.want {
			t.Errorf("IsNetworkError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestIsPermissionError(t *testing.T) {
	if !IsPermissionError(os.ErrPermission) {
		t.Error("IsPermissionError(os.ErrPermission) = false")
	}
	if !IsPermissionError(fmt.Errorf("open /etc/hosts: %w", os.ErrPermission)) {
		t.Error("IsPermissionError(wrapped) = false")
	}
	if IsPermissionError(errors.New("no space left on device")) {
		t.Error("IsPermissionError(disk full) = true")
	}
}

func TestIsDiskFullError(t *testing.T) {
	if !IsDiskFullError(errors.New("write /tmp/x: no space left on device")) {
		t.Error("IsDiskFullError(enospc) = false")
	}
	if IsDiskFullError(errors.New("permission denied")) {
		t.Error("IsDiskFullError(permission) = true")
	}
}
