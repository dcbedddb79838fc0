// Package fsys provides the filesystem capability. The tool never touches
// the os package for file I/O directly; it goes through a FileSystem so
// tests can substitute an in-memory implementation.
package fsys

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// FileSystem is the capability the tool reads and writes files through.
// It is an afero.Fs plus the handful of path helpers the tool needs.
type FileSystem interface {
	afero.Fs

	// SystemTempDir returns the directory for short-lived tool files.
	SystemTempDir() string
}

type local struct {
	afero.Fs
	tempDir string
}

// NewLocal returns the real disk filesystem.
func NewLocal() FileSystem {
	return &local{Fs: afero.NewOsFs(), tempDir: os.TempDir()}
}

// NewMemory returns an in-memory filesystem for tests.
func NewMemory() FileSystem {
	return &local{Fs: afero.NewMemMapFs(), tempDir: "/tmp"}
}

func (l *local) SystemTempDir() string { return l.tempDir }

// LockFlags opens a file as an exclusive create, the primitive used for
// advisory lock files. Opening fails while the file exists.
const LockFlags = os.O_CREATE | os.O_EXCL | os.O_WRONLY

// ReadFile reads the named file through fs.
func ReadFile(fs FileSystem, name string) ([]byte, error) {
	return afero.ReadFile(fs, name)
}

// WriteFile writes data through fs, creating parent directories as needed.
func WriteFile(fs FileSystem, name string, data []byte, perm os.FileMode) error {
	if err := fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(fs, name, data, perm)
}

// WriteFileAtomic writes data to a sibling temp file and renames it over
// name, so readers never observe a partial write.
func WriteFileAtomic(fs FileSystem, name string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(name)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := afero.TempFile(fs, dir, filepath.Base(name)+".tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return err
	}
	if err := fs.Chmod(tmpName, perm); err != nil {
		fs.Remove(tmpName)
		return err
	}
	return fs.Rename(tmpName, name)
}

// Exists reports whether the named path exists.
func Exists(fs FileSystem, name string) bool {
	_, err := fs.Stat(name)
	return err == nil
}

// IsDir reports whether the named path exists and is a directory.
func IsDir(fs FileSystem, name string) bool {
	info, err := fs.Stat(name)
	return err == nil && info.IsDir()
}

// Touch updates the modification time of name, creating it when absent.
func Touch(fs FileSystem, name string) error {
	if !Exists(fs, name) {
		return WriteFile(fs, name, nil, 0o644)
	}
	now := time.Now()
	return fs.Chtimes(name, now, now)
}
