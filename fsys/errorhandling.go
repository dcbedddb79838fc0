package fsys

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/Zombie9904/flutter/errors"
)

// errorHandling decorates a FileSystem so that failures the user can act on
// (permissions, full disk) surface as ToolExit errors with guidance instead
// of raw syscall noise.
type errorHandling struct {
	delegate FileSystem
}

// NewErrorHandling wraps fs with user-facing error translation. This is the
// decoration the default filesystem capability ships with.
func NewErrorHandling(fs FileSystem) FileSystem {
	return &errorHandling{delegate: fs}
}

// translate maps permission and disk-space failures on path to tool exits.
// Everything else passes through unchanged.
func translate(err error, path string) error {
	switch {
	case err == nil:
		return nil
	case errors.IsPermissionError(err):
		return &errors.ToolExitError{
			Message:    fmt.Sprintf("The flutter tool cannot access the file or directory %q.", path),
			Suggestion: "Please ensure that the SDK and/or project is installed in a location that has read/write permissions for the current user.",
			Err:        err,
		}
	case errors.IsDiskFullError(err):
		return &errors.ToolExitError{
			Message:    fmt.Sprintf("The target device is full: could not write to %q.", path),
			Suggestion: "Free up space and try again.",
			Err:        err,
		}
	default:
		return err
	}
}

func (e *errorHandling) Create(name string) (afero.File, error) {
	f, err := e.delegate.Create(name)
	return f, translate(err, name)
}

func (e *errorHandling) Mkdir(name string, perm os.FileMode) error {
	return translate(e.delegate.Mkdir(name, perm), name)
}

func (e *errorHandling) MkdirAll(path string, perm os.FileMode) error {
	return translate(e.delegate.MkdirAll(path, perm), path)
}

func (e *errorHandling) Open(name string) (afero.File, error) {
	f, err := e.delegate.Open(name)
	return f, translate(err, name)
}

func (e *errorHandling) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	f, err := e.delegate.OpenFile(name, flag, perm)
	return f, translate(err, name)
}

func (e *errorHandling) Remove(name string) error {
	return translate(e.delegate.Remove(name), name)
}

func (e *errorHandling) RemoveAll(path string) error {
	return translate(e.delegate.RemoveAll(path), path)
}

func (e *errorHandling) Rename(oldname, newname string) error {
	return translate(e.delegate.Rename(oldname, newname), newname)
}

func (e *errorHandling) Stat(name string) (os.FileInfo, error) {
	info, err := e.delegate.Stat(name)
	return info, translate(err, name)
}

func (e *errorHandling) Chmod(name string, mode os.FileMode) error {
	return translate(e.delegate.Chmod(name, mode), name)
}

func (e *errorHandling) Chown(name string, uid, gid int) error {
	return translate(e.delegate.Chown(name, uid, gid), name)
}

func (e *errorHandling) Chtimes(name string, atime, mtime time.Time) error {
	return translate(e.delegate.Chtimes(name, atime, mtime), name)
}

func (e *errorHandling) Name() string { return "errorHandling(" + e.delegate.Name() + ")" }

func (e *errorHandling) SystemTempDir() string { return e.delegate.SystemTempDir() }
