//go:build unix

package errors

import (
	"errors"
	"io/fs"

	"golang.org/x/sys/unix"
)

// ClassifyOS maps an OS-level failure into the closed error taxonomy.
// ENOENT, EISDIR, EPERM, and EACCES map to their dedicated codes; every
// other failure (EXDEV among them) is preserved under ErrUnknown rather
// than lost. A nil error classifies to nil.
func ClassifyOS(err error, path string) *RelinkError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, fs.ErrNotExist) || errors.Is(err, unix.ENOENT):
		return Wrap(err, ErrNotFound, "no such file or directory").WithPath(path)
	case errors.Is(err, unix.EISDIR):
		return Wrap(err, ErrIsADirectory, "path is a directory").WithPath(path)
	case errors.Is(err, unix.EPERM):
		return Wrap(err, ErrNotPermitted, "operation not permitted").WithPath(path)
	case errors.Is(err, fs.ErrPermission) || errors.Is(err, unix.EACCES):
		return Wrap(err, ErrPermissionDenied, "permission denied").WithPath(path)
	default:
		return Wrap(err, ErrUnknown, "unclassified filesystem error").WithPath(path)
	}
}
