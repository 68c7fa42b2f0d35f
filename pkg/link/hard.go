package link

import (
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/types"
)

// hardStrategy creates hard links. The destination must exist and must
// not be a directory.
//
// When the destination is itself a symlink, the strategy replicates the
// symlink at the target path instead of hard-linking the file it resolves
// to. That holds for broken destination symlinks too. The behavior is
// kept for compatibility with the reference convergence semantics; callers
// wanting a hard link to the resolved file should pass the resolved path.
type hardStrategy struct {
	fs types.FS
}

// alreadySatisfied is true when the target already shares an inode with
// the destination, following a symlink at the target if one is present.
// A symlink destination is satisfied only by a symlink at the target
// carrying the same literal destination string, mirroring what create
// produces.
func (h hardStrategy) alreadySatisfied(desc types.LinkDescriptor, current types.CurrentState) (bool, error) {
	if !current.Exists() || current.Kind == types.StateDirectory {
		return false, nil
	}

	dfi, err := h.fs.Lstat(desc.Destination)
	if err != nil {
		// Absent destination is create's problem; it reports NotFound.
		if stderrors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.ClassifyOS(err, desc.Destination)
	}

	if dfi.Mode()&fs.ModeSymlink != 0 {
		if current.Kind != types.StateSymlink {
			return false, nil
		}
		destTarget, err := h.fs.Readlink(desc.Destination)
		if err != nil {
			return false, errors.ClassifyOS(err, desc.Destination)
		}
		return current.LinkTarget == destTarget, nil
	}

	// Inode identity, with symlinks followed on both sides. A broken
	// symlink at the target stats to nothing and is never satisfied.
	tfi, err := h.fs.Stat(desc.TargetPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.ClassifyOS(err, desc.TargetPath)
	}
	return os.SameFile(tfi, dfi), nil
}

func (h hardStrategy) create(desc types.LinkDescriptor, current types.CurrentState) error {
	if current.Kind == types.StateDirectory {
		return errors.
			New(errors.ErrIsADirectory, "refusing to replace directory with a hard link").
			WithPath(desc.TargetPath)
	}

	dfi, err := h.fs.Lstat(desc.Destination)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return errors.
				New(errors.ErrNotFound, "hard link destination does not exist").
				WithPath(desc.Destination)
		}
		return errors.ClassifyOS(err, desc.Destination)
	}
	if dfi.IsDir() {
		return errors.
			New(errors.ErrNotPermitted, "cannot hard link to a directory").
			WithPath(desc.Destination)
	}

	if dfi.Mode()&fs.ModeSymlink != 0 {
		destTarget, err := h.fs.Readlink(desc.Destination)
		if err != nil {
			return errors.ClassifyOS(err, desc.Destination)
		}
		return createOrReplace(h.fs, desc.TargetPath, current, func(name string) error {
			return h.fs.Symlink(destTarget, name)
		})
	}

	return createOrReplace(h.fs, desc.TargetPath, current, func(name string) error {
		return h.fs.Link(desc.Destination, name)
	})
}
