package link

import (
	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/types"
)

// symbolicStrategy creates symbolic links. The destination is treated as
// an opaque string: it may be relative or absolute and need not exist, a
// dangling symlink being a valid end state.
type symbolicStrategy struct {
	fs types.FS
}

// alreadySatisfied is true only for a symlink whose literal destination
// string is byte-equal to the desired destination. No resolution or
// normalization happens: an equivalent-but-different path is not a match.
func (s symbolicStrategy) alreadySatisfied(desc types.LinkDescriptor, current types.CurrentState) (bool, error) {
	return current.Kind == types.StateSymlink && current.LinkTarget == desc.Destination, nil
}

func (s symbolicStrategy) create(desc types.LinkDescriptor, current types.CurrentState) error {
	if current.Kind == types.StateDirectory {
		return errors.
			New(errors.ErrIsADirectory, "refusing to replace directory with a symlink").
			WithPath(desc.TargetPath)
	}

	return createOrReplace(s.fs, desc.TargetPath, current, func(name string) error {
		return s.fs.Symlink(desc.Destination, name)
	})
}
