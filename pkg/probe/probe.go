// Package probe classifies what currently occupies a filesystem path.
//
// Inspection uses lstat semantics throughout: a symlink at the path is
// reported as a symlink, never followed into whatever it points at. The
// classification is computed fresh on every call and must not be cached
// across convergence calls.
package probe

import (
	stderrors "errors"
	"io/fs"

	"golang.org/x/sys/unix"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/filesystem"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/types"
)

// Prober inspects paths through a types.FS.
type Prober struct {
	fs types.FS
}

// New creates a Prober backed by the given filesystem.
func New(fsys types.FS) *Prober {
	return &Prober{fs: fsys}
}

// Inspect classifies the entry at path. A missing path is not an error:
// it returns a state with Kind == StateAbsent. Unexpected I/O failures
// (permission denied walking parents, for instance) are classified and
// returned, never swallowed.
func (p *Prober) Inspect(path string) (types.CurrentState, error) {
	logger := logging.GetLogger("probe")

	fi, err := p.fs.Lstat(path)
	if err != nil {
		// ENOTDIR means a parent component is a file, so nothing can
		// occupy the path; treat it like plain absence.
		if stderrors.Is(err, fs.ErrNotExist) || stderrors.Is(err, unix.ENOTDIR) {
			return types.CurrentState{Kind: types.StateAbsent}, nil
		}
		return types.CurrentState{}, errors.ClassifyOS(err, path)
	}

	state := types.CurrentState{
		Kind: classifyMode(fi.Mode()),
		Mode: fi.Mode(),
	}
	if uid, gid, ok := filesystem.Owner(fi); ok {
		state.UID = uid
		state.GID = gid
	}

	if state.Kind == types.StateSymlink {
		target, err := p.fs.Readlink(path)
		if err != nil {
			return types.CurrentState{}, errors.ClassifyOS(err, path)
		}
		state.LinkTarget = target
	}

	logger.Trace().
		Str("path", path).
		Str("kind", string(state.Kind)).
		Str("linkTarget", state.LinkTarget).
		Msg("Probed path")

	return state, nil
}

func classifyMode(mode fs.FileMode) types.StateKind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return types.StateSymlink
	case mode.IsDir():
		return types.StateDirectory
	case mode.IsRegular():
		return types.StateRegular
	default:
		return types.StateOther
	}
}
