package link

import (
	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/types"
)

// enforceOwnership applies the descriptor's owner and group to the link
// itself, with symlink-aware semantics (lchown: the symlink's own
// metadata, never the file it points to). It is a documented no-op for
// hard links, which share ownership with the destination inode. Returns
// whether anything was rewritten.
//
// The current values are compared first so repeated application stays
// idempotent and matching values never error.
func (e *Engine) enforceOwnership(desc types.LinkDescriptor) (bool, error) {
	if desc.KindOrDefault() != types.KindSymbolic {
		return false, nil
	}
	if desc.Owner == "" && desc.Group == "" {
		return false, nil
	}

	uid, gid := -1, -1 // -1 leaves the id unchanged in lchown
	var err error
	if desc.Owner != "" {
		uid, err = ResolveUser(desc.Owner)
		if err != nil {
			return false, err
		}
	}
	if desc.Group != "" {
		gid, err = ResolveGroup(desc.Group)
		if err != nil {
			return false, err
		}
	}

	current, err := e.prober.Inspect(desc.TargetPath)
	if err != nil {
		return false, err
	}
	if !current.Exists() {
		return false, errors.
			New(errors.ErrNotFound, "link vanished before ownership enforcement").
			WithPath(desc.TargetPath)
	}

	if (uid == -1 || uid == current.UID) && (gid == -1 || gid == current.GID) {
		return false, nil
	}

	if err := e.fs.Lchown(desc.TargetPath, uid, gid); err != nil {
		return false, errors.ClassifyOS(err, desc.TargetPath)
	}
	e.logger.Debug().
		Str("target", desc.TargetPath).
		Int("uid", uid).
		Int("gid", gid).
		Msg("Applied link ownership")
	return true, nil
}
