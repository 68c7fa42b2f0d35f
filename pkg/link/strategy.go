package link

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/types"
)

// strategy is the per-kind behavior the planner dispatches to. The set is
// closed: exactly one implementation per types.LinkKind.
type strategy interface {
	// alreadySatisfied reports whether the probed state already matches
	// the desired state for this kind, without touching the filesystem
	// beyond read-only inspection.
	alreadySatisfied(desc types.LinkDescriptor, current types.CurrentState) (bool, error)

	// create establishes the link, replacing an existing non-directory
	// entity at the target path. Refusal paths must leave the filesystem
	// untouched.
	create(desc types.LinkDescriptor, current types.CurrentState) error
}

func (e *Engine) strategyFor(kind types.LinkKind) strategy {
	if kind == types.KindHard {
		return hardStrategy{fs: e.fs}
	}
	return symbolicStrategy{fs: e.fs}
}

// replaceWithLink replaces an existing entry atomically: the link is
// created under a temporary name in the target's directory and renamed
// over the entry, so the path never observably disappears. The existing
// entry stays intact until the rename, leaving room for callers to back
// it up before asking for the replace.
func replaceWithLink(fsys types.FS, target string, mkLink func(name string) error) error {
	dir := filepath.Dir(target)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.relink.%d.%d", filepath.Base(target), os.Getpid(), time.Now().UnixNano()))

	if err := mkLink(tmp); err != nil {
		return errors.ClassifyOS(err, target)
	}
	if err := fsys.Rename(tmp, target); err != nil {
		_ = fsys.Remove(tmp)
		return errors.ClassifyOS(err, target)
	}
	return nil
}

// createOrReplace creates the link directly when nothing occupies the
// target, and atomically replaces the existing entry otherwise.
func createOrReplace(fsys types.FS, target string, current types.CurrentState, mkLink func(name string) error) error {
	if !current.Exists() {
		if err := mkLink(target); err != nil {
			return errors.ClassifyOS(err, target)
		}
		return nil
	}
	return replaceWithLink(fsys, target, mkLink)
}
