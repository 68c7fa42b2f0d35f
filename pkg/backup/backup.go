// Package backup preserves file content displaced by a destructive
// replace. The convergence engine never calls it: the run sequencer (or
// any other caller) invokes it before asking the engine to replace an
// existing entry, which the engine's replace-by-rename sequencing makes
// possible.
package backup

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/types"
)

// Store copies displaced files into a backup directory. Backup names are
// best-effort diagnostics (base name plus timestamp), not an interchange
// format.
type Store struct {
	fs     types.FS
	dir    string
	logger zerolog.Logger
}

// NewStore creates a Store writing under dir. An empty dir selects the
// default location under the XDG data directory.
func NewStore(fsys types.FS, dir string) *Store {
	if dir == "" {
		dir = filepath.Join(xdg.DataHome, "relink", "backups")
	}
	return &Store{
		fs:     fsys,
		dir:    dir,
		logger: logging.GetLogger("backup"),
	}
}

// Dir returns the directory backups are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Preserve copies the regular file at path into the store and returns the
// backup path. Entries without content of their own (symlinks, absent
// paths, directories, device nodes) are skipped with an empty return.
func (s *Store) Preserve(path string, current types.CurrentState) (string, error) {
	if current.Kind != types.StateRegular {
		return "", nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrBackup, "failed to read file for backup").WithPath(path)
	}

	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return "", errors.Wrap(err, errors.ErrBackup, "failed to create backup directory").WithPath(s.dir)
	}

	name := fmt.Sprintf("%s.%s", filepath.Base(path), time.Now().Format("20060102T150405.000000000"))
	backupPath := filepath.Join(s.dir, name)
	perm := current.Mode.Perm()
	if perm == 0 {
		perm = 0644
	}
	if err := s.fs.WriteFile(backupPath, data, perm); err != nil {
		return "", errors.Wrap(err, errors.ErrBackup, "failed to write backup").WithPath(backupPath)
	}

	s.logger.Info().Str("path", path).Str("backup", backupPath).Msg("Preserved displaced file")
	return backupPath, nil
}
