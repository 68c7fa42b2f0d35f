package manifest

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/relink/pkg/backup"
	"github.com/arthur-debert/relink/pkg/link"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/types"
)

// EntryResult is the per-entry outcome of a run.
type EntryResult struct {
	Entry      Entry
	Result     types.Result
	BackupPath string
	Err        error

	// WouldChange is set instead of Result during dry runs.
	WouldChange bool
}

// Runner applies manifest entries in order against the engine.
type Runner struct {
	engine  *link.Engine
	backups *backup.Store // nil disables pre-replace backups
	dryRun  bool
	logger  zerolog.Logger
}

// NewRunner creates a Runner. A nil backup store disables backups; dryRun
// restricts the run to read-only probing.
func NewRunner(engine *link.Engine, backups *backup.Store, dryRun bool) *Runner {
	return &Runner{
		engine:  engine,
		backups: backups,
		dryRun:  dryRun,
		logger:  logging.GetLogger("manifest"),
	}
}

// Run converges every entry in order. A failing entry does not stop the
// run; its error is recorded and the run continues, matching the
// one-result-per-resource reporting callers expect.
func (r *Runner) Run(m Manifest) []EntryResult {
	results := make([]EntryResult, 0, len(m.Links))
	for _, entry := range m.Links {
		results = append(results, r.runOne(entry))
	}
	return results
}

func (r *Runner) runOne(entry Entry) EntryResult {
	res := EntryResult{Entry: entry}
	desc := entry.Descriptor()
	action := entry.ConvergeAction()

	if r.dryRun {
		res.WouldChange, res.Err = r.plan(desc, action)
		return res
	}

	// Back up content a create is about to displace. The engine keeps the
	// existing entry intact until its replace rename, so this read is
	// sequenced safely before the destructive step.
	if r.backups != nil && action == types.ActionCreate {
		backupPath, err := r.preserveDisplaced(desc)
		if err != nil {
			res.Err = err
			return res
		}
		res.BackupPath = backupPath
	}

	res.Result, res.Err = r.engine.Converge(desc, action)
	if res.Err != nil {
		r.logger.Error().Err(res.Err).Str("target", entry.Target).Msg("Entry failed")
	}
	return res
}

// plan reports whether an entry would change anything, using only the
// engine's read-only surfaces.
func (r *Runner) plan(desc types.LinkDescriptor, action types.Action) (bool, error) {
	current, err := r.engine.Probe(desc.TargetPath)
	if err != nil {
		return false, err
	}
	switch action {
	case types.ActionDelete:
		return current.Exists(), nil
	default:
		satisfied, err := r.engine.Satisfied(desc)
		if err != nil {
			return false, err
		}
		return !satisfied, nil
	}
}

func (r *Runner) preserveDisplaced(desc types.LinkDescriptor) (string, error) {
	current, err := r.engine.Probe(desc.TargetPath)
	if err != nil {
		return "", err
	}
	if current.Kind != types.StateRegular {
		return "", nil
	}
	satisfied, err := r.engine.Satisfied(desc)
	if err != nil || satisfied {
		return "", err
	}
	return r.backups.Preserve(desc.TargetPath, current)
}
