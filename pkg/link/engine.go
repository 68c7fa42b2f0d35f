// Package link implements declarative, idempotent convergence of
// filesystem links. Given a desired-state descriptor, the engine probes
// what currently occupies the target path and performs the minimal set of
// operations needed to reach the desired state.
//
// The engine keeps no state between calls: every Converge re-probes the
// target path. Probe-then-act is not atomic against an external actor
// mutating the same path; callers that run convergences concurrently must
// serialize calls per target path themselves. Calls for disjoint target
// paths are safe to run concurrently.
package link

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/probe"
	"github.com/arthur-debert/relink/pkg/types"
)

// Engine converges link resources against a filesystem.
type Engine struct {
	fs     types.FS
	prober *probe.Prober
	logger zerolog.Logger
}

// New creates an Engine backed by the given filesystem.
func New(fsys types.FS) *Engine {
	return &Engine{
		fs:     fsys,
		prober: probe.New(fsys),
		logger: logging.GetLogger("link"),
	}
}

// Probe classifies the entry at path without changing anything. Exposed
// for diagnostics and dry-run use.
func (e *Engine) Probe(path string) (types.CurrentState, error) {
	return e.prober.Inspect(path)
}

// Satisfied reports whether the desired state already holds, without
// changing anything. Ownership attributes are not compared; only the link
// itself. Used for dry runs alongside Probe.
func (e *Engine) Satisfied(desc types.LinkDescriptor) (bool, error) {
	if err := validate(desc, types.ActionCreate); err != nil {
		return false, err
	}
	current, err := e.prober.Inspect(desc.TargetPath)
	if err != nil {
		return false, err
	}
	return e.strategyFor(desc.KindOrDefault()).alreadySatisfied(desc, current)
}

// Converge reconciles the filesystem at the descriptor's target path with
// the desired state. It never retries: every failure is surfaced as a
// typed error. When the returned Result has LinkChanged set alongside a
// non-nil error, the link itself was established and only the ownership
// step failed; the two must not be conflated.
func (e *Engine) Converge(desc types.LinkDescriptor, action types.Action) (types.Result, error) {
	if err := validate(desc, action); err != nil {
		return types.Result{}, err
	}

	switch action {
	case types.ActionCreate:
		return e.create(desc)
	case types.ActionDelete:
		return e.delete(desc)
	default:
		return types.Result{}, errors.Newf(errors.ErrInvalidInput, "unknown action %q", action)
	}
}

func validate(desc types.LinkDescriptor, action types.Action) error {
	if desc.TargetPath == "" {
		return errors.New(errors.ErrInvalidInput, "target path must not be empty")
	}
	if !desc.KindOrDefault().Valid() {
		return errors.Newf(errors.ErrInvalidInput, "unknown link kind %q", desc.Kind)
	}
	if action == types.ActionCreate && desc.Destination == "" {
		return errors.New(errors.ErrInvalidInput, "destination must not be empty").WithPath(desc.TargetPath)
	}
	return nil
}

// create implements the convergence plan: probe, check satisfaction,
// then create or type-checked-replace, then enforce ownership.
func (e *Engine) create(desc types.LinkDescriptor) (types.Result, error) {
	kind := desc.KindOrDefault()
	strat := e.strategyFor(kind)

	current, err := e.prober.Inspect(desc.TargetPath)
	if err != nil {
		return types.Result{}, err
	}

	satisfied, err := strat.alreadySatisfied(desc, current)
	if err != nil {
		return types.Result{}, err
	}

	if satisfied {
		ownerChanged, err := e.enforceOwnership(desc)
		if err != nil {
			return types.Result{Outcome: types.OutcomeUnchanged}, err
		}
		if ownerChanged {
			e.logger.Info().Str("target", desc.TargetPath).Msg("Updated link ownership")
			return types.Result{Outcome: types.OutcomeChanged, OwnerChanged: true}, nil
		}
		e.logger.Debug().Str("target", desc.TargetPath).Msg("Link already up to date")
		return types.Result{Outcome: types.OutcomeUnchanged}, nil
	}

	if err := strat.create(desc, current); err != nil {
		return types.Result{}, err
	}
	e.logger.Info().
		Str("target", desc.TargetPath).
		Str("destination", desc.Destination).
		Str("kind", string(kind)).
		Msg("Created link")

	result := types.Result{Outcome: types.OutcomeChanged, LinkChanged: true}

	ownerChanged, err := e.enforceOwnership(desc)
	if err != nil {
		// The link is in place; report the change and the ownership
		// failure as distinct facts.
		return result, err
	}
	result.OwnerChanged = ownerChanged
	return result, nil
}

// delete implements the type-checked delete guard: an entity is only
// removed when it matches the expected link kind exactly.
func (e *Engine) delete(desc types.LinkDescriptor) (types.Result, error) {
	kind := desc.KindOrDefault()

	current, err := e.prober.Inspect(desc.TargetPath)
	if err != nil {
		return types.Result{}, err
	}

	if !current.Exists() {
		e.logger.Debug().Str("target", desc.TargetPath).Msg("Nothing to delete")
		return types.Result{Outcome: types.OutcomeUnchanged}, nil
	}

	var matches bool
	switch kind {
	case types.KindSymbolic:
		// Any symlink matches, broken ones included.
		matches = current.Kind == types.StateSymlink
	case types.KindHard:
		matches = current.HardLinkCandidate()
	}
	if !matches {
		return types.Result{}, errors.
			Newf(errors.ErrLinkTypeMismatch, "existing entry is %s, not a %s link", current.Kind, kind).
			WithPath(desc.TargetPath)
	}

	if err := e.fs.Remove(desc.TargetPath); err != nil {
		return types.Result{}, errors.ClassifyOS(err, desc.TargetPath)
	}
	e.logger.Info().Str("target", desc.TargetPath).Str("kind", string(kind)).Msg("Removed link")
	return types.Result{Outcome: types.OutcomeChanged, LinkChanged: true}, nil
}
