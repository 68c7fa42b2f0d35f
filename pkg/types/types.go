package types

import "io/fs"

// LinkKind selects the strategy used to create and verify a link.
type LinkKind string

const (
	// KindSymbolic creates symbolic links. This is the default kind.
	KindSymbolic LinkKind = "symbolic"

	// KindHard creates hard links.
	KindHard LinkKind = "hard"
)

// Valid reports whether the kind is one of the supported link kinds.
func (k LinkKind) Valid() bool {
	return k == KindSymbolic || k == KindHard
}

// Action is the convergence operation requested for a descriptor.
type Action string

const (
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
)

// LinkDescriptor is the desired state for a single managed link. It is
// constructed fresh by the caller for every convergence call; the engine
// keeps no record of it between calls.
type LinkDescriptor struct {
	// TargetPath is the path the engine creates, removes, or inspects.
	// It is the identity of the resource.
	TargetPath string

	// Destination is what the link points at. For symbolic links it is
	// used literally and need not exist. For hard links it must name an
	// existing regular file.
	Destination string

	// Kind selects symbolic or hard link behavior.
	Kind LinkKind

	// Owner and Group are principal names or decimal ids to apply to the
	// link itself. They are meaningful for symbolic links only; for hard
	// links they are silently ignored rather than rejected, since a hard
	// link shares ownership with the underlying inode. Empty means the
	// attribute is not managed.
	Owner string
	Group string
}

// KindOrDefault returns the descriptor's kind, defaulting to symbolic
// when unset.
func (d LinkDescriptor) KindOrDefault() LinkKind {
	if d.Kind == "" {
		return KindSymbolic
	}
	return d.Kind
}

// StateKind classifies what currently occupies a filesystem path. The
// classification never follows a final symlink component, so an existing
// symlink is always StateSymlink regardless of what it points at.
type StateKind string

const (
	StateAbsent    StateKind = "absent"
	StateRegular   StateKind = "regular"
	StateDirectory StateKind = "directory"
	StateSymlink   StateKind = "symlink"
	// StateOther covers non-regular, non-directory, non-symlink entries
	// such as sockets, devices, and named pipes.
	StateOther StateKind = "other"
)

// CurrentState is the probed classification of a path. It is ephemeral:
// recomputed on every convergence call and never cached.
type CurrentState struct {
	Kind StateKind

	// LinkTarget is the literal, unresolved readlink result. Set only
	// when Kind is StateSymlink.
	LinkTarget string

	// UID and GID of the entry itself (lstat semantics). Valid only when
	// the entry exists.
	UID int
	GID int

	Mode fs.FileMode
}

// Exists reports whether anything occupies the path.
func (s CurrentState) Exists() bool {
	return s.Kind != StateAbsent
}

// HardLinkCandidate reports whether the entry could be an existing hard
// link: any present, non-symlink, non-directory entry qualifies. There is
// no portable way to prove a file is "a hard link" beyond this.
func (s CurrentState) HardLinkCandidate() bool {
	switch s.Kind {
	case StateRegular, StateOther:
		return true
	default:
		return false
	}
}

// Outcome reports whether a convergence call changed anything.
type Outcome string

const (
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeChanged   Outcome = "changed"
)

// Result describes what a convergence call did. When an error is returned
// alongside a Result with LinkChanged set, the link itself was established
// and only a later step (ownership enforcement) failed; callers must not
// collapse that into a plain failure.
type Result struct {
	Outcome Outcome

	// LinkChanged is true when the link was created, replaced, or removed.
	LinkChanged bool

	// OwnerChanged is true when owner or group metadata was rewritten.
	OwnerChanged bool
}

// Changed reports whether the call modified the filesystem.
func (r Result) Changed() bool {
	return r.Outcome == OutcomeChanged
}
