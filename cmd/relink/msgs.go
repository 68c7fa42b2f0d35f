package main

// User-facing command strings, kept together so wording stays consistent.
const (
	MsgRootShort = "Declarative, idempotent filesystem link management"
	MsgRootLong  = `relink converges filesystem links toward a declared desired state.

Given a target path, a destination, and a link kind (symbolic or hard),
relink inspects what currently occupies the target and performs the
minimal set of operations to reach the desired state, reporting whether
anything changed. Repeated runs are idempotent.`

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"

	MsgCreateShort = "Create or update a link at TARGET pointing at DESTINATION"
	MsgDeleteShort = "Remove the link at TARGET if it matches the expected kind"
	MsgProbeShort  = "Classify what currently occupies PATH"
	MsgApplyShort  = "Apply every link entry in a TOML or YAML manifest, in order"

	MsgFlagHard      = "Manage a hard link instead of a symbolic link"
	MsgFlagOwner     = "Owner (name or uid) to apply to the symlink itself"
	MsgFlagGroup     = "Group (name or gid) to apply to the symlink itself"
	MsgFlagDryRun    = "Report what would change without touching the filesystem"
	MsgFlagBackupDir = "Directory for pre-replace backups of displaced files"
	MsgFlagNoBackup  = "Disable pre-replace backups of displaced files"
)
