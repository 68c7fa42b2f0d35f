package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/relink/pkg/backup"
	"github.com/arthur-debert/relink/pkg/filesystem"
	"github.com/arthur-debert/relink/pkg/link"
	"github.com/arthur-debert/relink/pkg/manifest"
	"github.com/arthur-debert/relink/pkg/types"
)

func newEngine() *link.Engine {
	return link.New(filesystem.NewOS())
}

func kindFromFlag(hard bool) types.LinkKind {
	if hard {
		return types.KindHard
	}
	return types.KindSymbolic
}

func newCreateCmd() *cobra.Command {
	var (
		hard  bool
		owner string
		group string
	)

	cmd := &cobra.Command{
		Use:   "create TARGET DESTINATION",
		Short: MsgCreateShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := types.LinkDescriptor{
				TargetPath:  args[0],
				Destination: args[1],
				Kind:        kindFromFlag(hard),
				Owner:       owner,
				Group:       group,
			}
			result, err := newEngine().Converge(desc, types.ActionCreate)
			printResult(desc.TargetPath, result, err)
			return err
		},
	}

	cmd.Flags().BoolVar(&hard, "hard", false, MsgFlagHard)
	cmd.Flags().StringVar(&owner, "owner", "", MsgFlagOwner)
	cmd.Flags().StringVar(&group, "group", "", MsgFlagGroup)
	return cmd
}

func newDeleteCmd() *cobra.Command {
	var hard bool

	cmd := &cobra.Command{
		Use:   "delete TARGET",
		Short: MsgDeleteShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := types.LinkDescriptor{
				TargetPath: args[0],
				Kind:       kindFromFlag(hard),
			}
			result, err := newEngine().Converge(desc, types.ActionDelete)
			printResult(desc.TargetPath, result, err)
			return err
		},
	}

	cmd.Flags().BoolVar(&hard, "hard", false, MsgFlagHard)
	return cmd
}

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe PATH",
		Short: MsgProbeShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := newEngine().Probe(args[0])
			if err != nil {
				return err
			}
			printState(args[0], state)
			return nil
		},
	}
}

func newApplyCmd() *cobra.Command {
	var (
		dryRun    bool
		backupDir string
		noBackup  bool
	)

	cmd := &cobra.Command{
		Use:   "apply MANIFEST",
		Short: MsgApplyShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := filesystem.NewOS()
			m, err := manifest.Load(fsys, args[0])
			if err != nil {
				return err
			}

			var store *backup.Store
			if !noBackup && !dryRun {
				store = backup.NewStore(fsys, backupDir)
			}

			runner := manifest.NewRunner(link.New(fsys), store, dryRun)
			results := runner.Run(m)

			failed := 0
			for _, r := range results {
				printEntryResult(r, dryRun)
				if r.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d entries failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	cmd.Flags().StringVar(&backupDir, "backup-dir", "", MsgFlagBackupDir)
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, MsgFlagNoBackup)
	return cmd
}
