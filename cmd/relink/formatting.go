package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/relink/pkg/manifest"
	"github.com/arthur-debert/relink/pkg/types"
)

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	// Only apply formatting if output is a terminal
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

func printResult(target string, result types.Result, err error) {
	switch {
	case err != nil && result.LinkChanged:
		// The link landed but ownership enforcement failed; both facts
		// get reported. The error itself is printed by main.
		fmt.Printf("%s %s (link established, ownership pending)\n", formatBold("changed"), target)
	case err != nil:
		// main prints the error
	case result.Changed():
		fmt.Printf("%s %s\n", formatBold("changed"), target)
	default:
		fmt.Printf("%s %s\n", "unchanged", target)
	}
}

func printState(path string, state types.CurrentState) {
	fmt.Printf("%s %s\n", formatBold(path), state.Kind)
	if state.Kind == types.StateSymlink {
		fmt.Printf("  destination: %s\n", state.LinkTarget)
	}
	if state.Exists() {
		fmt.Printf("  uid: %d  gid: %d  mode: %s\n", state.UID, state.GID, state.Mode)
	}
}

func printEntryResult(r manifest.EntryResult, dryRun bool) {
	target := r.Entry.Target
	switch {
	case dryRun && r.Err != nil:
		fmt.Printf("%s %s: %v\n", formatBold("error"), target, r.Err)
	case dryRun && r.WouldChange:
		fmt.Printf("%s %s\n", formatBold("would change"), target)
	case dryRun:
		fmt.Printf("%s %s\n", "unchanged", target)
	case r.Err != nil:
		fmt.Printf("%s %s: %v\n", formatBold("failed"), target, r.Err)
	case r.Result.Changed():
		if r.BackupPath != "" {
			fmt.Printf("%s %s (backup: %s)\n", formatBold("changed"), target, r.BackupPath)
		} else {
			fmt.Printf("%s %s\n", formatBold("changed"), target)
		}
	default:
		fmt.Printf("%s %s\n", "unchanged", target)
	}
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", formatBold("Error:"), err)
}
