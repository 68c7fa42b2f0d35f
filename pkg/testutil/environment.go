// Package testutil provides isolated filesystem environments and
// link-state assertions shared by the package tests. Link behavior is
// exercised against a real temporary directory because symlink and hard
// link semantics cannot be faithfully simulated in memory.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/relink/pkg/filesystem"
	"github.com/arthur-debert/relink/pkg/types"
)

// TestEnvironment is an isolated temp-dir filesystem for link tests.
type TestEnvironment struct {
	Root string
	FS   types.FS

	t *testing.T
}

// NewTestEnvironment creates a fresh environment rooted in t.TempDir().
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	return &TestEnvironment{
		Root: t.TempDir(),
		FS:   filesystem.NewOS(),
		t:    t,
	}
}

// Path resolves a path relative to the environment root.
func (env *TestEnvironment) Path(rel string) string {
	return filepath.Join(env.Root, rel)
}

// WriteFile creates a regular file with the given content, creating
// parent directories as needed. Returns the absolute path.
func (env *TestEnvironment) WriteFile(rel, content string) string {
	env.t.Helper()
	path := env.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create parent dirs for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write file %s: %v", rel, err)
	}
	return path
}

// Mkdir creates a directory. Returns the absolute path.
func (env *TestEnvironment) Mkdir(rel string) string {
	env.t.Helper()
	path := env.Path(rel)
	if err := os.MkdirAll(path, 0755); err != nil {
		env.t.Fatalf("Failed to create directory %s: %v", rel, err)
	}
	return path
}

// Symlink creates a symlink at rel pointing at dest (used literally).
// Returns the absolute path of the link.
func (env *TestEnvironment) Symlink(dest, rel string) string {
	env.t.Helper()
	path := env.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create parent dirs for %s: %v", rel, err)
	}
	if err := os.Symlink(dest, path); err != nil {
		env.t.Fatalf("Failed to create symlink %s -> %s: %v", rel, dest, err)
	}
	return path
}
