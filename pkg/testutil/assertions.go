package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSymlink checks that path is a symlink whose literal destination
// equals want.
func AssertSymlink(t *testing.T, path, want string) {
	t.Helper()
	fi, err := os.Lstat(path)
	require.NoError(t, err, "expected a symlink at %s", path)
	require.True(t, fi.Mode()&os.ModeSymlink != 0, "%s is not a symlink (mode %v)", path, fi.Mode())
	got, err := os.Readlink(path)
	require.NoError(t, err)
	assert.Equal(t, want, got, "symlink destination mismatch at %s", path)
}

// AssertAbsent checks that nothing occupies path.
func AssertAbsent(t *testing.T, path string) {
	t.Helper()
	_, err := os.Lstat(path)
	require.True(t, os.IsNotExist(err), "expected nothing at %s, lstat returned %v", path, err)
}

// AssertRegularFile checks that path is a regular file with the given
// content.
func AssertRegularFile(t *testing.T, path, content string) {
	t.Helper()
	fi, err := os.Lstat(path)
	require.NoError(t, err, "expected a regular file at %s", path)
	require.True(t, fi.Mode().IsRegular(), "%s is not a regular file (mode %v)", path, fi.Mode())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data), "file content mismatch at %s", path)
}

// AssertDirectory checks that path is a directory.
func AssertDirectory(t *testing.T, path string) {
	t.Helper()
	fi, err := os.Lstat(path)
	require.NoError(t, err, "expected a directory at %s", path)
	require.True(t, fi.IsDir(), "%s is not a directory (mode %v)", path, fi.Mode())
}

// AssertSameFile checks that two paths share an inode.
func AssertSameFile(t *testing.T, a, b string) {
	t.Helper()
	fa, err := os.Stat(a)
	require.NoError(t, err)
	fb, err := os.Stat(b)
	require.NoError(t, err)
	assert.True(t, os.SameFile(fa, fb), "%s and %s do not share an inode", a, b)
}
