package link_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/link"
	"github.com/arthur-debert/relink/pkg/testutil"
	"github.com/arthur-debert/relink/pkg/types"
)

func newEngine(t *testing.T) (*link.Engine, *testutil.TestEnvironment) {
	t.Helper()
	env := testutil.NewTestEnvironment(t)
	return link.New(env.FS), env
}

func TestSymbolicCreate_TargetAbsent(t *testing.T) {
	engine, env := newEngine(t)
	dest := env.WriteFile("woohoo", "out of excitement")
	target := env.Path("the_link")

	result, err := engine.Converge(types.LinkDescriptor{
		TargetPath:  target,
		Destination: dest,
		Kind:        types.KindSymbolic,
	}, types.ActionCreate)

	require.NoError(t, err)
	assert.Equal(t, types.OutcomeChanged, result.Outcome)
	assert.True(t, result.LinkChanged)
	testutil.AssertSymlink(t, target, dest)
}

func TestSymbolicCreate_DanglingDestination(t *testing.T) {
	engine, env := newEngine(t)
	target := env.Path("the_link")

	// A destination that does not exist is a valid end state.
	result, err := engine.Converge(types.LinkDescriptor{
		TargetPath:  target,
		Destination: env.Path("nowhere"),
	}, types.ActionCreate)

	require.NoError(t, err)
	assert.True(t, result.Changed())
	testutil.AssertSymlink(t, target, env.Path("nowhere"))
}

func TestSymbolicCreate_Idempotent(t *testing.T) {
	engine, env := newEngine(t)
	dest := env.WriteFile("woohoo", "content")
	desc := types.LinkDescriptor{TargetPath: env.Path("the_link"), Destination: dest}

	first, err := engine.Converge(desc, types.ActionCreate)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeChanged, first.Outcome)

	second, err := engine.Converge(desc, types.ActionCreate)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeUnchanged, second.Outcome)
	assert.False(t, second.LinkChanged)
	testutil.AssertSymlink(t, desc.TargetPath, dest)
}

func TestSymbolicCreate_LiteralDestinationComparison(t *testing.T) {
	// An equivalent-but-different destination string is not satisfied:
	// the link must be rewritten to the exact string.
	engine, env := newEngine(t)
	env.WriteFile("to", "content")
	// Same file, different spelling: the literal string is what counts.
	target := env.Symlink(env.Root+"/./to", "the_link")

	result, err := engine.Converge(types.LinkDescriptor{
		TargetPath:  target,
		Destination: env.Path("to"),
	}, types.ActionCreate)

	require.NoError(t, err)
	assert.Equal(t, types.OutcomeChanged, result.Outcome)
	testutil.AssertSymlink(t, target, env.Path("to"))
}

func TestSymbolicCreate_OverwritesRegularFile(t *testing.T) {
	engine, env := newEngine(t)
	target := env.WriteFile("the_link", "eek")
	dest := env.Path("to")

	result, err := engine.Converge(types.LinkDescriptor{
		TargetPath:  target,
		Destination: dest,
	}, types.ActionCreate)

	require.NoError(t, err)
	assert.True(t, result.LinkChanged)
	testutil.AssertSymlink(t, target, dest)

	// The replaced symlink is then deletable as a symlink.
	delRes, err := engine.Converge(types.LinkDescriptor{TargetPath: target}, types.ActionDelete)
	require.NoError(t, err)
	assert.True(t, delRes.Changed())
	testutil.AssertAbsent(t, target)
}

func TestSymbolicCreate_ReplacesWrongSymlink(t *testing.T) {
	engine, env := newEngine(t)
	target := env.Symlink(env.Path("elsewhere"), "the_link")
	dest := env.Path("to")

	result, err := engine.Converge(types.LinkDescriptor{
		TargetPath:  target,
		Destination: dest,
	}, types.ActionCreate)

	require.NoError(t, err)
	assert.True(t, result.LinkChanged)
	testutil.AssertSymlink(t, target, dest)
}

func TestSymbolicCreate_RefusesDirectory(t *testing.T) {
	engine, env := newEngine(t)
	target := env.Mkdir("a_directory")

	_, err := engine.Converge(types.LinkDescriptor{
		TargetPath:  target,
		Destination: env.Path("to"),
	}, types.ActionCreate)

	require.Error(t, err)
	assert.Equal(t, errors.ErrIsADirectory, errors.GetErrorCode(err))
	assert.Equal(t, target, errors.GetErrorPath(err))
	testutil.AssertDirectory(t, target)
}

func TestSymbolicDelete(t *testing.T) {
	engine, env := newEngine(t)

	t.Run("removes symlink", func(t *testing.T) {
		target := env.Symlink(env.Path("to"), "link1")
		result, err := engine.Converge(types.LinkDescriptor{TargetPath: target}, types.ActionDelete)
		require.NoError(t, err)
		assert.True(t, result.LinkChanged)
		testutil.AssertAbsent(t, target)
	})

	t.Run("removes broken symlink", func(t *testing.T) {
		target := env.Symlink(env.Path("never_created"), "link2")
		result, err := engine.Converge(types.LinkDescriptor{TargetPath: target}, types.ActionDelete)
		require.NoError(t, err)
		assert.True(t, result.Changed())
		testutil.AssertAbsent(t, target)
	})

	t.Run("absent target is a no-op", func(t *testing.T) {
		result, err := engine.Converge(types.LinkDescriptor{TargetPath: env.Path("ghost")}, types.ActionDelete)
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeUnchanged, result.Outcome)
	})

	t.Run("refuses regular file", func(t *testing.T) {
		target := env.WriteFile("not_a_link", "data")
		_, err := engine.Converge(types.LinkDescriptor{TargetPath: target}, types.ActionDelete)
		require.Error(t, err)
		assert.Equal(t, errors.ErrLinkTypeMismatch, errors.GetErrorCode(err))
		testutil.AssertRegularFile(t, target, "data")
	})

	t.Run("refuses directory", func(t *testing.T) {
		target := env.Mkdir("still_a_directory")
		_, err := engine.Converge(types.LinkDescriptor{TargetPath: target}, types.ActionDelete)
		require.Error(t, err)
		assert.Equal(t, errors.ErrLinkTypeMismatch, errors.GetErrorCode(err))
		testutil.AssertDirectory(t, target)
	})
}

func TestHardCreate(t *testing.T) {
	t.Run("creates hard link", func(t *testing.T) {
		engine, env := newEngine(t)
		dest := env.WriteFile("to", "shared content")
		target := env.Path("the_link")

		result, err := engine.Converge(types.LinkDescriptor{
			TargetPath:  target,
			Destination: dest,
			Kind:        types.KindHard,
		}, types.ActionCreate)

		require.NoError(t, err)
		assert.True(t, result.LinkChanged)
		testutil.AssertSameFile(t, target, dest)
		testutil.AssertRegularFile(t, target, "shared content")
	})

	t.Run("idempotent", func(t *testing.T) {
		engine, env := newEngine(t)
		dest := env.WriteFile("to", "shared content")
		desc := types.LinkDescriptor{
			TargetPath:  env.Path("the_link"),
			Destination: dest,
			Kind:        types.KindHard,
		}

		_, err := engine.Converge(desc, types.ActionCreate)
		require.NoError(t, err)

		second, err := engine.Converge(desc, types.ActionCreate)
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeUnchanged, second.Outcome)
	})

	t.Run("replaces unrelated file", func(t *testing.T) {
		engine, env := newEngine(t)
		dest := env.WriteFile("to", "kept")
		target := env.WriteFile("the_link", "displaced")

		result, err := engine.Converge(types.LinkDescriptor{
			TargetPath:  target,
			Destination: dest,
			Kind:        types.KindHard,
		}, types.ActionCreate)

		require.NoError(t, err)
		assert.True(t, result.LinkChanged)
		testutil.AssertSameFile(t, target, dest)
	})

	t.Run("destination absent fails NotFound", func(t *testing.T) {
		engine, env := newEngine(t)
		target := env.Path("the_link")

		_, err := engine.Converge(types.LinkDescriptor{
			TargetPath:  target,
			Destination: env.Path("nowhere"),
			Kind:        types.KindHard,
		}, types.ActionCreate)

		require.Error(t, err)
		assert.Equal(t, errors.ErrNotFound, errors.GetErrorCode(err))
		testutil.AssertAbsent(t, target)
	})

	t.Run("destination directory fails OperationNotPermitted", func(t *testing.T) {
		engine, env := newEngine(t)
		dest := env.Mkdir("a_directory")
		target := env.Path("the_link")

		_, err := engine.Converge(types.LinkDescriptor{
			TargetPath:  target,
			Destination: dest,
			Kind:        types.KindHard,
		}, types.ActionCreate)

		require.Error(t, err)
		assert.Equal(t, errors.ErrNotPermitted, errors.GetErrorCode(err))
		testutil.AssertAbsent(t, target)
	})

	t.Run("target directory fails IsADirectory", func(t *testing.T) {
		engine, env := newEngine(t)
		dest := env.WriteFile("to", "content")
		target := env.Mkdir("a_directory")

		_, err := engine.Converge(types.LinkDescriptor{
			TargetPath:  target,
			Destination: dest,
			Kind:        types.KindHard,
		}, types.ActionCreate)

		require.Error(t, err)
		assert.Equal(t, errors.ErrIsADirectory, errors.GetErrorCode(err))
		testutil.AssertDirectory(t, target)
	})
}

func TestHardCreate_DestinationIsSymlink(t *testing.T) {
	// A symlink destination is replicated at the target rather than
	// hard-linked through: compatibility behavior, see package doc.
	t.Run("symlink to real file", func(t *testing.T) {
		engine, env := newEngine(t)
		env.WriteFile("real", "content")
		dest := env.Symlink(env.Path("real"), "to")
		target := env.Path("the_link")

		desc := types.LinkDescriptor{
			TargetPath:  target,
			Destination: dest,
			Kind:        types.KindHard,
		}
		result, err := engine.Converge(desc, types.ActionCreate)
		require.NoError(t, err)
		assert.True(t, result.LinkChanged)
		testutil.AssertSymlink(t, target, env.Path("real"))

		second, err := engine.Converge(desc, types.ActionCreate)
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeUnchanged, second.Outcome)
	})

	t.Run("broken symlink", func(t *testing.T) {
		engine, env := newEngine(t)
		dest := env.Symlink(env.Path("never_created"), "to")
		target := env.Path("the_link")

		desc := types.LinkDescriptor{
			TargetPath:  target,
			Destination: dest,
			Kind:        types.KindHard,
		}
		result, err := engine.Converge(desc, types.ActionCreate)
		require.NoError(t, err)
		assert.True(t, result.LinkChanged)
		testutil.AssertSymlink(t, target, env.Path("never_created"))

		second, err := engine.Converge(desc, types.ActionCreate)
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeUnchanged, second.Outcome)
	})
}

func TestHardDelete(t *testing.T) {
	t.Run("removes hard link", func(t *testing.T) {
		engine, env := newEngine(t)
		dest := env.WriteFile("to", "content")
		target := env.Path("the_link")
		require.NoError(t, os.Link(dest, target))

		result, err := engine.Converge(types.LinkDescriptor{
			TargetPath: target,
			Kind:       types.KindHard,
		}, types.ActionDelete)

		require.NoError(t, err)
		assert.True(t, result.LinkChanged)
		testutil.AssertAbsent(t, target)
		testutil.AssertRegularFile(t, dest, "content")
	})

	t.Run("refuses symlink", func(t *testing.T) {
		engine, env := newEngine(t)
		target := env.Symlink(env.Path("to"), "the_link")

		_, err := engine.Converge(types.LinkDescriptor{
			TargetPath: target,
			Kind:       types.KindHard,
		}, types.ActionDelete)

		require.Error(t, err)
		assert.Equal(t, errors.ErrLinkTypeMismatch, errors.GetErrorCode(err))
		testutil.AssertSymlink(t, target, env.Path("to"))
	})

	t.Run("refuses directory", func(t *testing.T) {
		engine, env := newEngine(t)
		target := env.Mkdir("a_directory")

		_, err := engine.Converge(types.LinkDescriptor{
			TargetPath: target,
			Kind:       types.KindHard,
		}, types.ActionDelete)

		require.Error(t, err)
		assert.Equal(t, errors.ErrLinkTypeMismatch, errors.GetErrorCode(err))
		testutil.AssertDirectory(t, target)
	})
}

func TestConverge_Validation(t *testing.T) {
	engine, env := newEngine(t)

	tests := []struct {
		name   string
		desc   types.LinkDescriptor
		action types.Action
	}{
		{
			name:   "empty target",
			desc:   types.LinkDescriptor{Destination: "to"},
			action: types.ActionCreate,
		},
		{
			name:   "empty destination on create",
			desc:   types.LinkDescriptor{TargetPath: env.Path("x")},
			action: types.ActionCreate,
		},
		{
			name:   "unknown kind",
			desc:   types.LinkDescriptor{TargetPath: env.Path("x"), Destination: "to", Kind: "junction"},
			action: types.ActionCreate,
		},
		{
			name:   "unknown action",
			desc:   types.LinkDescriptor{TargetPath: env.Path("x"), Destination: "to"},
			action: "converge-harder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Converge(tt.desc, tt.action)
			require.Error(t, err)
			assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))
		})
	}
}

func TestSatisfied(t *testing.T) {
	engine, env := newEngine(t)
	dest := env.WriteFile("to", "content")
	desc := types.LinkDescriptor{TargetPath: env.Path("the_link"), Destination: dest}

	satisfied, err := engine.Satisfied(desc)
	require.NoError(t, err)
	assert.False(t, satisfied)

	_, err = engine.Converge(desc, types.ActionCreate)
	require.NoError(t, err)

	satisfied, err = engine.Satisfied(desc)
	require.NoError(t, err)
	assert.True(t, satisfied)
}

func TestProbe_ReadOnly(t *testing.T) {
	engine, env := newEngine(t)
	target := env.Symlink("relative/dest", "the_link")

	state, err := engine.Probe(target)
	require.NoError(t, err)
	assert.Equal(t, types.StateSymlink, state.Kind)
	assert.Equal(t, "relative/dest", state.LinkTarget)
}
