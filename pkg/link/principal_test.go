package link_test

import (
	"os/user"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/link"
)

func TestResolveUser(t *testing.T) {
	t.Run("numeric id bypasses lookup", func(t *testing.T) {
		uid, err := link.ResolveUser("12345")
		require.NoError(t, err)
		assert.Equal(t, 12345, uid)
	})

	t.Run("current user name resolves", func(t *testing.T) {
		current, err := user.Current()
		require.NoError(t, err)

		uid, err := link.ResolveUser(current.Username)
		require.NoError(t, err)

		want, err := strconv.Atoi(current.Uid)
		require.NoError(t, err)
		assert.Equal(t, want, uid)
	})

	t.Run("unknown name fails", func(t *testing.T) {
		_, err := link.ResolveUser("no-such-user-relink-test")
		require.Error(t, err)
		assert.Equal(t, errors.ErrOwnerLookup, errors.GetErrorCode(err))
	})
}

func TestResolveGroup(t *testing.T) {
	t.Run("numeric id bypasses lookup", func(t *testing.T) {
		gid, err := link.ResolveGroup("54321")
		require.NoError(t, err)
		assert.Equal(t, 54321, gid)
	})

	t.Run("unknown name fails", func(t *testing.T) {
		_, err := link.ResolveGroup("no-such-group-relink-test")
		require.Error(t, err)
		assert.Equal(t, errors.ErrOwnerLookup, errors.GetErrorCode(err))
	})
}
