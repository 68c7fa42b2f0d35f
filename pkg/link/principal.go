package link

import (
	"os/user"
	"strconv"

	"github.com/arthur-debert/relink/pkg/errors"
)

// ResolveUser maps an owner identifier to a numeric uid. A decimal string
// is used as-is, so callers holding pre-resolved ids never hit the local
// account database.
func ResolveUser(owner string) (int, error) {
	if id, err := strconv.Atoi(owner); err == nil {
		return id, nil
	}
	u, err := user.Lookup(owner)
	if err != nil {
		return -1, errors.Wrapf(err, errors.ErrOwnerLookup, "unknown user %q", owner)
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return -1, errors.Wrapf(err, errors.ErrOwnerLookup, "non-numeric uid for user %q", owner)
	}
	return uid, nil
}

// ResolveGroup maps a group identifier to a numeric gid, with the same
// decimal-id shortcut as ResolveUser.
func ResolveGroup(group string) (int, error) {
	if id, err := strconv.Atoi(group); err == nil {
		return id, nil
	}
	g, err := user.LookupGroup(group)
	if err != nil {
		return -1, errors.Wrapf(err, errors.ErrOwnerLookup, "unknown group %q", group)
	}
	gid, err := strconv.Atoi(g.Gid)
	if err != nil {
		return -1, errors.Wrapf(err, errors.ErrOwnerLookup, "non-numeric gid for group %q", group)
	}
	return gid, nil
}
