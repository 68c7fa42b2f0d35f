//go:build unix

package filesystem

import (
	"io/fs"
	"syscall"
)

// Owner extracts the uid and gid from a stat result. The last return is
// false when the platform stat structure is unavailable (test doubles
// without a real Sys payload).
func Owner(fi fs.FileInfo) (uid, gid int, ok bool) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, false
	}
	return int(st.Uid), int(st.Gid), true
}
