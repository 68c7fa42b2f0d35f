package types

import "io/fs"

// FS abstracts the filesystem operations the engine performs. All core
// I/O goes through it so tests can instrument or fail individual calls.
type FS interface {
	// Inspection. Lstat never follows a final symlink component.
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	Readlink(name string) (string, error)

	// Link creation
	Symlink(oldname, newname string) error
	Link(oldname, newname string) error

	// Mutation
	Rename(oldpath, newpath string) error
	Remove(name string) error
	Lchown(name string, uid, gid int) error

	// File and directory operations used by the caller-side packages
	// (manifest loading, backups)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
}
