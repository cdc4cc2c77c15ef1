package types

import (
	"io"
	"io/fs"
)

// FS abstracts the filesystem operations the pipeline performs, so
// commands and executors can run against the OS or an in-memory
// filesystem in tests.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	Open(name string) (File, error)
	Create(name string) (io.WriteCloser, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Mutations
	Rename(oldpath, newpath string) error
	Remove(name string) error
}

// File is the read side of an open file. Seek is required because the
// partial fingerprint samples the tail of large files.
type File interface {
	io.Reader
	io.Seeker
	io.Closer
}

// Observer receives progress checkpoints from the pipeline. All
// methods may be called frequently; implementations should be cheap.
// A nil Observer is always valid and means "no reporting".
type Observer interface {
	// FilesDiscovered is called once after discovery with the total
	// number of candidate files.
	FilesDiscovered(count int)

	// FileHashed is called after each file's fingerprint attempt,
	// whether it succeeded or not.
	FileHashed(path string)

	// ActionCompleted is called after each executed move or rename.
	// err is nil on success.
	ActionCompleted(description string, err error)
}
