// Package types holds the shared types for undot: the filesystem
// interface the engines operate through, and the registry record types.
package types

import (
	"io/fs"
)

// FS is the filesystem interface required for undot operations.
// The OS implementation lives in pkg/filesystem; an afero-backed
// in-memory implementation is available for tests.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Rename must be an atomic move on the same filesystem. The
	// relocation engine depends on this to avoid partial duplication
	// when interrupted mid-move.
	Rename(oldpath, newpath string) error

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
}

// Program is one registry record: a program identity and the ordered
// set of relocation keys it owns.
type Program struct {
	// Identity is the stable key for a wrapped program, by default the
	// basename of its invocation path.
	Identity string

	// Keys are the dot-stripped, home-relative names of the entries the
	// program owns (e.g. "barrc" for ~/.barrc). Fixed after first
	// discovery.
	Keys []string
}

// WrapResult reports what a single wrapped invocation did.
type WrapResult struct {
	Identity   string
	Discovered []string // keys adopted on a first run, nil otherwise
	FirstRun   bool
	NoOp       bool // first run that created no dotfiles
	ExitCode   int  // the child program's exit code
}

// ForgetResult reports the outcome of de-registering a program.
type ForgetResult struct {
	Identity string
	Restored []string
}
