// Package forget implements the forget command: move a program's
// relocated entries back into home for good and drop its registry
// record. The inverse of first-run adoption.
package forget

import (
	"github.com/arthur-debert/undot/pkg/errors"
	"github.com/arthur-debert/undot/pkg/filesystem"
	"github.com/arthur-debert/undot/pkg/lockfile"
	"github.com/arthur-debert/undot/pkg/logging"
	"github.com/arthur-debert/undot/pkg/paths"
	"github.com/arthur-debert/undot/pkg/registry"
	"github.com/arthur-debert/undot/pkg/relocate"
	"github.com/arthur-debert/undot/pkg/types"
)

// Options holds options for the forget command
type Options struct {
	// Identity is the program to forget
	Identity string

	// StorageDir overrides the storage root
	StorageDir string

	// FileSystem allows injecting a filesystem for testing
	FileSystem types.FS

	// SkipLock disables the advisory lock, for in-memory tests
	SkipLock bool
}

// Forget restores a program's entries to home and removes its record.
// The same pre-flight rules as a normal restore apply: a collision in
// home aborts before anything moves.
func Forget(opts Options) (*types.ForgetResult, error) {
	logger := logging.GetLogger("commands.forget")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	if err := registry.ValidateIdentity(opts.Identity); err != nil {
		return nil, err
	}

	p, err := paths.New(opts.StorageDir)
	if err != nil {
		return nil, err
	}

	if !opts.SkipLock {
		lock, err := lockfile.Acquire(p.LockPath(opts.Identity))
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn().Err(err).Msg("Failed to release lock")
			}
		}()
	}

	store := registry.New(fs, p.RegistryPath())
	keys, found, err := store.Lookup(opts.Identity)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Newf(errors.ErrNotFound, "no registry entry for %q", opts.Identity)
	}

	if err := relocate.Restore(fs, p.HomeDir(), p.ProgramDir(opts.Identity), keys); err != nil {
		return nil, err
	}

	if _, err := store.Remove(opts.Identity); err != nil {
		return nil, err
	}

	// The payload tree is empty now; drop the leftover directories
	if err := fs.RemoveAll(p.ProgramDir(opts.Identity)); err != nil {
		logger.Warn().Err(err).Str("identity", opts.Identity).Msg("Failed to remove empty program directory")
	}

	logger.Info().
		Str("identity", opts.Identity).
		Strs("restored", keys).
		Msg("Program forgotten")

	return &types.ForgetResult{Identity: opts.Identity, Restored: keys}, nil
}
