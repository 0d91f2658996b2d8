// Package relocate implements the two symmetric bulk moves between the
// home directory and a program's private storage subfolder: evacuate
// (home -> storage) and restore (storage -> home).
package relocate

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/undot/pkg/errors"
	"github.com/arthur-debert/undot/pkg/logging"
	"github.com/arthur-debert/undot/pkg/types"
)

// homeEntry maps a relocation key to its dotted path under home.
func homeEntry(home, key string) string {
	return filepath.Join(home, "."+key)
}

// Evacuate moves each owned entry out of home into the program's
// storage subfolder. Each key is moved with a single rename, not
// copy+delete, so an interruption never leaves a duplicated entry.
//
// The registry is authoritative: a source missing from home means the
// filesystem has drifted from the registry, and the run is aborted at
// that key. Entries moved before the failure stay in storage.
func Evacuate(fs types.FS, home, programDir string, keys []string) error {
	logger := logging.GetLogger("relocate")

	for _, key := range keys {
		src := homeEntry(home, key)
		dst := filepath.Join(programDir, key)

		if _, err := fs.Lstat(src); err != nil {
			if os.IsNotExist(err) {
				return errors.Newf(errors.ErrRegistryDrift,
					"registry references %s but it is missing from home", src).
					WithDetail("key", key)
			}
			return errors.Wrapf(err, errors.ErrHomeAccess, "failed to stat %s", src)
		}

		if err := fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrStorageAccess, "failed to create storage directory for %s", key)
		}

		if err := fs.Rename(src, dst); err != nil {
			return errors.Wrapf(err, errors.ErrEvacuate, "failed to move %s to storage", src)
		}

		logger.Debug().
			Str("key", key).
			Str("src", src).
			Str("dst", dst).
			Msg("Evacuated entry")
	}

	return nil
}

// Restore moves each owned entry from the program's storage subfolder
// back into home. A pre-flight pass checks every key before anything
// moves: a target already present in home aborts with a collision
// naming the key, and a source missing from storage aborts as drift.
// The collision case moves zero files, so the situation stays
// retryable after manual resolution.
func Restore(fs types.FS, home, programDir string, keys []string) error {
	logger := logging.GetLogger("relocate")

	for _, key := range keys {
		dst := homeEntry(home, key)
		if _, err := fs.Lstat(dst); err == nil {
			return errors.Newf(errors.ErrRestoreCollision,
				"%s already exists in home, not restoring anything", dst).
				WithDetail("key", key)
		} else if !os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrHomeAccess, "failed to stat %s", dst)
		}

		src := filepath.Join(programDir, key)
		if _, err := fs.Lstat(src); err != nil {
			if os.IsNotExist(err) {
				return errors.Newf(errors.ErrRegistryDrift,
					"registry references %s but it is missing from storage", src).
					WithDetail("key", key)
			}
			return errors.Wrapf(err, errors.ErrStorageAccess, "failed to stat %s", src)
		}
	}

	for _, key := range keys {
		src := filepath.Join(programDir, key)
		dst := homeEntry(home, key)

		if err := fs.Rename(src, dst); err != nil {
			return errors.Wrapf(err, errors.ErrStorageAccess, "failed to move %s back to home", src)
		}

		logger.Debug().
			Str("key", key).
			Str("src", src).
			Str("dst", dst).
			Msg("Restored entry")
	}

	return nil
}
