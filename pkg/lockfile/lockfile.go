// Package lockfile provides the advisory per-identity lock held around
// a wrapped run. Two concurrent invocations for the same program would
// race each other's moves and interleave registry writes; the second
// one fails fast instead.
package lockfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/undot/pkg/errors"
	"github.com/arthur-debert/undot/pkg/logging"
)

// Lock is a held advisory lock
type Lock struct {
	path string
}

// Acquire takes the lock at path, creating parent directories as
// needed. The lock file is created with O_EXCL so acquisition is
// atomic; it holds the owning pid for diagnostics.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStorageAccess, "failed to create lock directory")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			owner := "unknown"
			if data, readErr := os.ReadFile(path); readErr == nil {
				owner = strings.TrimSpace(string(data))
			}
			return nil, errors.Newf(errors.ErrLockHeld,
				"another undot run holds %s (pid %s); remove the file if that process is gone", path, owner)
		}
		return nil, errors.Wrapf(err, errors.ErrStorageAccess, "failed to create lock file %s", path)
	}

	_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())
	_ = f.Close()

	logger := logging.GetLogger("lockfile")
	logger.Debug().Str("path", path).Msg("Lock acquired")
	return &Lock{path: path}, nil
}

// Release removes the lock file. Safe to call once per acquired lock.
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrStorageAccess, "failed to remove lock file %s", l.path)
	}
	logger := logging.GetLogger("lockfile")
	logger.Debug().Str("path", l.path).Msg("Lock released")
	return nil
}
