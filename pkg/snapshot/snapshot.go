// Package snapshot implements first-run discovery: capturing the set
// of top-level home directory entries and computing which dotfiles a
// program created between two captures.
package snapshot

import (
	"sort"
	"strings"

	"github.com/arthur-debert/undot/pkg/errors"
	"github.com/arthur-debert/undot/pkg/types"
)

// Set is a point-in-time capture of the immediate children of a
// directory, keyed by entry name.
type Set map[string]struct{}

// Take lists the immediate children of home (depth exactly 1, dotfiles
// included). It is a pure read with no side effects.
func Take(fs types.FS, home string) (Set, error) {
	entries, err := fs.ReadDir(home)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrHomeAccess, "failed to list home directory %s", home)
	}

	set := make(Set, len(entries))
	for _, entry := range entries {
		set[entry.Name()] = struct{}{}
	}
	return set, nil
}

// Diff computes the relocation keys for entries present in after but
// absent in before. This is a true set difference over entry names, so
// the result does not depend on listing order. Only dot-prefixed
// entries are kept; names matched by ignore are dropped; the leading
// dot is stripped; the result is sorted for deterministic persistence.
//
// An empty result is not an error: it means the program created no new
// dotfiles and the run is a no-op for the caller.
func Diff(before, after Set, ignore func(name string) bool) []string {
	var keys []string
	for name := range after {
		if _, ok := before[name]; ok {
			continue
		}
		if !strings.HasPrefix(name, ".") {
			continue
		}
		if ignore != nil && ignore(name) {
			continue
		}
		key := strings.TrimPrefix(name, ".")
		if key == "" {
			continue
		}
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys
}
