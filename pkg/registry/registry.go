// Package registry implements the persistent program -> pathset store.
//
// The on-disk format is one record per line:
//
//	<identity>;<key1>;<key2>;...;<keyN>;
//
// with a trailing separator. The file is plain UTF-8 text, kept sorted
// lexicographically by full line after every write, with no header or
// versioning. Empty trailing fields are tolerated on read. Persist
// replaces any existing record for the same identity, so the file
// holds at most one record per program.
package registry

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/undot/pkg/errors"
	"github.com/arthur-debert/undot/pkg/logging"
	"github.com/arthur-debert/undot/pkg/types"
)

// Separator is the field separator in registry records. Identities and
// keys must never contain it.
const Separator = ";"

// Store reads and writes the registry file
type Store struct {
	fs   types.FS
	path string
}

// New creates a Store for the registry file at path
func New(fs types.FS, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the registry file location
func (s *Store) Path() string {
	return s.path
}

// Lookup returns the pathset recorded for identity. A missing registry
// file or a missing record is not an error; found is false. When the
// file holds duplicate records for one identity (hand-edited files),
// the first match wins.
func (s *Store) Lookup(identity string) (keys []string, found bool, err error) {
	records, err := s.load()
	if err != nil {
		return nil, false, err
	}

	for _, rec := range records {
		if rec.Identity == identity {
			return rec.Keys, true, nil
		}
	}
	return nil, false, nil
}

// List returns every record in file order
func (s *Store) List() ([]types.Program, error) {
	return s.load()
}

// Persist records the pathset for identity, replacing any existing
// record for the same identity, and rewrites the file sorted. The
// registry file and its parent directory are created on first use.
func (s *Store) Persist(identity string, keys []string) error {
	logger := logging.GetLogger("registry")

	if err := ValidateIdentity(identity); err != nil {
		return err
	}
	if len(keys) == 0 {
		return errors.Newf(errors.ErrInvalidInput, "refusing to persist empty pathset for %q", identity)
	}
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if err := validateKey(key); err != nil {
			return err
		}
		if _, dup := seen[key]; dup {
			return errors.Newf(errors.ErrInvalidInput, "duplicate relocation key %q for %q", key, identity)
		}
		seen[key] = struct{}{}
	}

	records, err := s.load()
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, rec := range records {
		if rec.Identity != identity {
			kept = append(kept, rec)
		}
	}
	kept = append(kept, types.Program{Identity: identity, Keys: keys})

	if err := s.write(kept); err != nil {
		return err
	}

	logger.Debug().
		Str("identity", identity).
		Strs("keys", keys).
		Msg("Persisted pathset")
	return nil
}

// Remove deletes the record for identity. Removing an absent identity
// is reported via found so callers can distinguish it.
func (s *Store) Remove(identity string) (found bool, err error) {
	records, err := s.load()
	if err != nil {
		return false, err
	}

	kept := records[:0]
	for _, rec := range records {
		if rec.Identity == identity {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return false, nil
	}

	return true, s.write(kept)
}

// load reads and parses the registry file. A missing file yields an
// empty record list.
func (s *Store) load() ([]types.Program, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrRegistryLoad, "failed to read registry %s", s.path)
	}

	var records []types.Program
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// write serializes records sorted by full line text and rewrites the
// registry file, creating its directory if needed.
func (s *Store) write(records []types.Program) error {
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, FormatLine(rec))
	}
	sort.Strings(lines)

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStorageAccess, "failed to create storage root for registry")
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if err := s.fs.WriteFile(s.path, []byte(b.String()), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrRegistryWrite, "failed to write registry %s", s.path)
	}
	return nil
}

// ParseLine parses one registry record. The first field is the
// identity, remaining non-empty fields are relocation keys in order;
// the trailing empty field produced by the trailing separator is
// tolerated.
func ParseLine(line string) (types.Program, error) {
	fields := strings.Split(line, Separator)
	if len(fields) == 0 || fields[0] == "" {
		return types.Program{}, errors.Newf(errors.ErrRegistryLoad, "malformed registry line %q", line)
	}

	rec := types.Program{Identity: fields[0]}
	for _, field := range fields[1:] {
		if field == "" {
			continue
		}
		rec.Keys = append(rec.Keys, field)
	}
	return rec, nil
}

// FormatLine renders one record in the canonical on-disk form,
// including the trailing separator.
func FormatLine(rec types.Program) string {
	return rec.Identity + Separator + strings.Join(rec.Keys, Separator) + Separator
}

// ValidateIdentity checks the program identity invariants: non-empty,
// no separator, no path separators.
func ValidateIdentity(identity string) error {
	if identity == "" {
		return errors.New(errors.ErrInvalidInput, "program identity must not be empty")
	}
	if strings.Contains(identity, Separator) {
		return errors.Newf(errors.ErrInvalidInput, "program identity %q must not contain %q", identity, Separator)
	}
	if strings.ContainsAny(identity, "/\\") {
		return errors.Newf(errors.ErrInvalidInput, "program identity %q must not contain path separators", identity)
	}
	return nil
}

func validateKey(key string) error {
	if key == "" {
		return errors.New(errors.ErrInvalidInput, "relocation key must not be empty")
	}
	if strings.Contains(key, Separator) {
		return errors.Newf(errors.ErrInvalidInput, "relocation key %q must not contain %q", key, Separator)
	}
	return nil
}
