package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/undot/pkg/errors"
	"github.com/arthur-debert/undot/pkg/filesystem"
	"github.com/arthur-debert/undot/pkg/registry"
	"github.com/arthur-debert/undot/pkg/types"
)

const registryPath = "/storage/registry"

func newStore(t *testing.T) (*registry.Store, types.FS) {
	t.Helper()
	fs := filesystem.NewMemory()
	return registry.New(fs, registryPath), fs
}

func TestLookup_MissingFileIsNotAnError(t *testing.T) {
	store, _ := newStore(t)

	keys, found, err := store.Lookup("foo")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, keys)
}

func TestPersistLookup_RoundTrip(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Persist("bar", []string{"a", "b", "c"}))

	keys, found, err := store.Lookup("bar")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestPersist_CanonicalLineFormat(t *testing.T) {
	store, fs := newStore(t)

	require.NoError(t, store.Persist("bar", []string{"barrc"}))

	data, err := fs.ReadFile(registryPath)
	require.NoError(t, err)
	assert.Equal(t, "bar;barrc;\n", string(data))
}

func TestPersist_FileKeptSorted(t *testing.T) {
	store, fs := newStore(t)

	require.NoError(t, store.Persist("zsh", []string{"zshrc"}))
	require.NoError(t, store.Persist("bash", []string{"bashrc"}))
	require.NoError(t, store.Persist("mutt", []string{"muttrc"}))

	data, err := fs.ReadFile(registryPath)
	require.NoError(t, err)
	assert.Equal(t, "bash;bashrc;\nmutt;muttrc;\nzsh;zshrc;\n", string(data))
}

func TestPersist_UpsertReplacesExistingRecord(t *testing.T) {
	store, fs := newStore(t)

	require.NoError(t, store.Persist("bar", []string{"old"}))
	require.NoError(t, store.Persist("bar", []string{"new", "extra"}))

	keys, found, err := store.Lookup("bar")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"new", "extra"}, keys)

	// No stale duplicate line accumulates
	data, err := fs.ReadFile(registryPath)
	require.NoError(t, err)
	assert.Equal(t, "bar;new;extra;\n", string(data))
}

func TestLookup_FirstMatchWinsOnHandEditedDuplicates(t *testing.T) {
	store, fs := newStore(t)
	require.NoError(t, fs.MkdirAll("/storage", 0755))
	require.NoError(t, fs.WriteFile(registryPath, []byte("bar;first;\nbar;second;\n"), 0644))

	keys, found, err := store.Lookup("bar")

	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"first"}, keys)
}

func TestParseLine_TrailingEmptyFieldTolerated(t *testing.T) {
	rec, err := registry.ParseLine("bar;config/foo;barrc;")

	require.NoError(t, err)
	assert.Equal(t, "bar", rec.Identity)
	assert.Equal(t, []string{"config/foo", "barrc"}, rec.Keys)
}

func TestFormatLine_TrailingSeparator(t *testing.T) {
	line := registry.FormatLine(types.Program{Identity: "bar", Keys: []string{"a", "b"}})

	assert.Equal(t, "bar;a;b;", line)
}

func TestPersist_RejectsInvalidInput(t *testing.T) {
	store, _ := newStore(t)

	assert.Error(t, store.Persist("", []string{"a"}))
	assert.Error(t, store.Persist("with;separator", []string{"a"}))
	assert.Error(t, store.Persist("bar", nil))
	assert.Error(t, store.Persist("bar", []string{""}))
	assert.Error(t, store.Persist("bar", []string{"a;b"}))
	assert.Error(t, store.Persist("bar", []string{"a", "a"}))
}

func TestValidateIdentity_RejectsPathSeparators(t *testing.T) {
	assert.Error(t, registry.ValidateIdentity("usr/bin/foo"))
	assert.NoError(t, registry.ValidateIdentity("foo"))
}

func TestRemove(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Persist("bar", []string{"barrc"}))
	require.NoError(t, store.Persist("baz", []string{"bazrc"}))

	found, err := store.Remove("bar")
	require.NoError(t, err)
	assert.True(t, found)

	_, stillThere, err := store.Lookup("bar")
	require.NoError(t, err)
	assert.False(t, stillThere)

	keys, kept, err := store.Lookup("baz")
	require.NoError(t, err)
	assert.True(t, kept)
	assert.Equal(t, []string{"bazrc"}, keys)
}

func TestRemove_AbsentIdentity(t *testing.T) {
	store, _ := newStore(t)

	found, err := store.Remove("ghost")

	require.NoError(t, err)
	assert.False(t, found)
}

func TestList_FileOrder(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Persist("zsh", []string{"zshrc"}))
	require.NoError(t, store.Persist("bash", []string{"bashrc"}))

	records, err := store.List()

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "bash", records[0].Identity)
	assert.Equal(t, "zsh", records[1].Identity)
}

func TestErrors_CarryCodes(t *testing.T) {
	store, _ := newStore(t)

	err := store.Persist("", []string{"a"})

	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
