package relocate_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/undot/pkg/errors"
	"github.com/arthur-debert/undot/pkg/relocate"
	"github.com/arthur-debert/undot/pkg/testutil"
)

const (
	home       = "/virtual/home"
	programDir = "/virtual/storage/programs/bar"
)

func TestEvacuate_MovesEntriesIntoStorage(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteHomeFile(".barrc", "settings")
	env.WriteHomeFile(".config/bar/bar.toml", "nested")

	err := relocate.Evacuate(env.FS, home, programDir, []string{"barrc", "config/bar"})

	require.NoError(t, err)
	assert.False(t, env.Exists(filepath.Join(home, ".barrc")))
	assert.False(t, env.Exists(filepath.Join(home, ".config/bar")))
	assert.True(t, env.Exists(filepath.Join(programDir, "barrc")))
	assert.True(t, env.Exists(filepath.Join(programDir, "config/bar/bar.toml")))

	data, err := env.FS.ReadFile(filepath.Join(programDir, "barrc"))
	require.NoError(t, err)
	assert.Equal(t, "settings", string(data))
}

func TestEvacuate_MissingSourceIsDrift(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	err := relocate.Evacuate(env.FS, home, programDir, []string{"barrc"})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRegistryDrift))
}

func TestRestore_MovesEntriesBackHome(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteStorageFile("bar", "barrc", "settings")

	err := relocate.Restore(env.FS, home, env.ProgramDir("bar"), []string{"barrc"})

	require.NoError(t, err)
	assert.True(t, env.Exists(filepath.Join(home, ".barrc")))
	assert.False(t, env.Exists(filepath.Join(env.ProgramDir("bar"), "barrc")))
}

func TestRestore_CollisionAbortsBeforeAnythingMoves(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteStorageFile("bar", "aaa", "1")
	env.WriteStorageFile("bar", "bbb", "2")
	env.WriteStorageFile("bar", "ccc", "3")
	// the second of three keys collides
	env.WriteHomeFile(".bbb", "user data")

	err := relocate.Restore(env.FS, home, env.ProgramDir("bar"), []string{"aaa", "bbb", "ccc"})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRestoreCollision))
	assert.Contains(t, err.Error(), ".bbb")

	// zero files moved: all three remain in storage, none new in home
	assert.True(t, env.Exists(filepath.Join(env.ProgramDir("bar"), "aaa")))
	assert.True(t, env.Exists(filepath.Join(env.ProgramDir("bar"), "bbb")))
	assert.True(t, env.Exists(filepath.Join(env.ProgramDir("bar"), "ccc")))
	assert.False(t, env.Exists(filepath.Join(home, ".aaa")))
	assert.False(t, env.Exists(filepath.Join(home, ".ccc")))

	// the colliding entry is untouched
	data, readErr := env.FS.ReadFile(filepath.Join(home, ".bbb"))
	require.NoError(t, readErr)
	assert.Equal(t, "user data", string(data))
}

func TestRestore_MissingStorageEntryIsDrift(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	err := relocate.Restore(env.FS, home, env.ProgramDir("bar"), []string{"barrc"})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRegistryDrift))
}

func TestEvacuateRestoreEvacuate_RoundTrip(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteHomeFile(".barrc", "settings")
	keys := []string{"barrc"}

	require.NoError(t, relocate.Evacuate(env.FS, home, programDir, keys))
	require.NoError(t, relocate.Restore(env.FS, home, programDir, keys))
	require.NoError(t, relocate.Evacuate(env.FS, home, programDir, keys))

	// storage contents identical to the state after the first evacuate
	assert.False(t, env.Exists(filepath.Join(home, ".barrc")))
	data, err := env.FS.ReadFile(filepath.Join(programDir, "barrc"))
	require.NoError(t, err)
	assert.Equal(t, "settings", string(data))
}
