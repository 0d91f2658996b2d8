package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/undot/pkg/paths"
)

func TestNew_ExplicitStorageRoot(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := paths.New("/explicit/storage")

	require.NoError(t, err)
	assert.Equal(t, "/explicit/storage", p.StorageRoot())
}

func TestNew_EnvOverrideForStorageRoot(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("UNDOT_DATA_DIR", "/env/storage")

	p, err := paths.New("")

	require.NoError(t, err)
	assert.Equal(t, "/env/storage", p.StorageRoot())
}

func TestNew_ExplicitRootBeatsEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("UNDOT_DATA_DIR", "/env/storage")

	p, err := paths.New("/explicit")

	require.NoError(t, err)
	assert.Equal(t, "/explicit", p.StorageRoot())
}

func TestStorageLayout(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := paths.New("/storage")
	require.NoError(t, err)

	assert.Equal(t, "/storage/registry", p.RegistryPath())
	assert.Equal(t, "/storage/programs", p.ProgramsDir())
	assert.Equal(t, "/storage/programs/bar", p.ProgramDir("bar"))
	assert.Equal(t, "/storage/locks/bar.lock", p.LockPath("bar"))
}

func TestHomeAndStorageEntries(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := paths.New("/storage")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".barrc"), p.HomeEntry("barrc"))
	assert.Equal(t, filepath.Join(home, ".config/foo"), p.HomeEntry("config/foo"))
	assert.Equal(t, "/storage/programs/bar/config/foo", p.StorageEntry("bar", "config/foo"))
}

func TestConfigDir_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("UNDOT_CONFIG_DIR", "/custom/config")

	p, err := paths.New("")

	require.NoError(t, err)
	assert.Equal(t, "/custom/config", p.ConfigDir())
	assert.Equal(t, "/custom/config/config.toml", p.ConfigFilePath())
}

func TestLogFilePath_RespectsXDGStateHome(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", "/state")

	p, err := paths.New("")

	require.NoError(t, err)
	assert.Equal(t, "/state/undot/undot.log", p.LogFilePath())
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "x"), paths.ExpandHome("~/x"))
	assert.Equal(t, home, paths.ExpandHome("~"))
	assert.Equal(t, "/abs/path", paths.ExpandHome("/abs/path"))
	assert.Equal(t, "~other/x", paths.ExpandHome("~other/x"))
}
