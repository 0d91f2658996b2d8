package list_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/undot/pkg/commands/list"
	"github.com/arthur-debert/undot/pkg/registry"
	"github.com/arthur-debert/undot/pkg/testutil"
	"github.com/arthur-debert/undot/pkg/types"
)

func TestPrograms_EmptyRegistry(t *testing.T) {
	_ = testutil.NewTestEnvironment(t, testutil.EnvIsolated)

	records, err := list.Programs(list.Options{})

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPrograms_ReturnsRecords(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	store := registry.New(env.FS, env.RegistryPath())
	require.NoError(t, store.Persist("zsh", []string{"zshrc", "zprofile"}))
	require.NoError(t, store.Persist("bash", []string{"bashrc"}))

	records, err := list.Programs(list.Options{})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "bash", records[0].Identity)
	assert.Equal(t, []string{"zshrc", "zprofile"}, records[1].Keys)
}

func TestRenderTable(t *testing.T) {
	out, err := list.RenderTable([]types.Program{
		{Identity: "bar", Keys: []string{"barrc", "config/bar"}},
	})

	require.NoError(t, err)
	assert.Contains(t, out, "bar")
	assert.Contains(t, out, "barrc, config/bar")
}
