package genconfig_test

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/undot/pkg/commands/genconfig"
	"github.com/arthur-debert/undot/pkg/config"
)

func TestRender_ContainsAllFields(t *testing.T) {
	out, err := genconfig.Render()

	require.NoError(t, err)
	assert.Contains(t, out, "storage_dir")
	assert.Contains(t, out, "ignore")
	assert.Contains(t, out, "propagate_exit")
}

func TestRender_RoundTripsThroughTOML(t *testing.T) {
	out, err := genconfig.Render()
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, toml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, config.Default(), &cfg)
}
