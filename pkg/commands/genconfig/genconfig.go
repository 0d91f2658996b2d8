// Package genconfig renders the default configuration as TOML, ready
// to be saved as the user config file.
package genconfig

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/undot/pkg/config"
	"github.com/arthur-debert/undot/pkg/errors"
)

const header = `# undot configuration.
# Place this file at $XDG_CONFIG_HOME/undot/config.toml.
# Every value can also be set with an UNDOT_* environment variable,
# e.g. UNDOT_STORAGE_DIR.

`

// Render returns the default configuration serialized as TOML
func Render() (string, error) {
	data, err := toml.Marshal(config.Default())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal default config")
	}
	return header + string(data), nil
}
