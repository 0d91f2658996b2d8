// Package config loads undot's configuration. Layering, lowest to
// highest precedence: embedded defaults, the user config file, then
// UNDOT_* environment variables. Command-line flags are applied on top
// by the command layer.
package config

import (
	_ "embed"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/undot/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix for configuration environment variables,
// e.g. UNDOT_STORAGE_DIR maps to storage_dir.
const EnvPrefix = "UNDOT_"

// Config is the resolved undot configuration
type Config struct {
	// StorageDir overrides the XDG data directory as the storage root
	StorageDir string `koanf:"storage_dir" toml:"storage_dir"`

	// Ignore lists dotfile names (with their leading dot) that are
	// never adopted at discovery time
	Ignore []string `koanf:"ignore" toml:"ignore"`

	// PropagateExit makes undot exit with the wrapped program's exit
	// code instead of always 0
	PropagateExit bool `koanf:"propagate_exit" toml:"propagate_exit"`
}

// Default returns the built-in configuration
func Default() *Config {
	cfg, err := load("")
	if err != nil {
		// The embedded defaults are compiled in; a parse failure here
		// is a build defect.
		panic(err)
	}
	return cfg
}

// Load resolves the configuration, reading the user config file at
// configPath if it exists.
func Load(configPath string) (*Config, error) {
	return load(configPath)
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default config")
	}

	// 2. User config file, if present
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", configPath)
			}
		}
	}

	// 3. Environment variables (UNDOT_STORAGE_DIR -> storage_dir).
	// UNDOT_DATA_DIR and UNDOT_CONFIG_DIR are path plumbing handled by
	// pkg/paths, not configuration keys.
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		switch key {
		case "data_dir", "config_dir":
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load config from environment")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}

	return &cfg, nil
}

// Ignored reports whether a dotted home entry name (e.g. ".cache") is
// excluded from discovery.
func (c *Config) Ignored(name string) bool {
	for _, ignored := range c.Ignore {
		if name == ignored {
			return true
		}
	}
	return false
}
