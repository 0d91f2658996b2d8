// Package paths provides centralized path handling for undot.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/undot/pkg/errors"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory for undot
	EnvDataDir = "UNDOT_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for undot
	EnvConfigDir = "UNDOT_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
// IMPORTANT: These constants define undot's storage layout and are NOT
// user-configurable. The registry format and the programs/ subtree are
// an on-disk contract; changing them strands previously relocated files.
const (
	// UndotDirName is the directory name for undot-specific files
	UndotDirName = "undot"

	// RegistryFileName is the name of the registry file inside the storage root
	RegistryFileName = "registry"

	// ProgramsDirName is the subdirectory holding relocated program payloads
	ProgramsDirName = "programs"

	// LocksDirName is the subdirectory holding per-identity lock files
	LocksDirName = "locks"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "undot.log"
)

// Paths provides centralized path management for undot
type Paths struct {
	home        string
	storageRoot string
	xdgConfig   string
	xdgState    string
}

// New creates a new Paths instance. If storageRoot is empty it is
// resolved from UNDOT_DATA_DIR or the XDG data directory.
func New(storageRoot string) (*Paths, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return nil, err
	}

	p := &Paths{home: home}

	switch {
	case storageRoot != "":
		p.storageRoot = expandHome(storageRoot)
	case os.Getenv(EnvDataDir) != "":
		p.storageRoot = expandHome(os.Getenv(EnvDataDir))
	default:
		p.storageRoot = filepath.Join(xdg.DataHome, UndotDirName)
	}

	absRoot, err := filepath.Abs(p.storageRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStorageAccess, "failed to get absolute path for storage root")
	}
	p.storageRoot = absRoot

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, UndotDirName)
	}

	// XDG state dir, for the log file
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, UndotDirName)
	} else {
		p.xdgState = filepath.Join(home, ".local", "state", UndotDirName)
	}

	return p, nil
}

// HomeDir returns the user's home directory
func (p *Paths) HomeDir() string {
	return p.home
}

// StorageRoot returns the root of undot's storage area
func (p *Paths) StorageRoot() string {
	return p.storageRoot
}

// RegistryPath returns the path to the registry file
func (p *Paths) RegistryPath() string {
	return filepath.Join(p.storageRoot, RegistryFileName)
}

// ProgramsDir returns the directory holding all relocated payloads
func (p *Paths) ProgramsDir() string {
	return filepath.Join(p.storageRoot, ProgramsDirName)
}

// ProgramDir returns the private storage subfolder for one identity
func (p *Paths) ProgramDir(identity string) string {
	return filepath.Join(p.ProgramsDir(), identity)
}

// LocksDir returns the directory holding advisory lock files
func (p *Paths) LocksDir() string {
	return filepath.Join(p.storageRoot, LocksDirName)
}

// LockPath returns the advisory lock file path for one identity
func (p *Paths) LockPath(identity string) string {
	return filepath.Join(p.LocksDir(), identity+".lock")
}

// ConfigDir returns the XDG config directory for undot
func (p *Paths) ConfigDir() string {
	return p.xdgConfig
}

// ConfigFilePath returns the path to the user configuration file
func (p *Paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// LogFilePath returns the path to the undot log file.
// Respects XDG_STATE_HOME if set.
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// HomeEntry maps a relocation key back to its dotted path under home,
// e.g. "config/foo" -> <home>/.config/foo.
func (p *Paths) HomeEntry(key string) string {
	return filepath.Join(p.home, "."+key)
}

// StorageEntry maps a relocation key to its payload path in storage.
func (p *Paths) StorageEntry(identity, key string) string {
	return filepath.Join(p.ProgramDir(identity), key)
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Try the HOME environment variable as a fallback
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrHomeAccess, "failed to get home directory")
	}
	return homeDir, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}
