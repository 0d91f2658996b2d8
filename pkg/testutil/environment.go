// Package testutil provides test environments for undot: an isolated
// real-filesystem environment rooted in a temp directory, and a pure
// in-memory one for engine-level tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/undot/pkg/filesystem"
	"github.com/arthur-debert/undot/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides an isolated home and storage root
type TestEnvironment struct {
	HomeDir     string
	StorageRoot string
	FS          types.FS
	Type        EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment. For EnvIsolated
// the HOME and UNDOT_DATA_DIR environment variables point into a temp
// directory so the paths package resolves into it.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.HomeDir = "/virtual/home"
		env.StorageRoot = "/virtual/storage"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		tempDir := t.TempDir()
		env.HomeDir = filepath.Join(tempDir, "home")
		env.StorageRoot = filepath.Join(tempDir, "storage")
		env.FS = filesystem.NewOS()
		t.Setenv("HOME", env.HomeDir)
		t.Setenv("UNDOT_DATA_DIR", env.StorageRoot)
		t.Setenv("UNDOT_CONFIG_DIR", filepath.Join(tempDir, "config"))
		t.Setenv("XDG_STATE_HOME", filepath.Join(tempDir, "state"))
	}

	if err := env.FS.MkdirAll(env.HomeDir, 0755); err != nil {
		t.Fatalf("failed to create test home: %v", err)
	}

	return env
}

// WriteHomeFile creates a file directly under the test home directory
func (env *TestEnvironment) WriteHomeFile(name, content string) string {
	env.t.Helper()
	path := filepath.Join(env.HomeDir, name)
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("failed to create parent for %s: %v", name, err)
	}
	if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// WriteStorageFile creates a file under a program's storage subfolder
func (env *TestEnvironment) WriteStorageFile(identity, key, content string) string {
	env.t.Helper()
	path := filepath.Join(env.StorageRoot, "programs", identity, key)
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("failed to create parent for %s: %v", key, err)
	}
	if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("failed to write %s: %v", key, err)
	}
	return path
}

// RegistryPath returns the registry file location for this environment
func (env *TestEnvironment) RegistryPath() string {
	return filepath.Join(env.StorageRoot, "registry")
}

// ProgramDir returns the storage subfolder for one identity
func (env *TestEnvironment) ProgramDir(identity string) string {
	return filepath.Join(env.StorageRoot, "programs", identity)
}

// Exists reports whether a path exists in the environment's filesystem
func (env *TestEnvironment) Exists(path string) bool {
	env.t.Helper()
	_, err := env.FS.Lstat(path)
	return err == nil
}
