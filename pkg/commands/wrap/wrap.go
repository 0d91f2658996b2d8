// Package wrap implements the core undot operation: run a program with
// its relocated dotfiles put back in place, then move them out of home
// again once it exits.
//
// The flow for one invocation is a small state machine:
//
//	START -> LOOKUP -> {DISCOVER | RESTORE} -> RUN -> EVACUATE -> DONE
//
// First run (DISCOVER): snapshot home, run the program, snapshot again,
// diff the two snapshots to find the dotfiles it created, persist that
// pathset, evacuate. Later runs (RESTORE): restore the known pathset
// into home, run, evacuate. Both paths converge on EVACUATE so home is
// left clean regardless of which path was taken.
package wrap

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/undot/pkg/config"
	"github.com/arthur-debert/undot/pkg/errors"
	"github.com/arthur-debert/undot/pkg/filesystem"
	"github.com/arthur-debert/undot/pkg/lockfile"
	"github.com/arthur-debert/undot/pkg/logging"
	"github.com/arthur-debert/undot/pkg/paths"
	"github.com/arthur-debert/undot/pkg/registry"
	"github.com/arthur-debert/undot/pkg/relocate"
	"github.com/arthur-debert/undot/pkg/snapshot"
	"github.com/arthur-debert/undot/pkg/types"
)

// Options holds options for the wrap command
type Options struct {
	// Program is the name or path of the program to run
	Program string

	// Args are passed through to the program verbatim
	Args []string

	// Identity overrides the default program identity (the basename of
	// Program)
	Identity string

	// StorageDir overrides the storage root
	StorageDir string

	// Config is the resolved configuration; loaded from the default
	// locations when nil
	Config *config.Config

	// FileSystem allows injecting a filesystem for testing
	FileSystem types.FS

	// Child process streams; default to this process's own
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// RunChild allows tests to substitute the child execution. It
	// receives the resolved program path and must return the child's
	// exit code.
	RunChild func(program string, args []string) (int, error)

	// SkipLock disables the advisory lock, for in-memory tests
	SkipLock bool
}

// Run executes one wrapped invocation of the target program
func Run(opts Options) (*types.WrapResult, error) {
	logger := logging.GetLogger("commands.wrap")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	cfg := opts.Config
	if cfg == nil {
		loaded, err := loadConfig()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	storageDir := opts.StorageDir
	if storageDir == "" {
		storageDir = cfg.StorageDir
	}
	p, err := paths.New(storageDir)
	if err != nil {
		return nil, err
	}

	identity := opts.Identity
	if identity == "" {
		identity = filepath.Base(opts.Program)
	}
	if err := registry.ValidateIdentity(identity); err != nil {
		return nil, err
	}

	// Resolve the target before any state mutation
	programPath, err := exec.LookPath(opts.Program)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrProgramNotFound, "program %q not found", opts.Program)
	}

	logger.Info().
		Str("identity", identity).
		Str("program", programPath).
		Str("storage", p.StorageRoot()).
		Msg("Wrapping program")

	// Hold the per-identity advisory lock for the whole state machine.
	// Concurrent invocations for the same identity would race each
	// other's moves.
	if !opts.SkipLock {
		lock, err := lockfile.Acquire(p.LockPath(identity))
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn().Err(err).Msg("Failed to release lock")
			}
		}()
	}

	store := registry.New(fs, p.RegistryPath())
	keys, found, err := store.Lookup(identity)
	if err != nil {
		return nil, err
	}

	runChild := opts.RunChild
	if runChild == nil {
		runChild = func(program string, args []string) (int, error) {
			return runChildProcess(program, args, opts.Stdin, opts.Stdout, opts.Stderr)
		}
	}

	if !found {
		return discover(fs, cfg, p, store, logger, identity, programPath, opts.Args, runChild)
	}

	logger.Debug().Strs("keys", keys).Msg("Known program, restoring pathset")

	if err := relocate.Restore(fs, p.HomeDir(), p.ProgramDir(identity), keys); err != nil {
		return nil, err
	}

	exitCode, childErr := runChild(programPath, opts.Args)

	// Home must be cleaned up even when the child failed to start,
	// otherwise the restored files would be stranded there.
	if err := relocate.Evacuate(fs, p.HomeDir(), p.ProgramDir(identity), keys); err != nil {
		if childErr != nil {
			logger.Error().Err(childErr).Msg("Child failed and evacuation also failed")
		}
		return nil, err
	}
	if childErr != nil {
		return nil, childErr
	}

	return &types.WrapResult{Identity: identity, ExitCode: exitCode}, nil
}

// discover handles the first run of a program: diff home snapshots
// around the run to learn which dotfiles it owns, then adopt them.
func discover(fs types.FS, cfg *config.Config, p *paths.Paths, store *registry.Store,
	logger zerolog.Logger, identity, programPath string, args []string,
	runChild func(string, []string) (int, error)) (*types.WrapResult, error) {

	logger.Debug().Str("identity", identity).Msg("Unknown program, running discovery")

	before, err := snapshot.Take(fs, p.HomeDir())
	if err != nil {
		return nil, err
	}

	exitCode, childErr := runChild(programPath, args)
	if childErr != nil {
		return nil, childErr
	}

	after, err := snapshot.Take(fs, p.HomeDir())
	if err != nil {
		return nil, err
	}

	keys := snapshot.Diff(before, after, cfg.Ignored)
	if len(keys) == 0 {
		// The program created no new dotfiles: nothing to persist,
		// nothing to evacuate.
		logger.Info().Str("identity", identity).Msg("No new dotfiles found, nothing to do")
		return &types.WrapResult{
			Identity: identity,
			FirstRun: true,
			NoOp:     true,
			ExitCode: exitCode,
		}, nil
	}

	logger.Info().Strs("keys", keys).Msg("Discovered new dotfiles")

	if err := store.Persist(identity, keys); err != nil {
		return nil, err
	}

	if err := relocate.Evacuate(fs, p.HomeDir(), p.ProgramDir(identity), keys); err != nil {
		return nil, err
	}

	return &types.WrapResult{
		Identity:   identity,
		Discovered: keys,
		FirstRun:   true,
		ExitCode:   exitCode,
	}, nil
}

// loadConfig resolves the config file location and loads configuration
func loadConfig() (*config.Config, error) {
	p, err := paths.New("")
	if err != nil {
		return nil, err
	}
	return config.Load(p.ConfigFilePath())
}

// runChildProcess runs the target program, blocking until it exits.
// The child inherits this process's environment and, by default, its
// standard streams. A non-zero exit is not an error here; the code is
// reported back so the caller can propagate it.
func runChildProcess(program string, args []string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	cmd := exec.Command(program, args...)

	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	logger := logging.GetLogger("commands.wrap")
	logger.Debug().
		Str("program", program).
		Strs("args", args).
		Msg("Launching child process")

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return 0, errors.Wrapf(err, errors.ErrChildStart, "failed to run %s", program)
	}
	return 0, nil
}
