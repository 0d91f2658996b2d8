package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/undot/internal/version"
	"github.com/arthur-debert/undot/pkg/commands/wrap"
	"github.com/arthur-debert/undot/pkg/config"
	"github.com/arthur-debert/undot/pkg/logging"
	"github.com/arthur-debert/undot/pkg/output"
	"github.com/arthur-debert/undot/pkg/paths"
	"github.com/arthur-debert/undot/pkg/types"
)

// Execute runs the root command and returns the process exit code:
// the wrapped program's exit code on success, 1 on any tool failure.
func Execute() int {
	exitCode := 0
	rootCmd := NewRootCmd(&exitCode)
	if err := rootCmd.Execute(); err != nil {
		output.Errorf(os.Stderr, "%v", err)
		return 1
	}
	return exitCode
}

// NewRootCmd creates and returns the root command. The root command
// itself is the wrap operation; bookkeeping lives in subcommands.
func NewRootCmd(exitCode *int) *cobra.Command {
	var (
		verbosity  int
		identity   string
		storageDir string
	)

	rootCmd := &cobra.Command{
		Use:     "undot [flags] <program> [args...]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			result, err := wrap.Run(wrap.Options{
				Program:    args[0],
				Args:       args[1:],
				Identity:   identity,
				StorageDir: storageDir,
				Config:     cfg,
			})
			if err != nil {
				return err
			}

			if result.FirstRun {
				reportFirstRun(result)
			}
			if exitCode != nil && cfg.PropagateExit {
				*exitCode = result.ExitCode
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Everything after the program name belongs to the child program;
	// stop flag parsing at the first positional.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.Flags().StringVarP(&identity, "name", "n", "", MsgFlagName)
	rootCmd.PersistentFlags().StringVar(&storageDir, "storage-dir", "", MsgFlagStorageDir)

	rootCmd.AddCommand(newListCmd(&storageDir))
	rootCmd.AddCommand(newForgetCmd(&storageDir))
	rootCmd.AddCommand(newGenconfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// reportFirstRun prints what discovery found, on stderr so the child
// program's stdout stays untouched.
func reportFirstRun(result *types.WrapResult) {
	if result.NoOp {
		output.Warnf(os.Stderr, "%s created no new dotfiles; nothing recorded", output.Subject.Render(result.Identity))
		return
	}
	output.Successf(os.Stderr, "adopted %d dotfile(s) for %s", len(result.Discovered), output.Subject.Render(result.Identity))
	for _, key := range result.Discovered {
		fmt.Fprintln(os.Stderr, "  "+output.Dim.Render("."+key))
	}
}

// loadConfig resolves the user config file location and loads the
// layered configuration.
func loadConfig() (*config.Config, error) {
	p, err := paths.New("")
	if err != nil {
		return nil, err
	}
	return config.Load(p.ConfigFilePath())
}
