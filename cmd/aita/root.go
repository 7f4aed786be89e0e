package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"aita/internal/core"
)

// errUnhealthy fails env-check without an error message.
var errUnhealthy = errors.New("environment is not healthy")

type rootOptions struct {
	configPath string
	verbose    bool

	input    string
	outDir   string
	enableAI bool

	cfg    *core.Config
	logger core.Logger
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return core.ExitOK
	case errors.Is(err, errUnhealthy):
		return core.ExitUnexpected
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return core.ExitCode(err)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "aita",
		Short: "Generate a deterministic test pack from requirements",
		Long: `aita reads requirements from a CSV file, expands each one into
checklist test ideas (plus an optional suggestion), and writes the
resulting test pack as test_pack.json and test_pack.md.

Running aita without a subcommand is the same as "aita generate".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := core.LoadConfig(opts.configPath)
			if err != nil {
				return &core.InputError{Path: opts.configPath, Err: err}
			}
			if opts.verbose {
				cfg.LogLevel = "debug"
			}
			opts.cfg = cfg
			opts.logger = core.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.logger != nil {
				core.Sync(opts.logger)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"YAML config file (default $"+core.ConfigEnv+")")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	addGenerateFlags(cmd, opts)

	cmd.AddCommand(
		newGenerateCmd(opts),
		newEnvCheckCmd(),
		newPreviewCmd(),
	)
	return cmd
}
