package main

import (
	"github.com/spf13/cobra"

	"aita/internal/core"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate test_pack.json and test_pack.md",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}
	addGenerateFlags(cmd, opts)
	return cmd
}

func addGenerateFlags(cmd *cobra.Command, opts *rootOptions) {
	cmd.Flags().StringVar(&opts.input, "input", core.DefaultInput, "Requirements CSV file")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", core.DefaultOutDir, "Output directory")
	cmd.Flags().BoolVar(&opts.enableAI, "enable-ai", false, "Enable the suggestion source (needs OPENAI_API_KEY)")
}

// runGenerate applies flag overrides to the loaded config and runs the
// pipeline. Flags win only when set explicitly.
func runGenerate(cmd *cobra.Command, opts *rootOptions) error {
	cfg := *opts.cfg
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = opts.input
	}
	if flags.Changed("out-dir") {
		cfg.OutDir = opts.outDir
	}
	if flags.Changed("enable-ai") {
		cfg.EnableAI = opts.enableAI
	}

	ctx := cmd.Context()
	orch := core.NewOrchestratorFromConfig(ctx, &cfg, opts.logger)
	report, err := orch.Run(ctx, core.RunOptions{Input: cfg.Input, OutDir: cfg.OutDir})
	if err != nil {
		return err
	}

	cmd.Printf("Generated %d test cases from %d requirements (%d suggested ideas)\n",
		report.TestCases, report.Requirements, report.SuggestedIdeas)
	for _, p := range report.Paths {
		cmd.Printf("  %s\n", p)
	}
	return nil
}
