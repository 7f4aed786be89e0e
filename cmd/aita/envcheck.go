package main

import (
	"time"

	"github.com/spf13/cobra"

	"aita/internal/healthcheck"
)

func newEnvCheckCmd() *cobra.Command {
	var (
		mdOut       string
		jsonOut     string
		printReport bool
	)

	cmd := &cobra.Command{
		Use:   "env-check",
		Short: "Report on the runtime environment",
		Long: `Collects the Go runtime, OS and project layout into a healthcheck
report. Exits with status 2 when no project root (go.mod) is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := healthcheck.Collect("", time.Now())
			if err != nil {
				return err
			}

			md := healthcheck.RenderMarkdown(info)
			if mdOut != "" {
				if err := healthcheck.WriteFile(mdOut, []byte(md)); err != nil {
					return err
				}
			}
			if jsonOut != "" {
				data, err := healthcheck.ToJSON(info)
				if err != nil {
					return err
				}
				if err := healthcheck.WriteFile(jsonOut, data); err != nil {
					return err
				}
			}
			if printReport || (mdOut == "" && jsonOut == "") {
				cmd.Print(md)
			}

			if !info.Healthy() {
				return errUnhealthy
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mdOut, "out", "", "Write the Markdown report to this path")
	cmd.Flags().StringVar(&jsonOut, "json-out", "", "Write the JSON report to this path")
	cmd.Flags().BoolVar(&printReport, "print", false, "Print the report to stdout")
	return cmd
}
