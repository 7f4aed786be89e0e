package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"aita/internal/core"
	"aita/internal/export"
)

func newPreviewCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "preview [test_pack.md]",
		Short: "Render a generated Markdown test pack in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(core.DefaultOutDir, export.MarkdownFile)
			if len(args) == 1 {
				path = args[0]
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return &core.InputError{Path: path, Err: err}
			}

			out, err := renderMarkdown(string(data), width)
			if err != nil {
				return fmt.Errorf("render %s: %w", path, err)
			}
			cmd.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 80, "Word wrap width")
	return cmd
}

func renderMarkdown(md string, width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}
