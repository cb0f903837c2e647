package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/studyhub/backend/internal/markdown"
)

func newRenderCommand() *cobra.Command {
	var toc, skipHTML bool

	command := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a markdown file to HTML, or print its table of contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src []byte
			var err error
			if args[0] == "-" {
				src, err = io.ReadAll(cmd.InOrStdin())
			} else {
				src, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			doc := markdown.RenderWithOptions(string(src), markdown.Options{SkipHTML: skipHTML})
			if toc {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(doc.TOC)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), doc.HTML)
			return err
		},
	}

	command.Flags().BoolVar(&toc, "toc", false, "print the table of contents as JSON instead of HTML")
	command.Flags().BoolVar(&skipHTML, "skip-html", false, "drop raw HTML from the output")
	return command
}
