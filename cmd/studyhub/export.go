package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/studyhub/backend/internal/markdown"
)

func newExportPDFCommand() *cobra.Command {
	var dir, output string

	command := &cobra.Command{
		Use:   "export-pdf <learning-id>",
		Short: "Export a learning item as a PDF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(dir)
			if err != nil {
				return err
			}
			item, err := c.LearningByID(args[0])
			if err != nil {
				return err
			}

			if output == "" {
				output = item.ID + ".pdf"
			}
			if err := markdown.WritePDF(item.Title, item.Content, output); err != nil {
				return fmt.Errorf("export %s: %w", item.ID, err)
			}
			successColor.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}

	command.Flags().StringVar(&dir, "dir", "", "content directory overlaid on the embedded content")
	command.Flags().StringVarP(&output, "output", "o", "", "output path (default <learning-id>.pdf)")
	return command
}

// overlayFS returns nil for an empty dir so only embedded content loads.
func overlayFS(dir string) fs.FS {
	if dir == "" {
		return nil
	}
	return os.DirFS(dir)
}
