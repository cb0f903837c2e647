package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/studyhub/backend/internal/catalog"
)

func newCatalogCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the static content catalog",
	}
	command.AddCommand(newCatalogListCommand(), newCatalogValidateCommand())
	return command
}

func newCatalogListCommand() *cobra.Command {
	var dir, kind string

	command := &cobra.Command{
		Use:   "list",
		Short: "List learning items, prompts or exam subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog(dir)
			if err != nil {
				return err
			}
			return listCatalog(cmd, c, kind)
		},
	}

	command.Flags().StringVar(&dir, "dir", "", "content directory overlaid on the embedded content")
	command.Flags().StringVar(&kind, "kind", "learning", "learning, prompts or questions")
	return command
}

func listCatalog(cmd *cobra.Command, c *catalog.Catalog, kind string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	switch kind {
	case "learning":
		printHeader(cmd, "Learning (%d)", len(c.Learning))
		for _, item := range c.Learning {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ID, item.Subject, item.Type, item.Title)
		}
	case "prompts":
		printHeader(cmd, "Prompts (%d)", len(c.Prompts))
		for _, p := range c.Prompts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Subject, p.Level, p.Title)
		}
	case "questions":
		counts := map[string]int{}
		var order []string
		for _, q := range c.Questions {
			if counts[q.Subject] == 0 {
				order = append(order, q.Subject)
			}
			counts[q.Subject]++
		}
		printHeader(cmd, "Questions (%d)", len(c.Questions))
		for _, s := range order {
			fmt.Fprintf(w, "%s\t%d\n", s, counts[s])
		}
	default:
		return fmt.Errorf("unknown kind %q: use learning, prompts or questions", kind)
	}
	return w.Flush()
}

func newCatalogValidateCommand() *cobra.Command {
	var dir string

	command := &cobra.Command{
		Use:   "validate",
		Short: "Check the content catalog for structural problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.LoadOverlay(overlayFS(dir))
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			return reportValidation(cmd, c)
		},
	}

	command.Flags().StringVar(&dir, "dir", "", "content directory overlaid on the embedded content")
	return command
}

func reportValidation(cmd *cobra.Command, c *catalog.Catalog) error {
	errs := c.Validate()
	if len(errs) == 0 {
		successColor.Fprintf(cmd.OutOrStdout(), "All validations passed! (%d learning, %d prompts, %d questions)\n",
			len(c.Learning), len(c.Prompts), len(c.Questions))
		return nil
	}

	errorColor.Fprintf(cmd.OutOrStdout(), "Validation Errors (%d)\n", len(errs))
	for _, e := range errs {
		printf(cmd, "  - %v\n", e)
	}
	return fmt.Errorf("validation failed with %d error(s)", len(errs))
}
