package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configFile string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "studyhub",
		Short:         "StudyHub content and study tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	rootCmd.AddCommand(
		newRenderCommand(),
		newFocusCommand(),
		newTokenCommand(),
		newCatalogCommand(),
		newExportPDFCommand(),
		newGenerateQuestionsCommand(),
		newMigrateCommand(),
	)
	return rootCmd
}

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	headerColor  = color.New(color.FgCyan, color.Bold)
)

func printHeader(cmd *cobra.Command, format string, args ...any) {
	headerColor.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
