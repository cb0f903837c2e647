package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyhub/backend/internal/config"
	"github.com/studyhub/backend/internal/database"
)

func newMigrateCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema migrations",
	}
	command.AddCommand(newMigrateUpCommand(), newMigrateDownCommand(), newMigrateVersionCommand())
	return command
}

func migrationOptions() (database.Options, error) {
	cfg, err := loadConfig()
	if err != nil {
		return database.Options{}, err
	}
	return optionsFor(cfg.Database)
}

func optionsFor(cfg config.DatabaseConfig) (database.Options, error) {
	if cfg.Driver == database.DriverMemory {
		return database.Options{}, fmt.Errorf("database.driver is memory; set DB_DRIVER and DATABASE_URL to migrate")
	}
	return database.Options{Driver: cfg.Driver, URL: cfg.URL}, nil
}

func newMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := migrationOptions()
			if err != nil {
				return err
			}
			if err := database.Migrate(opts); err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "%s schema is up to date\n", opts.Driver)
			return nil
		},
	}
}

func newMigrateDownCommand() *cobra.Command {
	var steps int

	command := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := migrationOptions()
			if err != nil {
				return err
			}
			if err := database.MigrateDown(opts, steps); err != nil {
				return err
			}
			warnColor.Fprintf(cmd.OutOrStdout(), "rolled back %s schema\n", opts.Driver)
			return nil
		},
	}

	command.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back; 0 rolls back all")
	return command
}

func newMigrateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := migrationOptions()
			if err != nil {
				return err
			}
			version, dirty, err := database.MigrationVersion(opts)
			if err != nil {
				return err
			}
			printf(cmd, "version %d", version)
			if dirty {
				errorColor.Fprint(cmd.OutOrStdout(), " (dirty)")
			}
			printf(cmd, "\n")
			return nil
		},
	}
}
