package database

import (
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies every pending up migration for opts.Driver.
func Migrate(opts Options) error {
	return withMigrator(opts, func(m *migrate.Migrate) error {
		return m.Up()
	})
}

// MigrateDown rolls back steps migrations, or all of them when steps is 0.
func MigrateDown(opts Options, steps int) error {
	return withMigrator(opts, func(m *migrate.Migrate) error {
		if steps > 0 {
			return m.Steps(-steps)
		}
		return m.Down()
	})
}

// MigrationVersion reports the applied schema version.
func MigrationVersion(opts Options) (version uint, dirty bool, err error) {
	err = withMigrator(opts, func(m *migrate.Migrate) error {
		var vErr error
		version, dirty, vErr = m.Version()
		return vErr
	})
	return version, dirty, err
}

// withMigrator runs fn on a dedicated connection. Closing the migrator closes
// that connection, so it never shares the application's pool.
func withMigrator(opts Options, fn func(m *migrate.Migrate) error) error {
	db, err := Open(opts)
	if err != nil {
		return err
	}

	var driver database.Driver
	switch opts.Driver {
	case DriverPostgres:
		driver, err = postgres.WithInstance(db.DB, &postgres.Config{})
	case DriverSQLite:
		driver, err = sqlite.WithInstance(db.DB, &sqlite.Config{})
	case DriverMySQL:
		driver, err = mysql.WithInstance(db.DB, &mysql.Config{})
	}
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations/"+opts.Driver)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, opts.Driver, driver)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Printf("[database] migrator close error: %v %v", srcErr, dbErr)
		}
	}()

	err = fn(m)
	if errors.Is(err, migrate.ErrNoChange) || errors.Is(err, migrate.ErrNilVersion) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
