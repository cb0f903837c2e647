package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

type Options struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// Attempts is how many times Connect pings before giving up.
	Attempts   uint
	RetryDelay time.Duration
}

// Open opens a pool for opts without touching the network.
func Open(opts Options) (*sqlx.DB, error) {
	dsn := opts.URL
	switch opts.Driver {
	case DriverPostgres, DriverSQLite:
	case DriverMySQL:
		var err error
		if dsn, err = mysqlDSN(opts.URL); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, opts.Driver)
	}

	db, err := sqlx.Open(opts.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	return db, nil
}

// Connect opens the pool and waits for the server to answer a ping.
func Connect(ctx context.Context, opts Options) (*sqlx.DB, error) {
	db, err := Open(opts)
	if err != nil {
		return nil, err
	}
	if err := Ping(ctx, db, opts.Attempts, opts.RetryDelay); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Ping retries with exponential backoff so the server can start before its
// database does.
func Ping(ctx context.Context, db *sqlx.DB, attempts uint, delay time.Duration) error {
	if attempts == 0 {
		attempts = 1
	}
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	err := retry.Do(
		func() error { return db.PingContext(ctx) },
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("[database] ping attempt %d/%d failed: %v", n+1, attempts, err)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// mysqlDSN forces the options the store and the migrations rely on.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.MultiStatements = true
	return cfg.FormatDSN(), nil
}
