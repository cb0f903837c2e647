package database

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		attempts uint
		wantErr  bool
	}{
		{name: "first ping succeeds", failures: 0, attempts: 3},
		{name: "recovers after failures", failures: 2, attempts: 3},
		{name: "gives up", failures: 3, attempts: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			defer db.Close()

			for i := 0; i < tt.failures; i++ {
				mock.ExpectPing().WillReturnError(errors.New("connection refused"))
			}
			if tt.failures < int(tt.attempts) {
				mock.ExpectPing()
			}

			err = Ping(context.Background(), sqlx.NewDb(db, "sqlmock"), tt.attempts, time.Millisecond)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to ping database")
				assert.Contains(t, err.Error(), "connection refused")
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	for _, driver := range []string{"", DriverMemory, "oracle"} {
		_, err := Open(Options{Driver: driver, URL: "x"})
		assert.ErrorIs(t, err, ErrUnsupportedDriver, driver)
	}
}

func TestMySQLDSN(t *testing.T) {
	dsn, err := mysqlDSN("user:pass@tcp(localhost:3306)/studyhub")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dsn, "user:pass@tcp(localhost:3306)/studyhub?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "multiStatements=true")

	_, err = mysqlDSN("not a dsn")
	assert.Error(t, err)
}
