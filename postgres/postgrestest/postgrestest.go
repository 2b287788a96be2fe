// Package postgrestest provides a *postgres.DB backed by go-sqlmock
// for tests that assert on the SQL prestapp issues without a running database.
package postgrestest

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xy-planning-network/prestapp/postgres"
)

// NewMock constructs a *postgres.DB whose statements are checked by the returned sqlmock.Sqlmock.
//
// GORM's implicit transactions around writes are disabled
// so only statements the caller issues need to be expected.
// NewMock fails t if any expectation is left unmet when t completes.
func NewMock(t *testing.T) (*postgres.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %s", err)
	}

	gdb, err := gorm.Open(gormpg.New(gormpg.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %s", err)
	}

	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %s", err)
		}

		sqlDB.Close()
	})

	return postgres.NewDB(gdb), mock
}
