package postgres_test

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/postgres"
	"github.com/xy-planning-network/prestapp/postgres/postgrestest"
)

func TestMigrateUp(t *testing.T) {
	// Arrange
	db, mock := postgrestest.NewMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`CREATE SCHEMA IF NOT EXISTS public`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS migrations`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key FROM migrations`)).
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("20240401_create_users"))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE loans`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE INDEX loans_email_created_at_idx`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO migrations`)).
		WithArgs("20240401_create_loans", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// Act
	err := postgres.MigrateUp(db, "public", postgres.Migrations)

	// Assert
	require.Nil(t, err)
}

func TestMigrateUpRollsBack(t *testing.T) {
	// Arrange
	db, mock := postgrestest.NewMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`CREATE SCHEMA IF NOT EXISTS public`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS migrations`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key FROM migrations`)).
		WillReturnRows(sqlmock.NewRows([]string{"key"}))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE users`)).WillReturnError(testErr)
	mock.ExpectRollback()

	// Act
	err := postgres.MigrateUp(db, "public", postgres.Migrations)

	// Assert
	require.ErrorIs(t, err, prestapp.ErrUnexpected)
	require.ErrorContains(t, err, "20240401_create_users")
}
