/*
Package postgres manages the prestapp database connection.

[Connect] opens a connection through GORM and [MigrateUp] applies [Migrations] not yet recorded
in the migrations table. When the database is simply a target for tests, Connect drops the public schema first.

[DB] wraps the *gorm.DB for query building and translates driver and PostgreSQL errors into
prestapp sentinels, so callers can test with errors.Is:
  - no rows: [prestapp.ErrNotFound]
  - unique violation: [prestapp.ErrExists]
  - not null, check or foreign key violation and syntax errors: [prestapp.ErrNotValid]
  - anything else: [prestapp.ErrUnexpected]
*/
package postgres
