package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/xy-planning-network/prestapp"
)

// safeGORMSession starts a fresh statement on a *gorm.DB when one is in an error state.
var safeGORMSession = &gorm.Session{}

// DB wraps a *gorm.DB, translating its errors into prestapp sentinels.
type DB struct {
	// *gorm.DB's methods are generally unsafe to use.
	// Some *gorm.DB methods are not thread-safe
	// and mutate the state of the *gorm.DB backing DB.
	//
	// Every query building method here returns a new *DB.
	db *gorm.DB
}

// NewDB constructs a *DB from a *gorm.DB.
func NewDB(db *gorm.DB) *DB { return &DB{db: db} }

// DB exposes the underlying *gorm.DB backing DB.
//
// NB: use in exceptional circumstances only.
func (db *DB) DB() *gorm.DB { return db.db }

// WithContext binds ctx to every statement run from the returned *DB.
func (db *DB) WithContext(ctx context.Context) *DB { return &DB{db: db.db.WithContext(ctx)} }

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %s", prestapp.ErrUnexpected, err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %s", prestapp.ErrUnexpected, err)
	}

	return nil
}

// **************************************************************************
// FINISHER METHODS
//
// These methods close out a current query, executing it.
// All finisher methods are terminal and cannot be chained.
// **************************************************************************

// Create inserts value into the database, updating value with new data yielding from that insertion.
//
// Value must be a pointer, otherwise ErrUnaddressable returns.
// If value violates a foreign key or not null constraint defined by the database, ErrNotValid returns.
// If value violates a unique constraint defined by the database, ErrExists returns.
// If value is not a database table, ErrMissingData returns.
func (db *DB) Create(value any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %T must be a non-nil pointer or slice", prestapp.ErrUnaddressable, value)
		}
	}()

	if db.db.Error != nil {
		return db.db.Error
	}

	err = db.db.Session(&gorm.Session{FullSaveAssociations: false}).Create(value).Error
	switch {
	case err == nil:
		return nil

	case errors.Is(err, schema.ErrUnsupportedDataType), errors.Is(err, gorm.ErrInvalidData):
		return fmt.Errorf("%w: %T is not a table", prestapp.ErrMissingData, value)

	case strings.Contains(err.Error(), violatesFK), errConstraintViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", prestapp.ErrNotValid, err)

	case errUniqViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", prestapp.ErrExists, err)

	default:
		return fmt.Errorf("%w: failed creating %T: %s", prestapp.ErrUnexpected, value, err)
	}
}

// Find retrieves all records matching the current query
// and stores them in dest.
//
// If dest is not a valid type for the table queried,
// then ErrNotValid returns.
// If no matches are found, Find returns ErrNotFound.
func (db *DB) Find(dest any) (err error) {
	badDest := fmt.Errorf("%w: %T cannot be scanned into", prestapp.ErrNotValid, dest)
	defer func() {
		if r := recover(); r != nil {
			err = badDest
		}
	}()

	if db.db.Error != nil {
		return db.db.Error
	}

	res := db.db.Find(dest)
	err = res.Error
	switch {
	case err != nil && errSQLScan.MatchString(err.Error()):
		return badDest

	case err != nil && errSQLSyntax.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", prestapp.ErrNotValid, err)

	case err != nil:
		return fmt.Errorf("%w: %s", prestapp.ErrUnexpected, err)

	case res.RowsAffected == 0:
		return fmt.Errorf("%w: %T", prestapp.ErrNotFound, dest)

	default:
		return nil
	}
}

// First retrieves a single record from the database matching the query
// and stores it in dest.
//
// If no matches are found, First returns ErrNotFound.
func (db *DB) First(dest any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	err := db.db.First(dest).Error
	switch {
	case err == nil:
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %T", prestapp.ErrNotFound, dest)

	case errSQLSyntax.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", prestapp.ErrNotValid, err)

	default:
		return fmt.Errorf("%w: %s", prestapp.ErrUnexpected, err)
	}
}

// Update replaces existing data on all records matching the query with values.
//
// If no records are updated, ErrNotFound returns.
func (db *DB) Update(values Updates) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	if err := values.valid(); err != nil {
		return err
	}

	res := db.db.Updates(map[string]any(values))
	switch {
	case res.Error == nil && res.RowsAffected == 0:
		return fmt.Errorf("%w: no records updated", prestapp.ErrNotFound)

	case res.Error == nil:
		return nil

	case errUniqViolation.MatchString(res.Error.Error()):
		return fmt.Errorf("%w: %s", prestapp.ErrExists, res.Error)

	case errConstraintViolation.MatchString(res.Error.Error()):
		return fmt.Errorf("%w: %s", prestapp.ErrNotValid, res.Error)

	default:
		return fmt.Errorf("%w: %s", prestapp.ErrUnexpected, res.Error)
	}
}

// **************************************************************************
// QUERY BUILDING METHODS
//
// Query building methods initiate a query and then add clauses to it
// until a finisher method is called.
// **************************************************************************

// Model declares the table used for the query.
//
// Model computes the name for the database table from the type of model,
// taking the plural of the table, for example:
//   - Loan -> loans
//   - User -> users
func (db *DB) Model(model any) *DB { return &DB{db: db.db.Model(model)} }

// Order applies an ORDER BY clause to the current query.
func (db *DB) Order(order string) *DB { return &DB{db: db.db.Order(order)} }

// Where applies the query fragment to the current query
// as a WHERE or AND clause.
//
// Where supports one or none args.
// If more than one arg is passed, or the arg is nil, finisher methods return ErrNotValid.
func (db *DB) Where(query string, args ...any) *DB {
	if len(args) > 1 {
		gdb := db.db.Session(safeGORMSession)
		_ = gdb.AddError(fmt.Errorf("%w: Where supports one or none args", prestapp.ErrNotValid))
		return &DB{db: gdb}
	}

	for _, arg := range args {
		if arg == nil {
			gdb := db.db.Session(safeGORMSession)
			_ = gdb.AddError(fmt.Errorf("%w: Where arg must not be nil", prestapp.ErrNotValid))
			return &DB{db: gdb}
		}
	}

	return &DB{db.db.Where(query, args...)}
}

// **************************************************************************
// TRANSACTION METHODS
// **************************************************************************

// Begin initializes a database transaction.
func (db *DB) Begin(opts ...*sql.TxOptions) *DB {
	return &DB{db: db.db.Begin(opts...)}
}

// Commit completes the current transaction,
// applying any state changes and making them visible to other database connections.
func (db *DB) Commit() error {
	if db.db.Error != nil {
		return db.db.Error
	}

	if err := db.db.Commit().Error; err != nil {
		return fmt.Errorf("%w: failed committing tx: %s", prestapp.ErrUnexpected, err)
	}

	return nil
}

// Rollback reverts the current transaction.
// If no transaction is open, Rollback returns an error.
func (db *DB) Rollback() error {
	if err := db.db.Rollback().Error; err != nil {
		return fmt.Errorf("%w: failed rolling back tx: %s", prestapp.ErrUnexpected, err)
	}

	return nil
}

// Transaction runs fn inside a database transaction,
// committing when fn returns nil and rolling back otherwise.
func (db *DB) Transaction(fn func(tx *DB) error) error {
	tx := db.Begin()
	if tx.db.Error != nil {
		return fmt.Errorf("%w: failed beginning tx: %s", prestapp.ErrUnexpected, tx.db.Error)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}

		return err
	}

	return tx.Commit()
}
