package postgres

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/xy-planning-network/prestapp"
)

// Migration is used to hold the database key and function for creating the migration.
type Migration struct {
	Executor func(*gorm.DB) error
	Key      string
}

func (m Migration) execute(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := m.Executor(tx); err != nil {
			return err
		}

		return tx.Exec(`INSERT INTO migrations (key, ran_at) VALUES (?, ?)`, m.Key, time.Now().Unix()).Error
	})
}

// MigrateUp runs, in order, every migration whose key is not yet recorded in the migrations table.
// Each migration and its record are committed together.
func MigrateUp(db *DB, schema string, migrations []Migration) error {
	gdb := db.DB()
	if err := gdb.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
		return fmt.Errorf("%w: creating %s schema: %s", prestapp.ErrUnexpected, schema, err)
	}

	err := gdb.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			ran_at bigint,
			key text,
			CONSTRAINT migrations_key UNIQUE (key)
		)
	`).Error
	if err != nil {
		return fmt.Errorf("%w: creating migrations table: %s", prestapp.ErrUnexpected, err)
	}

	toRun, err := determineMigrationsToRun(gdb, migrations)
	if err != nil {
		return err
	}

	for _, m := range toRun {
		if err := m.execute(gdb); err != nil {
			return fmt.Errorf("%w: migration %s: %s", prestapp.ErrUnexpected, m.Key, err)
		}
	}

	return nil
}

func determineMigrationsToRun(db *gorm.DB, all []Migration) ([]Migration, error) {
	var ran []string
	if err := db.Raw("SELECT key FROM migrations").Scan(&ran).Error; err != nil {
		return nil, fmt.Errorf("%w: fetching ran migrations: %s", prestapp.ErrUnexpected, err)
	}

	seen := make(map[string]bool, len(ran))
	for _, key := range ran {
		seen[key] = true
	}

	toRun := make([]Migration, 0, len(all))
	for _, m := range all {
		if !seen[m.Key] {
			toRun = append(toRun, m)
		}
	}

	return toRun, nil
}
