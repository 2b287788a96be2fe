package postgres

import "gorm.io/gorm"

// Migrations are the prestapp schema, in the order they apply.
var Migrations = []Migration{
	{Key: "20240401_create_users", Executor: createUsers},
	{Key: "20240401_create_loans", Executor: createLoans},
}

func createUsers(tx *gorm.DB) error {
	return tx.Exec(`
		CREATE TABLE users (
			id SERIAL PRIMARY KEY,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now(),
			email text NOT NULL,
			external_id text NOT NULL DEFAULT '',
			name text NOT NULL DEFAULT '',
			phone_number text NOT NULL DEFAULT '',
			CONSTRAINT users_email_key UNIQUE (email)
		)
	`).Error
}

// createLoans ties loans to users by email only.
func createLoans(tx *gorm.DB) error {
	err := tx.Exec(`
		CREATE TABLE loans (
			id SERIAL PRIMARY KEY,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now(),
			address text NOT NULL,
			amount integer NOT NULL CHECK (amount BETWEEN 25000 AND 250000),
			birth_date date NOT NULL,
			email text NOT NULL,
			name text NOT NULL,
			phone_number text NOT NULL
		)
	`).Error
	if err != nil {
		return err
	}

	return tx.Exec(`CREATE INDEX loans_email_created_at_idx ON loans (email, created_at DESC)`).Error
}
