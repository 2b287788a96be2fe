package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/postgres"
)

// UserStore persists Users.
type UserStore struct {
	db *postgres.DB
}

// NewUserStore constructs a UserStore.
func NewUserStore(db *postgres.DB) *UserStore { return &UserStore{db: db} }

// Create inserts u, setting its ID and timestamps.
//
// If a User with the same email exists, Create returns prestapp.ErrExists.
func (s *UserStore) Create(ctx context.Context, u *prestapp.User) error {
	if u == nil {
		return fmt.Errorf("%w: nil user", prestapp.ErrMissingData)
	}

	u.Email = normalizeEmail(u.Email)
	if u.Email == "" {
		return fmt.Errorf("%w: email is required", prestapp.ErrMissingData)
	}

	return s.db.WithContext(ctx).Create(u)
}

// ByEmail retrieves the User with email.
//
// If there is none, ByEmail returns prestapp.ErrNotFound.
func (s *UserStore) ByEmail(ctx context.Context, email string) (prestapp.User, error) {
	var u prestapp.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u)
	return u, err
}

// GetByID retrieves the User with id.
//
// If there is none, GetByID returns prestapp.ErrNotFound.
func (s *UserStore) GetByID(ctx context.Context, id uint) (prestapp.User, error) {
	var u prestapp.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&u)
	return u, err
}

// A Profile is what a User may change about themselves.
type Profile struct {
	Name        string
	PhoneNumber string
}

// UpdateProfile sets the name and phone number of the User with email
// and returns the User as updated, both in one transaction.
//
// If there is none, UpdateProfile returns prestapp.ErrNotFound.
func (s *UserStore) UpdateProfile(ctx context.Context, email string, p Profile) (prestapp.User, error) {
	email = normalizeEmail(email)

	var u prestapp.User
	err := s.db.WithContext(ctx).Transaction(func(tx *postgres.DB) error {
		err := tx.
			Model(&prestapp.User{}).
			Where("email = ?", email).
			Update(postgres.Updates{"name": p.Name, "phone_number": p.PhoneNumber})
		if err != nil {
			return err
		}

		return tx.Where("email = ?", email).First(&u)
	})
	if err != nil {
		return prestapp.User{}, err
	}

	return u, nil
}

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }
