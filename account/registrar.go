// Package account registers new prestapp Users
// with both the identity provider and the database.
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/auth"
	"github.com/xy-planning-network/prestapp/logger"
)

// An IdentityManager creates, confirms and removes users at the identity provider.
//
// [*auth.Service] implements IdentityManager.
type IdentityManager interface {
	SignUp(ctx context.Context, c auth.Credentials) (string, error)
	Confirm(ctx context.Context, username string) error
	Delete(ctx context.Context, username string) error
}

// A UserCreator stores a new User.
//
// [*store.UserStore] implements UserCreator.
type UserCreator interface {
	Create(ctx context.Context, u *prestapp.User) error
}

// A Registration is everything a sign-up submits.
type Registration struct {
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name" validate:"required"`
	Password    string `json:"password" validate:"required,min=6"`
	PhoneNumber string `json:"phone" validate:"omitempty,number"`
}

// Registrar signs Users up.
type Registrar struct {
	idm      IdentityManager
	logger   logger.Logger
	rollback bool
	users    UserCreator
}

// A RegistrarOpt configures a Registrar.
type RegistrarOpt func(*Registrar)

// WithoutRollback leaves the identity provider's user in place
// when a later step of Register fails.
func WithoutRollback() RegistrarOpt {
	return func(r *Registrar) {
		r.rollback = false
	}
}

// NewRegistrar constructs a Registrar.
// By default, Register deletes the identity provider's user when a later step fails.
func NewRegistrar(idm IdentityManager, users UserCreator, l logger.Logger, opts ...RegistrarOpt) *Registrar {
	r := &Registrar{
		idm:      idm,
		logger:   l,
		rollback: true,
		users:    users,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register signs up reg with the identity provider, confirms it,
// then stores the User, in that order.
//
// If confirming or storing fails, Register attempts to delete the identity provider's user,
// unless configured WithoutRollback.
// The returned error wraps the failure of the step that failed.
func (r *Registrar) Register(ctx context.Context, reg Registration) (prestapp.User, error) {
	sub, err := r.idm.SignUp(ctx, auth.Credentials{
		Email:    reg.Email,
		Name:     reg.Name,
		Password: reg.Password,
	})
	if err != nil {
		return prestapp.User{}, err
	}

	if err := r.idm.Confirm(ctx, reg.Email); err != nil {
		return prestapp.User{}, r.compensate(ctx, reg.Email, fmt.Errorf("confirming: %w", err))
	}

	u := prestapp.User{
		Email:       reg.Email,
		ExternalID:  sub,
		Name:        reg.Name,
		PhoneNumber: reg.PhoneNumber,
	}

	if err := r.users.Create(ctx, &u); err != nil {
		return prestapp.User{}, r.compensate(ctx, reg.Email, fmt.Errorf("storing user: %w", err))
	}

	r.logger.Info("user registered", &logger.LogContext{User: u})

	return u, nil
}

// compensate deletes the identity provider's user for email after cause,
// returning cause joined with any failure to delete.
func (r *Registrar) compensate(ctx context.Context, email string, cause error) error {
	lc := &logger.LogContext{Error: cause, Data: map[string]any{"email": email}}
	if !r.rollback {
		r.logger.Error("registration incomplete, identity provider user left in place", lc)
		return cause
	}

	// NOTE: delete even when ctx is done
	if err := r.idm.Delete(context.WithoutCancel(ctx), email); err != nil {
		lc.Data["rollbackError"] = err.Error()
		r.logger.Error("registration incomplete, unable to remove identity provider user", lc)
		return errors.Join(cause, err)
	}

	r.logger.Warn("registration rolled back", lc)
	return cause
}
