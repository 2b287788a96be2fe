package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/postgres"
)

// LoanStore persists Loans.
type LoanStore struct {
	db *postgres.DB
}

// NewLoanStore constructs a LoanStore.
func NewLoanStore(db *postgres.DB) *LoanStore { return &LoanStore{db: db} }

// Create inserts l, setting its ID and timestamps.
//
// Create rejects a Loan whose amount is out of bounds or whose applicant is not an adult
// with prestapp.ErrNotValid.
func (s *LoanStore) Create(ctx context.Context, l *prestapp.Loan) error {
	if l == nil {
		return fmt.Errorf("%w: nil loan", prestapp.ErrMissingData)
	}

	if !prestapp.ValidLoanAmount(l.Amount) {
		return fmt.Errorf("%w: amount %d is out of bounds", prestapp.ErrNotValid, l.Amount)
	}

	if !prestapp.IsAdult(l.BirthDate, time.Now()) {
		return fmt.Errorf("%w: applicant is under %d", prestapp.ErrNotValid, prestapp.MinApplicantAge)
	}

	l.Email = normalizeEmail(l.Email)
	return s.db.WithContext(ctx).Create(l)
}

// ListByEmail retrieves every Loan applied for with email, newest first.
//
// ListByEmail returns an empty slice when there are none.
func (s *LoanStore) ListByEmail(ctx context.Context, email string) ([]prestapp.Loan, error) {
	loans := make([]prestapp.Loan, 0)
	err := s.db.
		WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		Order("created_at DESC").
		Find(&loans)
	if errors.Is(err, prestapp.ErrNotFound) {
		return loans, nil
	}

	if err != nil {
		return nil, err
	}

	return loans, nil
}
