package prestapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	MinLoanAmount = 25_000
	MaxLoanAmount = 250_000

	// MinApplicantAge is the age, in years, an applicant must have reached.
	MinApplicantAge = 18

	DateLayout = "2006-01-02"
)

// A Loan is a snapshot of an applicant's request for funds.
//
// A Loan is associated with a User by Email only and is never changed after creation.
type Loan struct {
	Model
	Address     string    `json:"address"`
	Amount      int       `json:"amount"`
	BirthDate   time.Time `json:"birthDate"`
	Email       string    `json:"email" gorm:"index"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
}

// A LoanApplication is the form an applicant submits to request a Loan.
type LoanApplication struct {
	Address     string `json:"address" validate:"required,min=10,address"`
	Amount      int    `json:"loanAmount" validate:"required,loan_amount"`
	BirthDate   Date   `json:"birthDate" validate:"required,adult"`
	Email       string `json:"email" validate:"required,email"`
	FirstName   string `json:"firstName" validate:"required,min=2,alpha"`
	LastName    string `json:"lastName" validate:"required,min=2,alpha"`
	PhoneNumber string `json:"phoneNumber" validate:"required,number"`
}

// Loan constructs the Loan the LoanApplication describes.
func (a LoanApplication) Loan() Loan {
	return Loan{
		Address:     strings.TrimSpace(a.Address),
		Amount:      a.Amount,
		BirthDate:   a.BirthDate.Time(),
		Email:       a.Email,
		Name:        strings.TrimSpace(a.FirstName + " " + a.LastName),
		PhoneNumber: a.PhoneNumber,
	}
}

// IsAdult asserts whether someone born on birth has turned MinApplicantAge by now.
func IsAdult(birth, now time.Time) bool {
	if birth.IsZero() {
		return false
	}

	return !birth.After(now.AddDate(-MinApplicantAge, 0, 0))
}

// ValidLoanAmount asserts whether amount lies within the bounds a Loan may request.
func ValidLoanAmount(amount int) bool {
	return amount >= MinLoanAmount && amount <= MaxLoanAmount
}

// A Date is a calendar day as submitted by a form.
//
// A Date unmarshals from either DateLayout or RFC 3339.
type Date time.Time

// Time returns d as a [time.Time].
func (d Date) Time() time.Time { return time.Time(d) }

func (d Date) String() string { return d.Time().Format(DateLayout) }

// MarshalJSON implements [encoding/json.Marshaler].
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time().IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(d.String())
}

// UnmarshalJSON implements [encoding/json.Unmarshaler].
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrBadFormat, err)
	}

	return d.UnmarshalText([]byte(s))
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Date) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		*d = Date{}
		return nil
	}

	if t, err := time.Parse(DateLayout, s); err == nil {
		*d = Date(t)
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("%w: %q is not a date", ErrBadFormat, s)
	}

	*d = Date(t)
	return nil
}
