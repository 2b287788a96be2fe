package prestapp_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/prestapp"
)

func TestValidLoanAmount(t *testing.T) {
	tcs := []struct {
		name     string
		amount   int
		expected bool
	}{
		{"zero", 0, false},
		{"below-min", 24_999, false},
		{"min", 25_000, true},
		{"between", 100_000, true},
		{"max", 250_000, true},
		{"above-max", 250_001, false},
		{"negative", -25_000, false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, prestapp.ValidLoanAmount(tc.amount))
		})
	}
}

func TestIsAdult(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	cutoff := now.AddDate(-18, 0, 0)

	tcs := []struct {
		name     string
		birth    time.Time
		expected bool
	}{
		{"zero", time.Time{}, false},
		{"day-after-cutoff", cutoff.AddDate(0, 0, 1), false},
		{"cutoff", cutoff, true},
		{"day-before-cutoff", cutoff.AddDate(0, 0, -1), true},
		{"born-today", now, false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, prestapp.IsAdult(tc.birth, now))
		})
	}
}

func TestLoanApplicationLoan(t *testing.T) {
	// Arrange
	birth := time.Date(1990, time.January, 2, 0, 0, 0, 0, time.UTC)
	app := prestapp.LoanApplication{
		Address:     " 123 Main Street ",
		Amount:      50_000,
		BirthDate:   prestapp.Date(birth),
		Email:       "ada@example.com",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		PhoneNumber: "5551234567",
	}

	// Act
	loan := app.Loan()

	// Assert
	require.False(t, loan.Exists())
	require.Equal(t, "Ada Lovelace", loan.Name)
	require.Equal(t, "123 Main Street", loan.Address)
	require.Equal(t, 50_000, loan.Amount)
	require.Equal(t, birth, loan.BirthDate)
	require.Equal(t, app.Email, loan.Email)
	require.Equal(t, app.PhoneNumber, loan.PhoneNumber)
}

func TestDateUnmarshalJSON(t *testing.T) {
	tcs := []struct {
		name     string
		input    string
		expected time.Time
		isErr    bool
	}{
		{"null", `null`, time.Time{}, false},
		{"empty", `""`, time.Time{}, false},
		{"day", `"1990-01-02"`, time.Date(1990, time.January, 2, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339", `"1990-01-02T00:00:00Z"`, time.Date(1990, time.January, 2, 0, 0, 0, 0, time.UTC), false},
		{"garbage", `"not a date"`, time.Time{}, true},
		{"number", `19900102`, time.Time{}, true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var d prestapp.Date

			// Act
			err := json.Unmarshal([]byte(tc.input), &d)

			// Assert
			if tc.isErr {
				require.ErrorIs(t, err, prestapp.ErrBadFormat)
				return
			}

			require.NoError(t, err)
			require.True(t, tc.expected.Equal(d.Time()))
		})
	}
}

func TestDateMarshalJSON(t *testing.T) {
	b, err := json.Marshal(prestapp.Date(time.Date(1990, time.January, 2, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.Equal(t, `"1990-01-02"`, string(b))

	b, err = json.Marshal(prestapp.Date{})
	require.NoError(t, err)
	require.Equal(t, `null`, string(b))
}
