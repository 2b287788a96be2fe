package req_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/http/req"
)

func TestValidationErrorsError(t *testing.T) {
	// Arrange
	var v req.ValidationErrors

	// Act
	actual := v.Error()

	// Assert
	require.Zero(t, actual)

	// Arrange
	v = append(
		v,
		req.ValidationError{Field: "email", Rule: "required; string"},
		req.ValidationError{Field: "loanAmount", Got: 10, Rule: "loan_amount; int"},
	)

	expected := strings.Join([]string{
		`field="email" rule="required; string" got="<nil>"`,
		`field="loanAmount" rule="loan_amount; int" got="10"`,
	}, "\n")

	// Act
	actual = v.Error()

	// Assert
	require.Equal(t, expected, actual)
}

func TestValidationErrorsMarshalJSON(t *testing.T) {
	// Arrange
	var v req.ValidationErrors

	// Act
	actual, err := json.Marshal(v)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "{}", string(actual))

	// Arrange
	v = append(v, req.ValidationError{Field: "email", Rule: "required; string", Got: ""})
	expected := `{"validationErrors":[{"field":"email","got":"","rule":"required; string"}]}`

	// Act
	actual, err = json.Marshal(v)

	// Assert
	require.Nil(t, err)
	require.Equal(t, expected, string(actual))
}

func TestValidationErrorsUnwrap(t *testing.T) {
	require.ErrorIs(t, req.ValidationErrors{}, prestapp.ErrNotValid)
}
