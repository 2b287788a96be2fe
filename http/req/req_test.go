package req_test

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/http/req"
)

func TestParserParseBody(t *testing.T) {
	// Arrange
	parser := req.NewParser()

	var actual req.ValidationErrors

	type test struct {
		A string `json:"a,omitempty" validate:"required"`
		B int64  `json:"b" validate:"gt=10,required"`
		C struct {
			Nested bool `json:"nested" validate:"eq=true"`
		} `json:"c"`
		F string `json:"-"`
	}
	var input, output test

	b := new(bytes.Buffer)
	require.Nil(t, json.NewEncoder(b).Encode(input))

	// Act
	err := parser.ParseBody(b, struct{}{})

	// Assert
	require.ErrorIs(t, err, prestapp.ErrBadAny)

	// Arrange
	b.Reset()
	b.WriteByte('\x00')

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	require.ErrorIs(t, err, prestapp.ErrBadFormat)

	// Arrange
	expected := req.ValidationErrors{
		{Field: "a", Got: "", Rule: "required; string"},
		{Field: "b", Got: int64(0), Rule: "gt=10; int64"},
		{Field: "c.nested", Got: false, Rule: "eq=true; bool"},
	}

	b.Reset()
	require.Nil(t, json.NewEncoder(b).Encode(input))

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	require.ErrorIs(t, err, prestapp.ErrNotValid)
	require.Equal(t, input, output)
	require.ErrorAs(t, err, &actual)
	require.Equal(t, expected, actual)

	// Arrange
	input.A = "hello"
	input.B = 20
	input.C.Nested = true
	input.F = "ignore"

	b = new(bytes.Buffer)
	require.Nil(t, json.NewEncoder(b).Encode(input))

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	require.Nil(t, err)
	require.Equal(t, input.A, output.A)
	require.Equal(t, input.B, output.B)
	require.Equal(t, input.C, output.C)
	require.Equal(t, "", output.F)
}

func TestParserParseBodyEmpty(t *testing.T) {
	// Arrange
	parser := req.NewParser()

	// Act
	err := parser.ParseBody(strings.NewReader(""), &struct{}{})

	// Assert
	require.ErrorIs(t, err, prestapp.ErrBadFormat)
}

func TestParserParseQueryParams(t *testing.T) {
	// Arrange
	parser := req.NewParser()
	u := make(url.Values)

	// Act
	err := parser.ParseQueryParams(u, struct{}{})

	// Assert
	require.ErrorIs(t, err, prestapp.ErrBadAny)

	// Act
	err = parser.ParseQueryParams(u, new(struct {
		A string `schema:"a,required"`
	}))

	// Assert
	require.ErrorIs(t, err, prestapp.ErrNotImplemented)

	// Arrange
	type test struct {
		Email string   `schema:"email" validate:"required,email"`
		Page  int64    `schema:"page" validate:"gte=1"`
		Tags  []string `schema:"tags" validate:"len=2"`
		Skip  string   `schema:"-"`
	}

	u.Set("email", "ada@example.com")
	u.Set("page", "first")

	var actual req.ValidationErrors

	// Act
	err = parser.ParseQueryParams(u, new(test))

	// Assert
	require.ErrorIs(t, err, prestapp.ErrNotValid)
	require.ErrorAs(t, err, &actual)
	require.Equal(t, req.ValidationErrors{{
		Field: "page",
		Got:   "bad value at index 0",
		Rule:  "must be int64",
	}}, actual)

	// Arrange
	u.Set("page", "0")
	u.Add("tags", "a")

	// Act
	err = parser.ParseQueryParams(u, new(test))

	// Assert
	require.ErrorIs(t, err, prestapp.ErrNotValid)
	require.ErrorAs(t, err, &actual)
	require.Equal(t, req.ValidationErrors{
		{Field: "page", Got: int64(0), Rule: "gte=1; int64"},
		{Field: "tags", Got: []string{"a"}, Rule: "len=2; []string"},
	}, actual)

	// Arrange
	u.Set("page", "2")
	u.Add("tags", "b")
	u.Set("skip", "ignore")
	actualVal := new(test)

	// Act
	err = parser.ParseQueryParams(u, actualVal)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "ada@example.com", actualVal.Email)
	require.Equal(t, int64(2), actualVal.Page)
	require.Equal(t, []string{"a", "b"}, actualVal.Tags)
	require.Equal(t, "", actualVal.Skip)
}
