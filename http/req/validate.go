package req

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	v10 "github.com/go-playground/validator/v10"

	"github.com/xy-planning-network/prestapp"
)

var (
	addressRegex    = regexp.MustCompile(`^[a-zA-Z0-9\s]+$`)
	onlyDigitsRegex = regexp.MustCompile(`^[0-9]*$`)
	timeType        = reflect.TypeOf(time.Time{})
)

type validator struct {
	valid *v10.Validate
}

// newValidator constructs a validator with prestapp's rules registered:
//   - adult: a date at least prestapp.MinApplicantAge years before now
//   - address: letters, digits and spaces, not only digits
//   - loan_amount: within prestapp.MinLoanAmount and prestapp.MaxLoanAmount
func newValidator(now func() time.Time) validator {
	v := validator{valid: v10.New()}
	v.valid.RegisterValidation("adult", func(fl v10.FieldLevel) bool { return validateAdult(fl, now()) })
	v.valid.RegisterValidation("address", validateAddress)
	v.valid.RegisterValidation("loan_amount", validateLoanAmount)
	v.valid.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			name = ""
		}

		if name == "" {
			name = strings.SplitN(field.Tag.Get("schema"), ",", 2)[0]
		}

		if name == "-" {
			name = ""
		}

		return name
	})

	return v
}

// validate checks the fields on structPtr match the rules set by "validate" struct tags.
// On success, validate returns no error.
// On failure, validate translates each issue to a ValidationError,
// returning them all as ValidationErrors.
func (v validator) validate(structPtr any) error {
	err := v.valid.Struct(structPtr)
	if err == nil {
		return nil
	}

	var errs v10.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	var validateErrs ValidationErrors
	for _, ve := range errs {
		field := ve.Namespace()

		ns := strings.SplitN(field, ".", 2)
		if len(ns) == 2 {
			field = ns[1]
		}

		rule := ve.Tag()
		if ve.Param() != "" {
			rule += "=" + ve.Param()
		}
		rule += "; " + ve.Type().String()

		got := ve.Value()
		if strings.Contains(strings.ToLower(field), "password") {
			got = prestapp.LogMaskVal
		}

		validateErrs = append(validateErrs, ValidationError{
			Field: field,
			Got:   got,
			Rule:  rule,
		})
	}

	return validateErrs
}

// validateAdult validates whether field is a date old enough to apply for a loan.
func validateAdult(fl v10.FieldLevel, now time.Time) bool {
	field := fl.Field()
	if !field.Type().ConvertibleTo(timeType) {
		return false
	}

	birth := field.Convert(timeType).Interface().(time.Time)
	return prestapp.IsAdult(birth, now)
}

// validateAddress validates whether field is made of letters, digits and spaces
// and is not only digits.
func validateAddress(fl v10.FieldLevel) bool {
	s := fl.Field().String()
	return addressRegex.MatchString(s) && !onlyDigitsRegex.MatchString(s)
}

// validateLoanAmount validates whether field is an amount a loan may request.
func validateLoanAmount(fl v10.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return prestapp.ValidLoanAmount(int(field.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return prestapp.ValidLoanAmount(int(field.Uint()))
	default:
		return false
	}
}
