package resp

import (
	"errors"
	"net/http"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/auth"
	"github.com/xy-planning-network/prestapp/http/req"
)

var (
	ErrDone   = errors.New("request ctx done")
	ErrNoUser = errors.New("no user")
)

// StatusFor maps err to the HTTP status code describing it.
func StatusFor(err error) int {
	var ve req.ValidationErrors
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve),
		errors.Is(err, prestapp.ErrNotValid),
		errors.Is(err, prestapp.ErrBadFormat),
		errors.Is(err, prestapp.ErrMissingData):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrNotAuthenticated), errors.Is(err, ErrNoUser):
		return http.StatusUnauthorized
	case errors.Is(err, prestapp.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, prestapp.ErrExists):
		return http.StatusConflict
	case errors.Is(err, auth.ErrProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
