package auth

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"

	"github.com/xy-planning-network/prestapp"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrProvider         = errors.New("identity provider failed")
)

// classifyAuth maps an error returned by InitiateAuth to ErrNotAuthenticated or ErrProvider.
func classifyAuth(err error) error {
	var (
		notAuthorized *types.NotAuthorizedException
		notFound      *types.UserNotFoundException
		notConfirmed  *types.UserNotConfirmedException
		resetRequired *types.PasswordResetRequiredException
	)

	switch {
	case errors.As(err, &notAuthorized),
		errors.As(err, &notFound),
		errors.As(err, &notConfirmed),
		errors.As(err, &resetRequired):
		return fmt.Errorf("%w: %s", ErrNotAuthenticated, err)
	default:
		return fmt.Errorf("%w: %s", ErrProvider, err)
	}
}

// classifyManage maps an error returned by a user pool management call
// to a prestapp sentinel or ErrProvider.
func classifyManage(err error) error {
	var (
		exists      *types.UsernameExistsException
		badPassword *types.InvalidPasswordException
		badParam    *types.InvalidParameterException
		notFound    *types.UserNotFoundException
	)

	switch {
	case errors.As(err, &exists):
		return fmt.Errorf("%w: %s", prestapp.ErrExists, err)
	case errors.As(err, &badPassword), errors.As(err, &badParam):
		return fmt.Errorf("%w: %s", prestapp.ErrNotValid, err)
	case errors.As(err, &notFound):
		return fmt.Errorf("%w: %s", prestapp.ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %s", ErrProvider, err)
	}
}

// errorCode pulls the API error code out of err, if there is one.
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}

	return ""
}
