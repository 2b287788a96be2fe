package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/golang-jwt/jwt/v4"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/logger"
)

const (
	paramPassword   = "PASSWORD"
	paramSecretHash = "SECRET_HASH"
	paramUserID     = "USER_ID_FOR_SRP"
	paramUsername   = "USERNAME"
)

// A Principal is who the identity provider vouched for.
type Principal struct {
	// ID is the identity provider's identifier for the user.
	ID string `json:"id"`

	// Email is the username submitted.
	Email string `json:"email"`
}

// Authenticate exchanges username and password for a Principal.
//
// On any failure, Authenticate returns the zero Principal
// and an error wrapping prestapp.ErrBadConfig, ErrNotAuthenticated or ErrProvider.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Principal, error) {
	if username == "" || password == "" {
		err := fmt.Errorf("%w: %w: username and password are required", ErrNotAuthenticated, prestapp.ErrMissingData)
		s.logger.Debug("credentials missing", &logger.LogContext{Error: err})
		return Principal{}, err
	}

	hash, err := SecretHash(s.cfg, username)
	if err != nil {
		s.logger.Error("unable to compute secret hash", &logger.LogContext{Error: err})
		return Principal{}, err
	}

	out, err := s.idp.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(s.cfg.ClientID),
		AuthParameters: map[string]string{
			paramUsername:   username,
			paramPassword:   password,
			paramSecretHash: hash,
		},
	})
	if err != nil {
		code := errorCode(err)
		err = classifyAuth(err)
		lc := &logger.LogContext{
			Error: err,
			Data:  map[string]any{"email": username, "code": code},
		}

		if errors.Is(err, ErrProvider) {
			s.logger.Error("identity provider failed to authenticate", lc)
		} else {
			s.logger.Warn("authentication rejected", lc)
		}

		return Principal{}, err
	}

	id := s.identifier(out)
	if id == "" {
		err := fmt.Errorf("%w: no user identifier returned", ErrNotAuthenticated)
		s.logger.Warn("authentication returned no user identifier", &logger.LogContext{
			Error: err,
			Data:  map[string]any{"email": username, "challenge": string(out.ChallengeName)},
		})

		return Principal{}, err
	}

	return Principal{ID: id, Email: username}, nil
}

// identifier finds the user's identifier in the challenge parameters
// or else in the sub claim of the ID token.
func (s *Service) identifier(out *cip.InitiateAuthOutput) string {
	if out == nil {
		return ""
	}

	if id := out.ChallengeParameters[paramUserID]; id != "" {
		return id
	}

	if out.AuthenticationResult == nil || out.AuthenticationResult.IdToken == nil {
		return ""
	}

	// NOTE: the token came straight from Cognito over TLS; its signature is not re-verified here
	claims := jwt.MapClaims{}
	if _, _, err := s.parser.ParseUnverified(aws.ToString(out.AuthenticationResult.IdToken), claims); err != nil {
		s.logger.Warn("unable to parse id token", &logger.LogContext{Error: err})
		return ""
	}

	sub, _ := claims["sub"].(string)
	return sub
}
