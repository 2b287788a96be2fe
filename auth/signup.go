package auth

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/logger"
)

// A Credentials is what a user signs up to the user pool with.
// Contact details beyond email stay in the database.
type Credentials struct {
	Email    string
	Name     string
	Password string
}

// SignUp creates an unconfirmed user in the user pool, returning the user's identifier.
//
// SignUp returns an error wrapping prestapp.ErrExists when the email is taken,
// prestapp.ErrNotValid when the identity provider rejects the password or attributes,
// or ErrProvider.
func (s *Service) SignUp(ctx context.Context, c Credentials) (string, error) {
	if c.Email == "" || c.Password == "" {
		return "", fmt.Errorf("%w: email and password are required", prestapp.ErrMissingData)
	}

	hash, err := SecretHash(s.cfg, c.Email)
	if err != nil {
		s.logger.Error("unable to compute secret hash", &logger.LogContext{Error: err})
		return "", err
	}

	in := &cip.SignUpInput{
		ClientId:   aws.String(s.cfg.ClientID),
		Password:   aws.String(c.Password),
		SecretHash: aws.String(hash),
		Username:   aws.String(c.Email),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(c.Email)},
		},
	}

	if c.Name != "" {
		in.UserAttributes = append(in.UserAttributes, types.AttributeType{Name: aws.String("name"), Value: aws.String(c.Name)})
	}

	out, err := s.idp.SignUp(ctx, in)
	if err != nil {
		return "", s.manageErr("sign up", c.Email, err)
	}

	return aws.ToString(out.UserSub), nil
}

// Confirm marks the user named by username as confirmed,
// skipping the verification code Cognito otherwise sends.
func (s *Service) Confirm(ctx context.Context, username string) error {
	_, err := s.idp.AdminConfirmSignUp(ctx, &cip.AdminConfirmSignUpInput{
		UserPoolId: aws.String(s.cfg.UserPoolID),
		Username:   aws.String(username),
	})
	if err != nil {
		return s.manageErr("confirm sign up", username, err)
	}

	return nil
}

// Delete removes the user named by username from the user pool.
func (s *Service) Delete(ctx context.Context, username string) error {
	_, err := s.idp.AdminDeleteUser(ctx, &cip.AdminDeleteUserInput{
		UserPoolId: aws.String(s.cfg.UserPoolID),
		Username:   aws.String(username),
	})
	if err != nil {
		return s.manageErr("delete user", username, err)
	}

	return nil
}

func (s *Service) manageErr(op, username string, err error) error {
	code := errorCode(err)
	err = classifyManage(err)
	s.logger.Warn(fmt.Sprintf("identity provider failed to %s", op), &logger.LogContext{
		Error: err,
		Data:  map[string]any{"email": username, "code": code},
	})

	return err
}
