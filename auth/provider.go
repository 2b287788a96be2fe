package auth

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"

	"github.com/xy-planning-network/prestapp"
)

//go:generate mockgen -destination=authmock/provider.go -package=authmock . IdentityProvider

// IdentityProvider is the subset of the Cognito user pool API prestapp calls.
//
// [*cognitoidentityprovider.Client] implements IdentityProvider.
type IdentityProvider interface {
	AdminConfirmSignUp(ctx context.Context, in *cip.AdminConfirmSignUpInput, opts ...func(*cip.Options)) (*cip.AdminConfirmSignUpOutput, error)
	AdminDeleteUser(ctx context.Context, in *cip.AdminDeleteUserInput, opts ...func(*cip.Options)) (*cip.AdminDeleteUserOutput, error)
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, opts ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	SignUp(ctx context.Context, in *cip.SignUpInput, opts ...func(*cip.Options)) (*cip.SignUpOutput, error)
}

var _ IdentityProvider = (*cip.Client)(nil)

// NewCognitoClient constructs a Cognito user pool client for the region in cfg.
//
// Static credentials from cfg take precedence over the default AWS credential chain.
func NewCognitoClient(ctx context.Context, cfg Config) (*cip.Client, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: region is required", prestapp.ErrBadConfig)
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", prestapp.ErrBadConfig, err)
	}

	// NOTE: failures surface to the caller immediately
	return cip.NewFromConfig(awsCfg, func(o *cip.Options) { o.RetryMaxAttempts = 1 }), nil
}
