package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/logger"
)

// Service authenticates and manages users in a Cognito user pool.
type Service struct {
	cfg    Config
	idp    IdentityProvider
	logger logger.Logger
	parser *jwt.Parser
}

// NewService constructs a Service.
//
// NewService returns prestapp.ErrBadConfig if cfg is not valid
// and prestapp.ErrMissingData if idp or l is nil.
func NewService(cfg Config, idp IdentityProvider, l logger.Logger) (*Service, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}

	if idp == nil || l == nil {
		return nil, fmt.Errorf("%w: identity provider and logger are required", prestapp.ErrMissingData)
	}

	return &Service{
		cfg:    cfg,
		idp:    idp,
		logger: l,
		parser: jwt.NewParser(),
	}, nil
}
