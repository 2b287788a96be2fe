package auth

import (
	"fmt"

	"github.com/xy-planning-network/prestapp"
)

// Config is what Service needs to talk to a Cognito user pool app client.
//
// A Config is built once at startup and never changed.
type Config struct {
	ClientID     string
	ClientSecret string
	Region       string
	UserPoolID   string

	// AccessKeyID and SecretAccessKey are static credentials for admin calls.
	// When empty, the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string
}

// Valid asserts the Config has the values needed to compute secret hashes
// and address the user pool.
func (c Config) Valid() error {
	missing := make([]string, 0)
	if c.ClientID == "" {
		missing = append(missing, "client id")
	}

	if c.ClientSecret == "" {
		missing = append(missing, "client secret")
	}

	if c.Region == "" {
		missing = append(missing, "region")
	}

	if c.UserPoolID == "" {
		missing = append(missing, "user pool id")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", prestapp.ErrBadConfig, missing)
	}

	return nil
}
