package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/xy-planning-network/prestapp"
)

// SecretHash computes the SECRET_HASH Cognito requires for username
// from the app client in cfg.
//
// If cfg is missing the client ID or client secret, SecretHash returns prestapp.ErrBadConfig.
func SecretHash(cfg Config, username string) (string, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return "", fmt.Errorf("%w: client id and client secret are required", prestapp.ErrBadConfig)
	}

	mac := hmac.New(sha256.New, []byte(cfg.ClientSecret))
	mac.Write([]byte(username + cfg.ClientID))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}
