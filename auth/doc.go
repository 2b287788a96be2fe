/*
Package auth bridges prestapp and the identity provider, AWS Cognito.

# Secret hash

A Cognito app client configured with a client secret requires every request naming a user
to carry a SECRET_HASH: the base64 encoding of an HMAC-SHA256 keyed by the client secret
over the username concatenated with the client ID. [SecretHash] computes it.

# Authenticate

[*Service.Authenticate] exchanges a username and password for a [Principal]
using the USER_PASSWORD_AUTH flow.
A failure is always one of:
  - [prestapp.ErrBadConfig]: the secret hash could not be computed
  - [ErrNotAuthenticated]: bad credentials, unknown or unconfirmed users, or no user identifier
  - [ErrProvider]: anything else the identity provider or the network returned

# Sign up

[*Service.SignUp], [*Service.Confirm] and [*Service.Delete] manage users in the pool.
They are composed into a registration in package account.
*/
package auth
