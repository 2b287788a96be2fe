/*
Package ranger initializes and manages a prestapp server.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New] using a [Config] from [NewConfig].

[*Ranger.Guide] begins the web server.
By default, [*Ranger.Guide] listens on [DefaultPort] (:3000),
assuming a reverse proxy terminates TLS in front of it.

Stop that web server with [*Ranger.Shutdown]
or by sending a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures prestapp through environment variables,
read once by [NewConfig].
Environment variables may be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - ACCESS_KEY_ID_AWS: the access key for calling the identity provider's admin APIs
  - APP_TITLE: a short title for the application; names the session cookie; default: prestapp
  - BASE_URL: the base URL the application runs on; its origin is the one CORS allows
  - COGNITO_CLIENT_ID: required; the app client of the user pool
  - COGNITO_CLIENT_SECRET: required; the secret of the app client, keying the secret hash
  - COGNITO_REGION: required; the AWS region of the user pool
  - COGNITO_USER_POOL_ID: required; the user pool users sign up to
  - CONTACT_US_EMAIL: the email address end users see when a server error occurs
  - DATABASE_HOST: the host the database is running on; default: localhost
  - DATABASE_NAME: the name of the database
  - DATABASE_PASSWORD: the password for authenticating a connection to the database
  - DATABASE_PORT: the port the database is listening on; default: 5432
  - DATABASE_SSLMODE: the sslmode of the connection; default: prefer
  - DATABASE_URL: the fully-qualified connection string for connecting to the database; replaces all other DATABASE_* env vars
  - DATABASE_USER: the user for authenticating a connection to the database
  - ENVIRONMENT: the environment the application is running in; cf. [prestapp.Environment]
  - LOG_JSON: write logs as JSON in every environment
  - LOG_LEVEL: the level at which to begin logging; default: INFO
  - MAINTENANCE_MODE: answer every request with a 503; cf. [MaintModeHandler]
  - PORT: the port the application should listen on; default: :3000
  - RATE_LIMIT: requests allowed per RATE_LIMIT_WINDOW per IP address when Redis is configured; default: 300
  - RATE_LIMIT_WINDOW: cf. RATE_LIMIT; default: 1m
  - REDIS_PASSWORD: overrides the password in REDIS_URL
  - REDIS_URL: a redis:// URL; when set, sessions, rate limits and idempotent responses are stored in Redis
  - SECRET_ACCESS_KEY_AWS: the secret for ACCESS_KEY_ID_AWS
  - SENTRY_DSN: the DSN warnings and errors are reported to
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout for writing HTTP responses; default: 10s
  - SESSION_AUTH_KEY: required; a hex-encoded key for authenticating cookies; cf. [encoding/hex]
  - SESSION_ENCRYPTION_KEY: required; a hex-encoded key for encrypting cookies; cf. [encoding/hex]
  - SESSION_MAX_AGE: how long a session lasts; default: 168h
*/
package ranger
