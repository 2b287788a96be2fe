package ranger

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"time"

	// .env in the working directory is loaded before any env var is read
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/auth"
	"github.com/xy-planning-network/prestapp/postgres"
)

const (
	// App metadata
	AppTitleEnvVar   = "APP_TITLE"
	defaultAppTitle  = "prestapp"
	BaseURLEnvVar    = "BASE_URL"
	ContactUsEnvVar  = "CONTACT_US_EMAIL"
	defaultContactUs = "support@prestapp.example"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"
	maintModeEnvVar   = "MAINTENANCE_MODE"

	// Log defaults
	logLevelEnvVar  = "LOG_LEVEL"
	logJSONEnvVar   = "LOG_JSON"
	sentryDsnEnvVar = "SENTRY_DSN"

	// Identity provider
	cognitoRegionEnvVar       = "COGNITO_REGION"
	cognitoClientIDEnvVar     = "COGNITO_CLIENT_ID"
	cognitoClientSecretEnvVar = "COGNITO_CLIENT_SECRET"
	cognitoUserPoolIDEnvVar   = "COGNITO_USER_POOL_ID"
	awsAccessKeyIDEnvVar      = "ACCESS_KEY_ID_AWS"
	awsSecretAccessKeyEnvVar  = "SECRET_ACCESS_KEY_AWS"

	// Database defaults
	dbHostEnvVar     = "DATABASE_HOST"
	defaultDBHost    = "localhost"
	dbNameEnvVar     = "DATABASE_NAME"
	dbPassEnvVar     = "DATABASE_PASSWORD"
	dbPortEnvVar     = "DATABASE_PORT"
	defaultDBPort    = "5432"
	dbSSLModeEnvVar  = "DATABASE_SSLMODE"
	defaultDBSSLMode = "prefer"
	dbURLEnvVar      = "DATABASE_URL"
	dbUserEnvVar     = "DATABASE_USER"
	dbSchema         = "public"

	// Redis
	redisURLEnvVar      = "REDIS_URL"
	redisPasswordEnvVar = "REDIS_PASSWORD"

	// Rate limiting
	rateLimitEnvVar       = "RATE_LIMIT"
	defaultRateLimit      = 300
	rateWindowEnvVar      = "RATE_LIMIT_WINDOW"
	defaultRateLimitWindow = time.Minute

	// Web server defaults
	DefaultHost               = "localhost"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 10 * time.Second

	// Session defaults
	SessionAuthKeyEnvVar    = "SESSION_AUTH_KEY"
	SessionEncryptKeyEnvVar = "SESSION_ENCRYPTION_KEY"
	sessionMaxAgeEnvVar     = "SESSION_MAX_AGE"
	defaultSessionMaxAge    = 7 * 24 * time.Hour
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort

// A Config is everything a Ranger needs, read once from env vars at startup.
type Config struct {
	AppTitle  string
	BaseURL   *url.URL
	ContactUs string
	Env       prestapp.Environment
	MaintMode bool

	LogJSON   bool
	LogLevel  slog.Level
	SentryDSN string

	Auth auth.Config
	DB   *postgres.CxnConfig

	RedisURL      string
	RedisPassword string

	RateLimit       int
	RateLimitWindow time.Duration

	Port         string
	IdleTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	SessionAuthKey    string
	SessionEncryptKey string
	SessionMaxAge     time.Duration
}

// NewConfig reads a Config from env vars.
//
// Values the identity provider's secret hash needs are required;
// NewConfig returns an error wrapping prestapp.ErrBadConfig when they are absent.
func NewConfig() (Config, error) {
	env := prestapp.EnvVarOrEnv(environmentEnvVar, prestapp.Development)

	port := prestapp.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	cfg := Config{
		AppTitle:  prestapp.EnvVarOrString(AppTitleEnvVar, defaultAppTitle),
		BaseURL:   prestapp.EnvVarOrURL(BaseURLEnvVar, defaultBaseURL),
		ContactUs: prestapp.EnvVarOrString(ContactUsEnvVar, defaultContactUs),
		Env:       env,
		MaintMode: prestapp.EnvVarOrBool(maintModeEnvVar, false),

		LogJSON:   prestapp.EnvVarOrBool(logJSONEnvVar, false),
		LogLevel:  prestapp.EnvVarOrLogLevel(logLevelEnvVar, slog.LevelInfo),
		SentryDSN: os.Getenv(sentryDsnEnvVar),

		Auth: auth.Config{
			ClientID:        os.Getenv(cognitoClientIDEnvVar),
			ClientSecret:    os.Getenv(cognitoClientSecretEnvVar),
			Region:          os.Getenv(cognitoRegionEnvVar),
			UserPoolID:      os.Getenv(cognitoUserPoolIDEnvVar),
			AccessKeyID:     os.Getenv(awsAccessKeyIDEnvVar),
			SecretAccessKey: os.Getenv(awsSecretAccessKeyEnvVar),
		},
		DB: NewPostgresConfig(env),

		RedisURL:      os.Getenv(redisURLEnvVar),
		RedisPassword: os.Getenv(redisPasswordEnvVar),

		RateLimit:       prestapp.EnvVarOrInt(rateLimitEnvVar, defaultRateLimit),
		RateLimitWindow: prestapp.EnvVarOrDuration(rateWindowEnvVar, defaultRateLimitWindow),

		Port:         port,
		IdleTimeout:  prestapp.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  prestapp.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: prestapp.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),

		SessionAuthKey:    os.Getenv(SessionAuthKeyEnvVar),
		SessionEncryptKey: os.Getenv(SessionEncryptKeyEnvVar),
		SessionMaxAge:     prestapp.EnvVarOrDuration(sessionMaxAgeEnvVar, defaultSessionMaxAge),
	}

	if err := cfg.Valid(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Valid asserts the Config can start a Ranger.
func (c Config) Valid() error {
	if err := c.Env.Valid(); err != nil {
		return fmt.Errorf("%w: environment %q", prestapp.ErrBadConfig, c.Env)
	}

	if c.BaseURL == nil {
		return fmt.Errorf("%w: %s is not a URL", prestapp.ErrBadConfig, BaseURLEnvVar)
	}

	if err := c.Auth.Valid(); err != nil {
		return err
	}

	if c.RateLimit <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", prestapp.ErrBadConfig, rateLimitEnvVar, c.RateLimit)
	}

	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %s", prestapp.ErrBadConfig, rateWindowEnvVar, c.RateLimitWindow)
	}

	if c.SessionAuthKey == "" || c.SessionEncryptKey == "" {
		return fmt.Errorf("%w: %s and %s are required", prestapp.ErrBadConfig, SessionAuthKeyEnvVar, SessionEncryptKeyEnvVar)
	}

	return nil
}

// SessionName derives the session cookie's name from the AppTitle,
// e.g. "Presta App: Loans" becomes "prestapp-presta-app-loans".
func (c Config) SessionName() string {
	name := cases.Lower(language.English).String(c.AppTitle)
	name = regexp.MustCompile(`[,':]`).ReplaceAllString(name, "")
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, "-")

	return "prestapp-" + name
}

// NewPostgresConfig constructs a *postgres.CxnConfig appropriate to the given environment.
// Confer the DATABASE env vars for usage.
func NewPostgresConfig(env prestapp.Environment) *postgres.CxnConfig {
	if url := os.Getenv(dbURLEnvVar); url != "" {
		return &postgres.CxnConfig{Env: env, IsTestDB: env.IsTesting(), URL: url}
	}

	return &postgres.CxnConfig{
		Env:      env,
		Host:     prestapp.EnvVarOrString(dbHostEnvVar, defaultDBHost),
		IsTestDB: env.IsTesting(),
		Name:     os.Getenv(dbNameEnvVar),
		Password: os.Getenv(dbPassEnvVar),
		Port:     prestapp.EnvVarOrString(dbPortEnvVar, defaultDBPort),
		SSLMode:  prestapp.EnvVarOrString(dbSSLModeEnvVar, defaultDBSSLMode),
		User:     os.Getenv(dbUserEnvVar),
	}
}
