package responsable

import (
	"fmt"
	"net/url"

	"github.com/xy-planning-network/responsable/logger"
)

const (
	BaseURLEnvVar           = "BASE_URL"
	CORSOriginEnvVar        = "CORS_ORIGIN"
	DatabaseURLEnvVar       = "DATABASE_URL"
	EnvironmentEnvVar       = "ENVIRONMENT"
	LogLevelEnvVar          = "LOG_LEVEL"
	PortEnvVar              = "PORT"
	RedisPasswordEnvVar     = "REDIS_PASSWORD"
	RedisURIEnvVar          = "REDIS_URI"
	SentryDsnEnvVar         = "SENTRY_DSN"
	SessionAuthKeyEnvVar    = "SESSION_AUTH_KEY"
	SessionEncryptKeyEnvVar = "SESSION_ENCRYPTION_KEY"
	SessionNameEnvVar       = "SESSION_NAME"

	DefaultBaseURL     = "http://localhost:3000"
	DefaultPort        = ":3000"
	DefaultSessionName = "responsable"
)

// A Config holds the values an application needs at startup,
// sourced from environment variables.
type Config struct {
	BaseURL           *url.URL
	CORSOrigin        string
	DatabaseURL       string
	Env               Environment
	LogLevel          logger.LogLevel
	Port              string
	RedisPassword     string
	RedisURI          string
	SentryDsn         string
	SessionAuthKey    string
	SessionEncryptKey string
	SessionName       string
}

// NewConfig reads a Config out of the environment, applying defaults where a value is not set.
//
// NewConfig returns ErrBadConfig if required values are missing.
func NewConfig() (Config, error) {
	cfg := Config{
		BaseURL:           EnvVarOrURL(BaseURLEnvVar, DefaultBaseURL),
		CORSOrigin:        EnvVarOrString(CORSOriginEnvVar, ""),
		DatabaseURL:       EnvVarOrString(DatabaseURLEnvVar, ""),
		Env:               EnvVarOrEnv(EnvironmentEnvVar, Development),
		LogLevel:          EnvVarOrLogLevel(LogLevelEnvVar, logger.LogLevelInfo),
		Port:              EnvVarOrString(PortEnvVar, DefaultPort),
		RedisPassword:     EnvVarOrString(RedisPasswordEnvVar, ""),
		RedisURI:          EnvVarOrString(RedisURIEnvVar, ""),
		SentryDsn:         EnvVarOrString(SentryDsnEnvVar, ""),
		SessionAuthKey:    EnvVarOrString(SessionAuthKeyEnvVar, ""),
		SessionEncryptKey: EnvVarOrString(SessionEncryptKeyEnvVar, ""),
		SessionName:       EnvVarOrString(SessionNameEnvVar, DefaultSessionName),
	}

	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}

	if cfg.SessionAuthKey == "" {
		return cfg, fmt.Errorf("%w: %s is required", ErrBadConfig, SessionAuthKeyEnvVar)
	}

	if cfg.SessionEncryptKey == "" {
		return cfg, fmt.Errorf("%w: %s is required", ErrBadConfig, SessionEncryptKeyEnvVar)
	}

	return cfg, nil
}
