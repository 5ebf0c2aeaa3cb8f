package responsable

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/xy-planning-network/responsable/logger"
)

// An Environment names where an app runs.
// It decides whether session cookies are Secure, whether SQL logs are colored
// and whether recovered panics reach Sentry.
type Environment string

const (
	Demo        Environment = "DEMO"
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Review      Environment = "REVIEW"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

var _ Enumerable = Development

func (e Environment) String() string { return string(e) }

func (e Environment) Valid() error {
	switch e {
	case Demo, Development, Production, Review, Staging, Testing:
		return nil
	default:
		return ErrNotValid
	}
}

// IsDevelopment reports whether e is Development.
// Development serves sessions over plain HTTP and keeps panics out of Sentry.
func (e Environment) IsDevelopment() bool { return e == Development }

// IsTesting reports whether e is Testing.
// Testing switches postgres to its test database and sessions to insecure cookies.
func (e Environment) IsTesting() bool { return e == Testing }

// EnvVarOrDuration parses key as a [time.Duration], such as "5s",
// falling back to def when it is unset or malformed.
//
// The web server's timeouts are read with it.
func EnvVarOrDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}

	return d
}

// EnvVarOrEnv reads key as an [Environment], case-insensitively,
// falling back to def when it is unset or names no known Environment.
func EnvVarOrEnv(key string, def Environment) Environment {
	val := os.Getenv(key)
	if val == "" {
		return def
	}

	env := Environment(strings.ToUpper(val))
	if env.Valid() != nil {
		return def
	}

	return env
}

// EnvVarOrLogLevel reads key as a [logger.LogLevel], case-insensitively,
// falling back to def when it is unset or names no known level.
func EnvVarOrLogLevel(key string, def logger.LogLevel) logger.LogLevel {
	val := os.Getenv(key)
	if val == "" {
		return def
	}

	if ll := logger.NewLogLevel(strings.ToUpper(val)); ll != logger.LogLevelUnk {
		return ll
	}

	return def
}

// EnvVarOrString reads key, falling back to def when it is unset or empty.
func EnvVarOrString(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return def
}

// EnvVarOrURL reads key as an absolute URL.
//
// The fallback is def trimmed to its root path,
// used when key is unset or malformed.
// An unparseable def yields nil, which ranger.New rejects as a missing base URL.
func EnvVarOrURL(key, def string) *url.URL {
	base, err := url.ParseRequestURI(def)
	if err != nil {
		return nil
	}

	base.Path = "/"

	val := os.Getenv(key)
	if val == "" {
		return base
	}

	u, err := url.ParseRequestURI(val)
	if err != nil {
		return base
	}

	return u
}
