package ranger

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/xy-planning-network/responsable"
	"github.com/xy-planning-network/responsable/http/middleware"
	"github.com/xy-planning-network/responsable/http/resp"
	"github.com/xy-planning-network/responsable/http/router"
	"github.com/xy-planning-network/responsable/http/session"
	"github.com/xy-planning-network/responsable/logger"
)

const (
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second

	defaultSessionMaxAge = 3600 * 24 * 7
)

// defaultLogger constructs a logger.Logger for the environment,
// reporting to Sentry when a DSN is configured.
func defaultLogger(cfg responsable.Config) logger.Logger {
	tl := logger.New(logger.WithEnv(cfg.Env.String()), logger.WithLevel(cfg.LogLevel))
	tl.Debug("setting up app logger", nil)
	if cfg.SentryDsn == "" {
		return tl
	}

	l := logger.NewSentryLogger(tl, cfg.SentryDsn)
	l.Debug("using SentryLogger for app logger", nil)

	return l
}

// defaultIdempotencyCache backs idempotency with Redis when configured,
// otherwise with memory.
func defaultIdempotencyCache(cfg responsable.Config) middleware.IdempotencyCacher {
	if cfg.RedisURI == "" {
		return middleware.NewIdemResMap()
	}

	return middleware.NewRedisCache(&redis.Options{Addr: cfg.RedisURI, Password: cfg.RedisPassword})
}

// defaultResponder configures the [*resp.Responder] to be used by http.Handlers.
func defaultResponder(l logger.Logger, rootUrl string) *resp.Responder {
	return resp.NewResponder(resp.WithLogger(l), resp.WithRootUrl(rootUrl))
}

// defaultRouter constructs a [*router.Router] applying the standard middleware stack to every request.
func defaultRouter(
	cfg responsable.Config,
	d *resp.Responder,
	l logger.Logger,
	sessions session.SessionStorer,
) *router.Router {
	logReq := middleware.LogRequest(l)
	route := router.New(cfg.Env, d, logReq)
	route.OnEveryRequest(
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		logReq,
		middleware.CORS(cfg.CORSOrigin),
		middleware.RateLimit(middleware.NewVisitors(), d),
		middleware.InjectSession(sessions, l),
	)

	return route
}

// defaultSessionStore constructs a SessionStorer to be used for storing session data.
//
// Sessions live in Redis when REDIS_URI is set, otherwise in cookies.
// Both SESSION_*_KEY env vars must be valid hex encoded values; cf. [encoding/hex].
func defaultSessionStore(cfg responsable.Config) (session.SessionStorer, error) {
	scfg := session.Config{
		AuthKey:     cfg.SessionAuthKey,
		EncryptKey:  cfg.SessionEncryptKey,
		Env:         cfg.Env,
		SessionName: cfg.SessionName,
	}

	args := []session.ServiceOpt{session.WithMaxAge(defaultSessionMaxAge)}
	if cfg.RedisURI != "" {
		args = append(args, session.WithRedis(cfg.RedisURI, cfg.RedisPassword))
	} else {
		args = append(args, session.WithCookie())
	}

	return session.NewStoreService(scfg, args...)
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context, port string) *http.Server {
	if port == "" {
		port = responsable.DefaultPort
	}

	if port[0] != ':' {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		IdleTimeout:  responsable.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  responsable.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: responsable.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
