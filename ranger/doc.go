/*
Package ranger initializes and manages a responsable app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New] using a [responsable.Config],
typically read from the environment by [responsable.NewConfig].

[New] wires together a [logger.Logger], a [*resp.Responder], a [session.SessionStorer],
an idempotency cache and a [*router.Router] whose every request passes through
RequestID, InjectIPAddress, LogRequest, CORS, RateLimit and InjectSession.
Any of these can be replaced with a [RangerOption].

[*Ranger.Guide] begins the web server.
Stop that web server with [*Ranger.Shutdown] or send a signal [*Ranger.Guide] listens for.

# Configuration

Besides the variables [responsable.NewConfig] reads, these tune the web server:
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout for writing HTTP responses; default: 5s

When DATABASE_URL is set, [New] connects to Postgres and runs the migrations given with [WithMigrations].
When REDIS_URI is set, sessions and idempotent responses are stored in Redis.
*/
package ranger
