package ranger

import (
	"context"
	"fmt"

	"github.com/xy-planning-network/responsable/http/middleware"
	"github.com/xy-planning-network/responsable/http/resp"
	"github.com/xy-planning-network/responsable/http/router"
	"github.com/xy-planning-network/responsable/http/session"
	"github.com/xy-planning-network/responsable/logger"
	"github.com/xy-planning-network/responsable/postgres"
	"gorm.io/gorm"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require components built by New and thus an OptFollowup can be returned
// in order to be called at a later time when that component is available.
//
// WithLogger is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithRoutes is an example of the second.
// The routes are registered only when the closure it returns is called.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithContext sets the context.Context the web server derives request contexts from.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if ctx == nil {
			return nil, fmt.Errorf("%w: nil context", ErrNotValid)
		}

		rng.ctx = ctx
		return nil, nil
	}
}

// WithDB exposes the provided *gorm.DB to the responsable app.
//
// WithDB assumes a connection has already been established.
func WithDB(db *gorm.DB) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.db = db
		return nil, nil
	}
}

// WithIdempotencyCache replaces the default cache used by (*Ranger).Idempotent.
func WithIdempotencyCache(c middleware.IdempotencyCacher) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.idem = c
		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the responsable app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.l = l
		l.Debug(fmt.Sprintf("using logger %T", l), nil)

		return nil, nil
	}
}

// WithMigrations runs the migrations against the database once it is connected.
func WithMigrations(list ...postgres.Migration) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.migrations = append(rng.migrations, list...)
		return nil, nil
	}
}

// WithResponder exposes the *resp.Responder to the responsable app.
func WithResponder(d *resp.Responder) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.Responder = d
		return nil, nil
	}
}

// WithRoutes constructs a followup option that, when called,
// registers the routes on the Ranger's router.
func WithRoutes(routes ...router.Route) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			rng.HandleRoutes(routes)
			rng.l.Debug(fmt.Sprintf("registered %d routes", len(routes)), nil)

			return nil
		}, nil
	}
}

// WithSessionStore exposes the session.SessionStorer to the responsable app.
func WithSessionStore(store session.SessionStorer) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.sessions = store
		return nil, nil
	}
}
