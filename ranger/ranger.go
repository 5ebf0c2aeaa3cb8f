package ranger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xy-planning-network/responsable"
	"github.com/xy-planning-network/responsable/http/middleware"
	"github.com/xy-planning-network/responsable/http/resp"
	"github.com/xy-planning-network/responsable/http/router"
	"github.com/xy-planning-network/responsable/http/session"
	"github.com/xy-planning-network/responsable/logger"
	"github.com/xy-planning-network/responsable/postgres"
	"gorm.io/gorm"
)

// A Ranger manages and exposes all components of a responsable app to one another.
type Ranger struct {
	*resp.Responder
	*router.Router

	cfg        responsable.Config
	ctx        context.Context
	db         *gorm.DB
	idem       middleware.IdempotencyCacher
	l          logger.Logger
	migrations []postgres.Migration
	sessions   session.SessionStorer
	srv        *http.Server
}

// New constructs a Ranger from the provided Config and options.
//
// Options passed into New run first; any component they leave unset is then built from cfg.
// Options returning an OptFollowup are finished once every component exists.
func New(cfg responsable.Config, opts ...RangerOption) (*Ranger, error) {
	if err := cfg.Env.Valid(); err != nil {
		return nil, fmt.Errorf("%w: environment %q is %s", ErrBadConfig, cfg.Env, err)
	}

	if cfg.BaseURL == nil {
		return nil, fmt.Errorf("%w: missing base URL", ErrBadConfig)
	}

	r := &Ranger{cfg: cfg}
	followups := make([]OptFollowup, 0)

	// NOTE: some options need components built from others,
	// so they return an OptFollowup called after defaults are applied.
	for _, opt := range opts {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	if err := r.applyDefaults(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
		}
	}

	return r, nil
}

// applyDefaults builds every component the options did not supply.
func (r *Ranger) applyDefaults() error {
	var err error
	if r.ctx == nil {
		r.ctx = context.Background()
	}

	if r.l == nil {
		r.l = defaultLogger(r.cfg)
	}

	if r.db == nil && r.cfg.DatabaseURL != "" {
		r.l.Debug("connecting to database", nil)
		r.db, err = postgres.Connect(postgres.NewCxnConfig(r.cfg.Env), r.migrations...)
		if err != nil {
			return err
		}
	} else if r.db != nil && len(r.migrations) > 0 {
		if err := postgres.MigrateUp(r.db, r.migrations); err != nil {
			return err
		}
	}

	if r.sessions == nil {
		r.sessions, err = defaultSessionStore(r.cfg)
		if err != nil {
			return err
		}
	}

	if r.idem == nil {
		r.idem = defaultIdempotencyCache(r.cfg)
	}

	if r.Responder == nil {
		r.Responder = defaultResponder(r.l, r.cfg.BaseURL.String())
	}

	r.Router = defaultRouter(r.cfg, r.Responder, r.l, r.sessions)
	r.srv = defaultServer(r.ctx, r.cfg.Port)

	return nil
}

func (r *Ranger) EmitConfig() responsable.Config              { return r.cfg }
func (r *Ranger) EmitDB() *gorm.DB                            { return r.db }
func (r *Ranger) EmitIdemCache() middleware.IdempotencyCacher { return r.idem }
func (r *Ranger) EmitLogger() logger.Logger                   { return r.l }
func (r *Ranger) EmitSessionStore() session.SessionStorer     { return r.sessions }

// Idempotent wraps middleware.Idempotent with the Ranger's cache and Responder.
func (r *Ranger) Idempotent() middleware.Adapter {
	return middleware.Idempotent(r.idem, r.Responder)
}

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - os.Kill
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	var cancel context.CancelFunc
	r.ctx, cancel = context.WithCancel(r.ctx)
	defer cancel()

	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		os.Kill,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			cancel()
		case <-r.ctx.Done():
		}
	}()

	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		r.srv.Handler = r.Router
		if err := r.srv.ListenAndServe(); err != http.ErrServerClosed {
			err = fmt.Errorf("could not listen: %w", err)
			r.l.Error(err.Error(), nil)
			cancel()
		}
	}()

	<-r.ctx.Done()
	return r.Shutdown()
}

// Shutdown shuts down the web server, then releases the idempotency cache and database.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	if c, ok := r.idem.(io.Closer); ok {
		if err := c.Close(); err != nil {
			r.l.Warn(fmt.Sprintf("could not close idempotency cache: %s", err), nil)
		}
	}

	if r.db != nil {
		if sqlDB, err := r.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				r.l.Warn(fmt.Sprintf("could not close database: %s", err), nil)
			}
		}
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
