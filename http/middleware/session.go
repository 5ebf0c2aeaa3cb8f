package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/responsable"
	"github.com/xy-planning-network/responsable/http/session"
	"github.com/xy-planning-network/responsable/logger"
)

// InjectSession stores the session associated with the *http.Request in *http.Request.Context
// under responsable.SessionKey.
//
// Before handing off the request, InjectSession ages the session's flashed data:
// data flashed during the previous request remains available for this one,
// and data flashed before that is removed.
// If aging changed the session, it is saved.
//
// Failures retrieving or saving the session are logged with l, when l is not nil.
// The request proceeds with the session the store handed back regardless.
//
// If store is nil, NoopAdapter returns and this middleware does nothing.
func InjectSession(store session.SessionStorer, l logger.Logger) Adapter {
	if store == nil {
		return NoopAdapter
	}

	logErr := func(r *http.Request, err error) {
		if l == nil {
			return
		}

		l.Warn(err.Error(), &logger.LogContext{Error: err, Request: r, RequestID: requestID(r)})
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := store.GetSession(r)
			if err != nil {
				logErr(r, fmt.Errorf("cannot get session: %w", err))
			}

			if s.Age() {
				if err := s.Save(w, r); err != nil {
					logErr(r, fmt.Errorf("cannot save session: %w", err))
				}
			}

			ctx := context.WithValue(r.Context(), responsable.SessionKey, s)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}

// requestID pulls the request ID RequestID set out of the *http.Request.Context, if any.
func requestID(r *http.Request) string {
	id, _ := r.Context().Value(responsable.RequestIDKey).(string)
	return id
}
