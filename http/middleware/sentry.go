package middleware

import (
	"fmt"
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/responsable"
	"github.com/xy-planning-network/responsable/http/resp"
)

// ReportPanic recovers panics raised by the http.Handler it wraps,
// responding with an error envelope with the status code http.StatusInternalServerError.
//
// Outside of development environments, panics are also reported to Sentry.
//
// http.ErrAbortHandler is never recovered.
func ReportPanic(env responsable.Environment, d *resp.Responder) Adapter {
	if d == nil {
		return NoopAdapter
	}

	var sh *sentryhttp.Handler
	if !env.IsDevelopment() {
		sh = sentryhttp.New(sentryhttp.Options{
			Repanic:         true,
			WaitForDelivery: true,
		})
	}

	return func(h http.Handler) http.Handler {
		if sh != nil {
			h = sh.Handle(h)
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				d.Err(w, r, fmt.Errorf("%w: %v", ErrPanic, rec))
			}()

			h.ServeHTTP(w, r)
		})
	}
}
