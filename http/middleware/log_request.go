package middleware

import (
	"net/http"
	"strings"

	"github.com/xy-planning-network/responsable"
	"github.com/xy-planning-network/responsable/logger"
)

// LogRequest logs the request's method, requested URL, and originating IP address
// using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following keys:
//   - password
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uri := r.URL.Path
			q := r.URL.Query()
			if val := q.Get("password"); val != "" {
				q.Set("password", "xxxxxxx")
			}

			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			strs := []string{r.Method, uri}
			if val, ok := r.Context().Value(responsable.IpAddrKey).(string); ok {
				strs = append([]string{val}, strs...)
			}

			var lc *logger.LogContext
			if id := requestID(r); id != "" {
				lc = &logger.LogContext{RequestID: id}
			}

			ls.Info(strings.Join(strs, " "), lc)
			h.ServeHTTP(w, r)
		})
	}
}
