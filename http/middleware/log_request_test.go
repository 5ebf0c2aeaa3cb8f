package middleware_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/responsable"
	"github.com/xy-planning-network/responsable/http/middleware"
)

func TestLogRequest(t *testing.T) {
	// Arrange + Act
	actual := middleware.LogRequest(nil)

	// Assert
	require.True(t, isNoop(actual))

	tcs := []struct {
		name     string
		method   string
		ip       string
		id       string
		target   string
		expected string
	}{
		{"Zero-Value", http.MethodGet, "", "", "/", "'GET /'"},
		{"With-IP", http.MethodPost, "1.1.1.1", "", "/", "'1.1.1.1 POST /'"},
		{"With-Query-Params", http.MethodPut, "", "", "/widgets?param=true", "'PUT /widgets?param=true'"},
		{"With-Query-Params-Hid", http.MethodGet, "", "", "/?param=true&password=hunter2", "'GET /?param=true&password=xxxxxxx'"},
		{"With-Request-ID", http.MethodGet, "", "test-id", "/", `log_context: {"request_id":"test-id"}`},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, "https://example.com"+tc.target, nil)

			if tc.ip != "" {
				r = r.Clone(context.WithValue(r.Context(), responsable.IpAddrKey, tc.ip))
			}

			if tc.id != "" {
				r = r.Clone(context.WithValue(r.Context(), responsable.RequestIDKey, tc.id))
			}

			// Act
			middleware.LogRequest(newTestLogger(b))(teapotHandler()).ServeHTTP(w, r)

			// Assert
			require.Equal(t, http.StatusTeapot, w.Code)
			require.Contains(t, b.String(), tc.expected)
			require.NotContains(t, b.String(), "hunter2")
		})
	}
}
