package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/responsable"
	"github.com/xy-planning-network/responsable/http/middleware"
)

func header(key, val string) http.Header {
	h := make(http.Header)
	h.Set(key, val)
	return h
}

func TestGetIPAddress(t *testing.T) {
	tcs := []struct {
		name     string
		hm       http.Header
		expected string
	}{
		{"No-Match", make(http.Header), "0.0.0.0"},
		{
			"Only-Private-IP",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Forwarded-For", "192.168.0.0")
				return h
			}(),
			"0.0.0.0",
		},
		{
			"Only-Public-IP",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Forwarded-For", "1.1.1.1")
				return h
			}(),
			"1.1.1.1",
		},
		{
			"Get-Before-Proxy",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Real-Ip", "10.0.0.1,1.1.1.1")
				return h
			}(),
			"1.1.1.1",
		},
		{
			"Get-First-Public",
			func() http.Header {
				h := make(http.Header)
				h.Set("X-Real-Ip", "10.255.255.255,8.8.8.8,1.1.1.1,172.16.0.0")
				return h
			}(),
			"1.1.1.1",
		},
		{"Top-Of-Private-Block", header("X-Forwarded-For", "10.255.255.255"), "0.0.0.0"},
		{"Shared-Address-Space", header("X-Forwarded-For", "100.64.1.1"), "0.0.0.0"},
		{"Mapped-Private-IP", header("X-Forwarded-For", "::ffff:192.168.1.1"), "0.0.0.0"},
		{"Unique-Local-IPv6", header("X-Forwarded-For", "fd00::1"), "0.0.0.0"},
		{"Public-IPv6", header("X-Forwarded-For", "2606:4700:4700::1111, fd00::1"), "2606:4700:4700::1111"},
		{"Not-An-Address", header("X-Forwarded-For", "unknown"), "0.0.0.0"},
		{
			"Forwarded-For-Before-Real-Ip",
			func() http.Header {
				h := header("X-Real-Ip", "8.8.8.8")
				h.Set("X-Forwarded-For", "1.1.1.1")
				return h
			}(),
			"1.1.1.1",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, middleware.GetIPAddress(tc.hm))
		})
	}
}

func TestInjectIPAddress(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	r.Header.Set("X-Forwarded-For", "1.1.1.1")

	var actual string

	// Act
	middleware.InjectIPAddress()(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		actual, _ = rx.Context().Value(responsable.IpAddrKey).(string)
	})).ServeHTTP(w, r)

	// Assert
	require.Equal(t, "1.1.1.1", actual)
}
