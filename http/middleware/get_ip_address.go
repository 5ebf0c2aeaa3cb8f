package middleware

import (
	"context"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/responsable"
)

// UnknownIPAddress stands in for a client whose forwarding headers name no public address.
const UnknownIPAddress = "0.0.0.0"

// forwardingHeaders are searched in order for the client address.
var forwardingHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// nonPublic are the IANA special-purpose IPv4 blocks that addr.IsPrivate does not cover.
var nonPublic = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress stores the client address found by GetIPAddress
// in the request context under responsable.IpAddrKey, where LogRequest reads it.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := GetIPAddress(r.Header)
			h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), responsable.IpAddrKey, ip)))
		})
	}
}

// GetIPAddress finds the client address in the X-Forwarded-For or X-Real-Ip headers.
//
// Each header is a comma-separated list of hops, the proxy nearest the app last.
// The rightmost public address wins; private, loopback and other special-purpose
// addresses are skipped. Without one, UnknownIPAddress returns.
//
// RateLimit keys its visitors by this address.
func GetIPAddress(hm http.Header) string {
	for _, h := range forwardingHeaders {
		hops := strings.Split(hm.Get(h), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			addr, err := netip.ParseAddr(hop)
			if err != nil || !isPublic(addr.Unmap()) {
				continue
			}

			return hop
		}
	}

	return UnknownIPAddress
}

func isPublic(addr netip.Addr) bool {
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}

	for _, p := range nonPublic {
		if p.Contains(addr) {
			return false
		}
	}

	return true
}
