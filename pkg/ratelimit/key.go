package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

// KeyFunc extracts the rate limit key from a request. An empty key skips limiting.
type KeyFunc func(*http.Request) string

// ClientIP keys by client address. Proxy headers are checked in order
// CF-Connecting-IP, X-Forwarded-For (first valid entry), X-Real-IP, then
// RemoteAddr is used.
func ClientIP(r *http.Request) string {
	if ip := parseIP(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for part := range strings.SplitSeq(forwarded, ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}
	if ip := parseIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
