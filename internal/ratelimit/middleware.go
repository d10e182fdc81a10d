package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

// rejectBody is the JSON payload returned with HTTP 429.
const rejectBody = `{"error":"Too many requests, please try again later"}`

// KeyFunc extracts the client key a request is counted under.
type KeyFunc func(r *http.Request) string

// ClientIP is the default KeyFunc: the host part of RemoteAddr.
// Wire this after chi's RealIP middleware so RemoteAddr already reflects
// X-Forwarded-For / X-Real-IP when running behind a proxy.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

// Middleware returns a chi-compatible middleware that gates every request
// through the limiter. Rejected requests get HTTP 429 with a JSON error
// body and never reach the next handler.
// A nil keyFn falls back to ClientIP.
func Middleware(l *Limiter, keyFn KeyFunc) func(http.Handler) http.Handler {
	if keyFn == nil {
		keyFn = ClientIP
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(keyFn(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(rejectBody))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
