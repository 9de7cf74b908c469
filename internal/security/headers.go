// Package security provides hardening middleware for the HTTP surface:
// response headers and request body size limits.
package security

import (
	"net/http"
	"strconv"
)

// Headers attaches browser hardening headers to every response. HSTS is only
// emitted on TLS requests.
type Headers struct {
	Enable                bool
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
}

func (h Headers) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Enable {
			h.apply(w.Header(), r.TLS != nil)
		}
		next.ServeHTTP(w, r)
	})
}

func (h Headers) apply(dst http.Header, tls bool) {
	dst.Set("X-Content-Type-Options", "nosniff")
	dst.Set("X-Frame-Options", "DENY")
	dst.Set("Referrer-Policy", "no-referrer")
	dst.Set("Permissions-Policy", "geolocation=(), microphone=()")
	if h.EnableHSTS && tls {
		dst.Set("Strict-Transport-Security", h.hstsValue())
	}
}

func (h Headers) hstsValue() string {
	maxAge := h.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = 31536000
	}
	value := "max-age=" + strconv.Itoa(maxAge)
	if h.HSTSIncludeSubdomains {
		value += "; includeSubDomains"
	}
	return value
}
