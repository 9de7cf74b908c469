package security

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestHeadersAppliedOnTLS(t *testing.T) {
	handler := Headers{Enable: true, EnableHSTS: true, HSTSIncludeSubdomains: true}.Middleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "https://shop.example/api/v1/products", nil)
	req.TLS = &tls.ConnectionState{}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	got := rr.Result().Header
	for header, want := range map[string]string{
		"X-Content-Type-Options":    "nosniff",
		"X-Frame-Options":           "DENY",
		"Referrer-Policy":           "no-referrer",
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	} {
		if got.Get(header) != want {
			t.Fatalf("%s = %q, want %q", header, got.Get(header), want)
		}
	}
}

func TestHeadersNoHSTSWithoutTLS(t *testing.T) {
	handler := Headers{Enable: true, EnableHSTS: true}.Middleware(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://shop.example/", nil))

	if rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatal("expected hardening headers on plain http")
	}
	if rr.Header().Get("Strict-Transport-Security") != "" {
		t.Fatal("hsts must only be sent over tls")
	}
}

func TestHeadersDisabled(t *testing.T) {
	handler := Headers{}.Middleware(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://shop.example/", nil))
	if rr.Header().Get("X-Content-Type-Options") != "" {
		t.Fatal("expected no headers when disabled")
	}
}
