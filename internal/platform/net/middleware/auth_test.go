package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "linguabot/internal/platform/net"
)

func jsonWrite(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestBearerAuth_EmptyTokenDisables(t *testing.T) {
	h := BearerAuth("", jsonWrite)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/meta/health", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}

func TestBearerAuth_RejectsMissingAndWrong(t *testing.T) {
	h := BearerAuth("sekrit", jsonWrite)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	}))

	for _, hdr := range []string{"", "Bearer wrong", "Basic abc"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/meta/health", nil)
		if hdr != "" {
			req.Header.Set("Authorization", hdr)
		}
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", hdr, rec.Code)
		}
	}
}

func TestBearerAuth_AcceptsAndSetsPrincipal(t *testing.T) {
	var principal string
	h := BearerAuth("sekrit", jsonWrite)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal = pnet.Principal(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/meta/health", nil)
	req.Header.Set("Authorization", "Bearer sekrit")
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if principal != "admin" {
		t.Fatalf("principal = %q, want admin", principal)
	}
}
