package opusmt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"linguabot/internal/core/langpack"
	perr "linguabot/internal/platform/errors"
)

var enUK = langpack.Pair{Source: "en", Target: "uk"}

func newServer(t *testing.T, h http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return srv, c
}

func TestLoadAndTranslate(t *testing.T) {
	var loads int32
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/models/load":
			atomic.AddInt32(&loads, 1)
			var req loadRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode load: %v", err)
			}
			if req.Model != "Helsinki-NLP/opus-mt-en-uk" {
				t.Errorf("model = %q", req.Model)
			}
			_ = json.NewEncoder(w).Encode(loadResponse{Model: req.Model, Status: "ready"})
		case "/translate":
			var req translateRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode translate: %v", err)
			}
			_ = json.NewEncoder(w).Encode(translateResponse{Translation: "добрий ранок"})
		default:
			http.NotFound(w, r)
		}
	})

	eng, err := c.Load(context.Background(), enUK, "Helsinki-NLP/opus-mt-en-uk")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if eng.Pair() != enUK || eng.ModelID() != "Helsinki-NLP/opus-mt-en-uk" {
		t.Fatalf("engine = %v %q", eng.Pair(), eng.ModelID())
	}
	if got := atomic.LoadInt32(&loads); got != 1 {
		t.Fatalf("loads = %d", got)
	}

	out, err := eng.Translate(context.Background(), "good morning")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out != "добрий ранок" {
		t.Fatalf("translation = %q", out)
	}
}

func TestLoadNotReady(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(loadResponse{Status: "downloading"})
	})

	_, err := c.Load(context.Background(), enUK, "m")
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}
}

func TestServerErrorIsUnavailable(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "oom", http.StatusInternalServerError)
	})

	_, err := c.Load(context.Background(), enUK, "m")
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}
	if !perr.Retryable(err) {
		t.Fatal("5xx must be retryable")
	}
}

func TestUnknownModelIsNotFound(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.Load(context.Background(), enUK, "nope")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestBadJSON(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := c.Load(context.Background(), enUK, "m")
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("err = %v, want json error", err)
	}
}

func TestRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("empty BaseURL must fail")
	}
}
