package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"linguabot/internal/core/langpack"
	"linguabot/internal/modkit"
	"linguabot/internal/modkit/module"
	perr "linguabot/internal/platform/errors"
	phttp "linguabot/internal/platform/net/http"
	enginesdom "linguabot/internal/services/engines/domain"
)

type fakeEngine struct {
	pair langpack.Pair
}

func (f *fakeEngine) Pair() langpack.Pair { return f.pair }
func (f *fakeEngine) ModelID() string     { return "fake/" + f.pair.Key() }
func (f *fakeEngine) Translate(_ context.Context, text string) (string, error) {
	return "[" + f.pair.Key() + "] " + text, nil
}

type fakeCache struct {
	pack *langpack.Pack
}

func (f *fakeCache) GetOrLoad(_ context.Context, pair langpack.Pair) (enginesdom.Engine, error) {
	if !f.pack.PairSupported(pair) {
		return nil, perr.UnsupportedPairf("no engine for pair %s", pair.Key())
	}
	return &fakeEngine{pair: pair}, nil
}

func (f *fakeCache) Resident() []langpack.Pair {
	return []langpack.Pair{{Source: "en", Target: "uk"}}
}

func newAPI(t *testing.T, token string) *httptest.Server {
	t.Helper()
	module.Reset()
	pack := langpack.MustLoad()
	mux := chi.NewMux()
	Mount(phttp.AdaptChi(mux), Options{
		Deps:        modkit.Deps{Pack: pack},
		Cache:       &fakeCache{pack: pack},
		BearerToken: token,
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestMetaEndpoints(t *testing.T) {
	srv := newAPI(t, "")

	var health phttp.Envelope
	if code := getJSON(t, srv.URL+"/api/v1/meta/health", &health); code != http.StatusOK {
		t.Fatalf("health status = %d", code)
	}
	if health.StatusCode != http.StatusOK {
		t.Fatalf("health envelope = %+v", health)
	}

	var langs struct {
		Data struct {
			Languages []langpack.Language `json:"languages"`
			Pairs     []string            `json:"pairs"`
		} `json:"data"`
	}
	if code := getJSON(t, srv.URL+"/api/v1/meta/languages", &langs); code != http.StatusOK {
		t.Fatalf("languages status = %d", code)
	}
	if len(langs.Data.Languages) != 3 || len(langs.Data.Pairs) != 4 {
		t.Fatalf("languages = %+v", langs.Data)
	}

	var engines struct {
		Data struct {
			Resident []string `json:"resident"`
		} `json:"data"`
	}
	if code := getJSON(t, srv.URL+"/api/v1/meta/engines", &engines); code != http.StatusOK {
		t.Fatalf("engines status = %d", code)
	}
	if len(engines.Data.Resident) != 1 || engines.Data.Resident[0] != "en-uk" {
		t.Fatalf("engines = %+v", engines.Data)
	}
}

func TestTranslateEndpoint(t *testing.T) {
	srv := newAPI(t, "")

	body := `{"source":"en","target":"uk","text":"good morning"}`
	resp, err := http.Post(srv.URL+"/api/v1/translate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out struct {
		Data struct {
			Translation string `json:"translation"`
			Model       string `json:"model"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Data.Translation != "[en-uk] good morning" {
		t.Fatalf("translation = %q", out.Data.Translation)
	}
}

func TestTranslateRejectsBadPair(t *testing.T) {
	srv := newAPI(t, "")

	// supported codes, no engine
	body := `{"source":"uk","target":"pl","text":"привіт"}`
	resp, err := http.Post(srv.URL+"/api/v1/translate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
}

func TestTranslateValidation(t *testing.T) {
	srv := newAPI(t, "")

	for _, body := range []string{
		`{"source":"en","target":"uk"}`,
		`{"source":"english","target":"uk","text":"hi"}`,
		`{"source":"en","target":"uk","text":"hi","extra":1}`,
	} {
		resp, err := http.Post(srv.URL+"/api/v1/translate", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			t.Fatalf("body %s: expected rejection", body)
		}
	}
}

func TestTranslateBearerAuth(t *testing.T) {
	srv := newAPI(t, "sekrit")

	body := `{"source":"en","target":"uk","text":"good morning"}`
	resp, err := http.Post(srv.URL+"/api/v1/translate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/translate", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer sekrit")
	req.Header.Set("Content-Type", "application/json")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST with token: %v", err)
	}
	_ = resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("authenticated status = %d, want 200", resp2.StatusCode)
	}

	// meta stays open
	if code := getJSON(t, srv.URL+"/api/v1/meta/health", nil); code != http.StatusOK {
		t.Fatalf("meta status = %d", code)
	}
}
