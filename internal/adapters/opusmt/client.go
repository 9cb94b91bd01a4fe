// Package opusmt is a client for an opus-mt inference server. Loading a
// model is the expensive step; once the server reports a model ready,
// translation calls against it are cheap and reentrant.
package opusmt

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"linguabot/internal/core/langpack"
	perr "linguabot/internal/platform/errors"
	"linguabot/internal/platform/logger"
	enginesdom "linguabot/internal/services/engines/domain"
)

const (
	defaultUA      = "linguabot"
	defaultTimeout = 120 * time.Second
)

// Options configures the Client
type Options struct {
	// BaseURL of the inference server, e.g. http://opusmt:8000
	BaseURL string

	UserAgent string

	// Timeout is the transport-level ceiling; callers bound individual
	// requests tighter via ctx
	Timeout time.Duration
}

// Client talks to the inference server. It implements the engines
// loader port; the engines it returns share its transport.
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) (*Client, error) {
	if strings.TrimSpace(o.BaseURL) == "" {
		return nil, perr.InvalidArgf("opusmt: BaseURL is required")
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("opusmt"),
	}, nil
}

type loadRequest struct {
	Model string `json:"model"`
}

type loadResponse struct {
	Model  string `json:"model"`
	Status string `json:"status"`
}

type translateRequest struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

type translateResponse struct {
	Translation string `json:"translation"`
}

// Load instructs the server to load the model for pair and returns an
// engine bound to it. Satisfies the engines loader port.
func (c *Client) Load(ctx context.Context, pair langpack.Pair, modelID string) (enginesdom.Engine, error) {
	var out loadResponse
	if err := c.post(ctx, "/models/load", loadRequest{Model: modelID}, &out); err != nil {
		return nil, err
	}
	if out.Status != "ready" {
		return nil, perr.Unavailablef("opusmt: model %s not ready: %q", modelID, out.Status)
	}
	c.log.Debug().Str("model", modelID).Str("pair", pair.Key()).Msg("model ready")
	return &Engine{client: c, pair: pair, model: modelID}, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "opusmt marshal")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "opusmt new request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "opusmt %s", path)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "opusmt read %s", path)
	}
	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return perr.NotFoundf("opusmt %s: %s", path, snippet(raw))
	case resp.StatusCode >= 500:
		return perr.Unavailablef("opusmt %s: status %d: %s", path, resp.StatusCode, snippet(raw))
	default:
		return perr.Newf(perr.ErrorCodeUnknown, "opusmt %s: status %d: %s", path, resp.StatusCode, snippet(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return perr.JSONErrf("opusmt %s: decode: %v", path, err)
	}
	return nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// Engine is a loaded model handle. Safe for concurrent use.
type Engine struct {
	client *Client
	pair   langpack.Pair
	model  string
}

// Pair returns the directed pair this engine serves
func (e *Engine) Pair() langpack.Pair { return e.pair }

// ModelID returns the inference model identifier
func (e *Engine) ModelID() string { return e.model }

// Translate runs the model on text
func (e *Engine) Translate(ctx context.Context, text string) (string, error) {
	var out translateResponse
	if err := e.client.post(ctx, "/translate", translateRequest{Model: e.model, Text: text}, &out); err != nil {
		return "", err
	}
	if out.Translation == "" {
		return "", perr.Unavailablef("opusmt: empty translation for model %s", e.model)
	}
	return out.Translation, nil
}
