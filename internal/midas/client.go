// Package midas is a thin adapter for the FEA tool's REST API: typed reads
// of the model tables and merge-safe writes of beam-load plans.
package midas

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRateLimit overrides the default request rate (5 req/s). A non-positive
// value disables throttling.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

// Client talks to the model API. All requests carry the MAPI-Key header; the
// client does one attempt per call, retry policy belongs to callers.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client for the given API base URL (e.g.
// "https://host:443/civil") and MAPI key.
func NewClient(baseURL string, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
		limiter: rate.NewLimiter(5, 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// do issues one request and returns the raw response body. Non-2xx statuses
// are errors carrying a body snippet for diagnosis.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, eris.Wrap(err, "midas: rate limit")
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, eris.Wrapf(err, "midas: encode %s %s", method, path)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, eris.Wrapf(err, "midas: build %s %s", method, path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("MAPI-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "midas: %s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "midas: read %s %s", method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, eris.Errorf("midas: %s %s: status %d: %s", method, path, resp.StatusCode, snippet(raw))
	}
	return raw, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func snippet(raw []byte) string {
	const limit = 200
	if len(raw) > limit {
		raw = raw[:limit]
	}
	return string(raw)
}
