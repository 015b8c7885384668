// Package rest implements the typed client of the Nexus REST backend.
//
// A single shared Client owns the transport concerns: base URL, bearer token
// injection, correlation IDs, and the cross-cutting 401 hook. One file per
// resource wraps the endpoints behind the core ports.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/metrics"
)

const apiPrefix = "/api/v1"

// TokenSource supplies the current bearer token. The session implements it;
// the transport never reads ambient storage.
type TokenSource interface {
	Token() string
}

// Options configures the shared client.
type Options struct {
	// BaseURL is the backend root, e.g. http://localhost:8080. The /api/v1
	// prefix is appended here, not by callers.
	BaseURL string
	// Tokens supplies the bearer token; a nil source sends no header.
	Tokens TokenSource
	// OnUnauthorized runs once per 401 response, regardless of which call
	// triggered it. Installed here so no per-call wiring is needed.
	OnUnauthorized func()
	// HTTPClient overrides the default instrumented client. Tests use this.
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     zerolog.Logger
}

// Client is the shared HTTP wrapper all resource modules go through.
type Client struct {
	base           *url.URL
	http           *http.Client
	tokens         TokenSource
	onUnauthorized func()
	log            zerolog.Logger
}

// New builds the shared client. The transport is instrumented with the
// client metrics unless an explicit HTTPClient is supplied.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/") + apiPrefix)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", opts.BaseURL, err)
	}

	httpc := opts.HTTPClient
	if httpc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpc = &http.Client{
			Timeout:   timeout,
			Transport: metrics.InstrumentTransport(nil),
		}
	}

	return &Client{
		base:           base,
		http:           httpc,
		tokens:         opts.Tokens,
		onUnauthorized: opts.OnUnauthorized,
		log:            opts.Logger,
	}, nil
}

// HTTPClient exposes the underlying instrumented client so the GraphQL
// wrapper rides the same transport.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// do performs one HTTP call: marshal body, attach headers, decode into out.
// Responses outside 2xx become *domain.APIError carrying the server message
// verbatim. No retries, no transformation.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Expires", "0")
	req.Header.Set("X-Request-ID", requestID)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("elapsed", time.Since(started)).
		Msg("request completed")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		metrics.UnauthorizedTotal.Inc()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.APIError{
			Status:  resp.StatusCode,
			Message: serverMessage(raw, resp.StatusCode),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// serverMessage pulls the human-readable message out of an error body.
// The backend uses {"error": ...} or {"message": ...}; some proxies return
// plain text; anything else falls back to the standard status text.
func serverMessage(raw []byte, status int) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil && text != "" {
		return text
	}
	if s := strings.TrimSpace(string(raw)); s != "" && !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, "<") {
		return s
	}
	return http.StatusText(status)
}
