// Package graphql implements the dashboard read queries against the
// backend's single /graphql endpoint. It rides the same instrumented HTTP
// client as the REST modules; only the envelope differs.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/infrastructure/rest"
	"github.com/postqode/nexus-console/internal/metrics"
)

// Options configures the GraphQL client.
type Options struct {
	// URL is the full endpoint, e.g. http://localhost:8080/graphql.
	URL    string
	Tokens rest.TokenSource
	// OnUnauthorized mirrors the REST client's cross-cutting 401 hook.
	OnUnauthorized func()
	// HTTPClient should be the shared instrumented client.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client posts {"query": ..., "variables": ...} documents and unwraps the
// {"data": ..., "errors": [...]} envelope.
type Client struct {
	url            string
	http           *http.Client
	tokens         rest.TokenSource
	onUnauthorized func()
	log            zerolog.Logger
}

func New(opts Options) *Client {
	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Transport: metrics.InstrumentTransport(nil)}
	}
	return &Client{
		url:            opts.URL,
		http:           httpc,
		tokens:         opts.Tokens,
		onUnauthorized: opts.OnUnauthorized,
		log:            opts.Logger,
	}
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// query executes one document and decodes the data field into out.
// GraphQL-level errors surface as *domain.APIError with the first message,
// matching how the HTTP error envelope is handled on the REST side.
func (c *Client) query(ctx context.Context, document string, variables map[string]any, out any) error {
	raw, err := json.Marshal(request{Query: document, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("graphql request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read graphql response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		metrics.UnauthorizedTotal.Inc()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var envelope response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode graphql envelope: %w", err)
	}
	if len(envelope.Errors) > 0 {
		c.log.Debug().Str("error", envelope.Errors[0].Message).Msg("graphql query rejected")
		return &domain.APIError{Status: resp.StatusCode, Message: envelope.Errors[0].Message}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}
	return nil
}
