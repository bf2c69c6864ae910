package gateway

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

	"github.com/rs/zerolog"
)

// Gateway performs the pull and mutating calls against the monitoring
// backend. It is a single-attempt primitive: every call makes exactly one
// request and all retry decisions belong to the caller.
type Gateway struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewGateway creates a gateway for the given backend base URL
func NewGateway(baseURL string, timeout time.Duration, logger zerolog.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With().Str("component", "gateway").Logger(),
	}
}

// GetJSON performs one GET and decodes the JSON response into out.
func (g *Gateway) GetJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	target := g.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return g.do(ctx, http.MethodGet, target, nil, out)
}

// PostJSON performs one POST with an optional JSON body.
func (g *Gateway) PostJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	return g.do(ctx, http.MethodPost, g.baseURL+path, body, out)
}

// PatchJSON performs one PATCH with a JSON body.
func (g *Gateway) PatchJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	return g.do(ctx, http.MethodPatch, g.baseURL+path, body, out)
}

func (g *Gateway) do(ctx context.Context, method, target string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Debug().
			Err(err).
			Str("method", method).
			Str("url", target).
			Msg("No response from backend")
		return &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		diag, _ := io.ReadAll(resp.Body)
		g.logger.Debug().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("url", target).
			Msg("Backend returned non-success status")
		return &RequestError{Status: resp.StatusCode, Body: string(diag)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", target, err)
	}
	return nil
}
