// Package api is the HTTP layer: one thin client plus a repository per
// backend resource. Repositories translate HTTP status codes into the typed
// errors in errors.go and never retry or cache.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxErrorBodyLen = 512

// TokenSource yields the current bearer token, empty when logged out.
type TokenSource func() string

// Client is the shared HTTP transport for all repositories.
type Client struct {
	baseURL string
	httpc   *http.Client
	token   TokenSource
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, token TokenSource, log zerolog.Logger) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		token:   token,
		log:     log,
	}
}

// do issues one request and returns the raw response body. Non-2xx statuses
// come back as typed errors; the body is never partially consumed.
func (c *Client) do(ctx context.Context, method, path string, auth bool, body any) ([]byte, error) {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	if auth {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn().Str("request_id", reqID).Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	c.log.Debug().
		Str("request_id", reqID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{Resource: path, ID: ""}
	}
	return nil, &ServerError{Status: resp.StatusCode, Body: truncate(string(data), maxErrorBodyLen)}
}

// doJSON issues a request and decodes the response into out when non-nil.
// An empty response body with a non-nil out is tolerated.
func (c *Client) doJSON(ctx context.Context, method, path string, auth bool, body, out any) error {
	data, err := c.do(ctx, method, path, auth, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	// back up to a rune boundary so the cut never splits a multibyte sequence
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
