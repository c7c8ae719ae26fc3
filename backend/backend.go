// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/reviewhub/models"
)

// Error taxonomy. Callers check these with errors.Is and decide policy;
// the gateway itself never retries and never redirects.
var (
	ErrUnauthenticated = errors.New("authentication rejected")
	ErrForbidden       = errors.New("insufficient privilege")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// Client is the authenticated gateway to the review-hub backend. Every
// request carries the current bearer credential when one is present.
type Client struct {
	baseURL string
	creds   *Credential
	http    *http.Client
}

// New creates a gateway for the backend at baseURL. The credential slot is
// shared with the session store, which updates it on every auth transition.
func New(baseURL string, creds *Credential, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		http:    &http.Client{Timeout: timeout},
	}
}

// do performs one request and decodes a 2xx JSON body into out (skipped
// when out is nil). Non-2xx statuses are mapped onto the error taxonomy.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.creds.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	reqID := uuid.NewString()
	start := time.Now()
	slog.Debug("backend request", "id", reqID, "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("backend request failed", "id", reqID, "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	slog.Debug("backend response", "id", reqID, "status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(method, path, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// statusError maps a non-2xx response onto the sentinel taxonomy, keeping
// the backend's detail message when one is present.
func statusError(method, path string, resp *http.Response) error {
	detail := errorDetail(resp.Body)

	var sentinel error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		sentinel = ErrUnauthenticated
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrConflict
	default:
		if detail != "" {
			return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, detail)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if detail != "" {
		return fmt.Errorf("%s %s: %w: %s", method, path, sentinel, detail)
	}
	return fmt.Errorf("%s %s: %w", method, path, sentinel)
}

func errorDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var er models.ErrorResponse
	if json.Unmarshal(raw, &er) == nil && er.Detail != "" {
		return er.Detail
	}
	return ""
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s %s request: %w", method, path, err)
	}
	return c.do(ctx, method, path, "application/json", bytes.NewReader(payload), out)
}
