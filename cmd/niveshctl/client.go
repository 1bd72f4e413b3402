package main

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

	"github.com/niveshai/niveshai-backend/internal/api/middleware"
	"github.com/niveshai/niveshai-backend/internal/api/response"
)

// client is a minimal HTTP client for the NiveshAI API.
type client struct {
	base   string
	apiKey string
	http   *http.Client
}

func newClient(base, apiKey string) *client {
	return &client{
		base:   strings.TrimRight(base, "/"),
		apiKey: apiKey,
		http:   &http.Client{Timeout: 60 * time.Second},
	}
}

// apiError is a non-2xx response.
type apiError struct {
	Status  int
	Message string
	Details any
}

func (e *apiError) Error() string {
	if e.Details == nil || e.Details == "" {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%d: %s (%v)", e.Status, e.Message, e.Details)
}

// do sends body (if not nil) as JSON and returns the response body.
func (c *client) do(ctx context.Context, method, path string, body any, internal bool) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if internal {
		if c.apiKey == "" {
			return nil, fmt.Errorf("an API key is required: set -api-key or INTERNAL_API_KEY")
		}
		req.Header.Set("X-API-Key", c.apiKey)
		req.Header.Set("X-Time-Token", middleware.GenerateTimeToken(c.apiKey))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		var e response.ErrorResponse
		if json.Unmarshal(data, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(data))
		}
		return nil, &apiError{Status: resp.StatusCode, Message: e.Error, Details: e.Details}
	}
	return data, nil
}

// getJSON decodes the response of a GET into out.
func (c *client) getJSON(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil, false)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// postJSON posts body and decodes the response into out.
func (c *client) postJSON(ctx context.Context, path string, body, out any, internal bool) error {
	data, err := c.do(ctx, http.MethodPost, path, body, internal)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// getText returns the raw body of a GET.
func (c *client) getText(ctx context.Context, path string) (string, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil, false)
	return string(data), err
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
