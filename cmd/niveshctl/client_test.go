package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/niveshai/niveshai-backend/internal/api/response"
)

// TestClient_Errors tests that error bodies are surfaced as apiError.
func TestClient_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.RespondError(w, http.StatusNotFound, "portfolio not found", "no such id")
	}))
	defer server.Close()

	var out map[string]any
	err := newClient(server.URL, "").getJSON(context.Background(), "/api/portfolio/x", &out)

	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *apiError, got %T (%v)", err, err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "portfolio not found" {
		t.Errorf("Unexpected error: %+v", apiErr)
	}
}

// TestClient_InternalHeaders tests the headers sent to internal endpoints.
//
// WHY: Internal endpoints reject requests without both the key and a fresh
// time token; public requests must not leak the key.
func TestClient_InternalHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		response.RespondJSON(w, http.StatusOK, map[string]string{})
	}))
	defer server.Close()

	c := newClient(server.URL, "secret")
	ctx := context.Background()
	var out map[string]string

	if err := c.postJSON(ctx, "/api/system/refresh", nil, &out, true); err != nil {
		t.Fatalf("postJSON() returned unexpected error: %v", err)
	}
	if got.Get("X-API-Key") != "secret" || got.Get("X-Time-Token") == "" {
		t.Errorf("Expected key and time token, got %v", got)
	}

	if err := c.getJSON(ctx, "/api/system/health", &out); err != nil {
		t.Fatalf("getJSON() returned unexpected error: %v", err)
	}
	if got.Get("X-API-Key") != "" || got.Get("X-Time-Token") != "" {
		t.Errorf("Did not expect auth headers on public request, got %v", got)
	}
}
