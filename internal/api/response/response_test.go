package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/niveshai/niveshai-backend/internal/api/response"
)

func TestRespondJSON_NoContent(t *testing.T) {
	w := httptest.NewRecorder()
	response.RespondJSON(w, http.StatusNoContent, nil)

	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Errorf("Expected empty 204, got %d with %q", w.Code, w.Body.String())
	}
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	response.RespondError(w, http.StatusNotFound, "portfolio not found", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["error"] != "portfolio not found" {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
	if _, ok := body["details"]; ok {
		t.Error("Expected nil details to be omitted")
	}
}

func TestRespondMarkdown(t *testing.T) {
	w := httptest.NewRecorder()
	response.RespondMarkdown(w, http.StatusOK, "# Report\n")

	if got := w.Header().Get("Content-Type"); got != "text/markdown; charset=utf-8" {
		t.Errorf("Unexpected content type %q", got)
	}
	if w.Body.String() != "# Report\n" {
		t.Errorf("Unexpected body %q", w.Body.String())
	}
}
