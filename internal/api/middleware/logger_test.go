package middleware_test

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niveshai/niveshai-backend/internal/api/middleware"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(orig) })

	t.Run("logs method, path and status", func(t *testing.T) {
		buf.Reset()
		h := middleware.Logger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		h.ServeHTTP(httptest.NewRecorder(), req)

		if !strings.Contains(buf.String(), "GET /api/system/health 418") {
			t.Errorf("Unexpected log line: %q", buf.String())
		}
	})

	t.Run("hijack fails cleanly when unsupported", func(t *testing.T) {
		var hijackErr error
		h := middleware.Logger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("Expected wrapped writer to implement http.Hijacker")
			}
			_, _, hijackErr = hj.Hijack()
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/ws", nil))

		if hijackErr == nil {
			t.Error("Expected error hijacking a recorder")
		}
	})
}
