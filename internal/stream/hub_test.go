package stream_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/niveshai/niveshai-backend/internal/model"
	"github.com/niveshai/niveshai-backend/internal/stream"
)

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *stream.Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d clients, got %d", n, hub.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// TestHub_Publish tests delivery of updates to connected clients.
//
// WHY: Dashboards rely on the stream to reflect refreshes without polling;
// filtered clients must only see their own portfolios.
func TestHub_Publish(t *testing.T) {
	hub := stream.NewHub(nil)
	server := httptest.NewServer(hub)
	defer server.Close()
	defer hub.Close()

	all := dial(t, server, "/")
	filtered := dial(t, server, "/?userId=user-2")
	waitForClients(t, hub, 2)

	hub.Publish(model.PortfolioUpdate{Type: model.UpdateRefreshed, PortfolioID: "p1", OwnerID: "user-1", Timestamp: time.Now()})
	hub.Publish(model.PortfolioUpdate{Type: model.UpdateDeleted, PortfolioID: "p2", OwnerID: "user-2", Timestamp: time.Now()})

	var got model.PortfolioUpdate
	_ = all.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := all.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON() returned unexpected error: %v", err)
	}
	if got.PortfolioID != "p1" || got.Type != model.UpdateRefreshed {
		t.Errorf("Unexpected first update: %+v", got)
	}
	if err := all.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON() returned unexpected error: %v", err)
	}
	if got.PortfolioID != "p2" {
		t.Errorf("Unexpected second update: %+v", got)
	}

	_ = filtered.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := filtered.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON() returned unexpected error: %v", err)
	}
	if got.OwnerID != "user-2" {
		t.Errorf("Filtered client received update for %s", got.OwnerID)
	}
}

// TestHub_Disconnect tests that closed connections are unregistered.
func TestHub_Disconnect(t *testing.T) {
	hub := stream.NewHub(nil)
	server := httptest.NewServer(hub)
	defer server.Close()

	conn := dial(t, server, "/")
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)

	// Publishing with no clients is a no-op.
	hub.Publish(model.PortfolioUpdate{Type: model.UpdateChanged})
}
