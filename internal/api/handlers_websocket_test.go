// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/marketscope/internal/models"
	ws "github.com/tomtom215/marketscope/internal/websocket"
)

func startTestServer(t *testing.T) (*httptest.Server, *ws.Hub) {
	t.Helper()
	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.RunWithContext(ctx)
		close(done)
	}()

	h := newTestHandler(t, nil, hub)
	server := httptest.NewServer(routerFor(h))
	t.Cleanup(func() {
		server.Close()
		cancel()
		<-done
	})
	return server, hub
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/ws"
}

func TestWebSocket_SubscribeRange(t *testing.T) {
	server, _ := startTestServer(t)

	header := http.Header{}
	header.Set("Origin", "http://localhost")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server), header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	err = conn.WriteJSON(map[string]any{
		"type": "subscribe_range",
		"data": map[string]string{"start_date": "2017-01-05", "end_date": "2017-01-10"},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var msg struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	if msg.Type != ws.MessageTypeDashboard {
		t.Fatalf("type = %q, want dashboard (%s)", msg.Type, raw)
	}
	var d models.Dashboard
	if err := json.Unmarshal(msg.Data, &d); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if d.Summary.TotalOrders != 3 {
		t.Errorf("total orders = %d, want 3", d.Summary.TotalOrders)
	}
}

func TestWebSocket_RejectsMissingOrigin(t *testing.T) {
	server, _ := startTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(server), nil)
	if err == nil {
		t.Fatal("dial succeeded without Origin")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("response = %v, want 403", resp)
	}
}

func TestWebSocket_NoHub(t *testing.T) {
	h := newTestHandler(t, nil, nil)
	rec := httptest.NewRecorder()
	h.WebSocket(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestCheckWebSocketOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		want    bool
	}{
		{"missing origin", []string{"*"}, "", false},
		{"wildcard", []string{"*"}, "https://any.example", true},
		{"exact match", []string{"https://shop.example"}, "https://shop.example", true},
		{"not allowed", []string{"https://shop.example"}, "https://evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Security.CORSOrigins = tt.origins
			h := NewHandler(cfg, nil, nil, "test")
			t.Cleanup(h.Close)

			r := httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := h.checkWebSocketOrigin(r); got != tt.want {
				t.Errorf("checkWebSocketOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}
