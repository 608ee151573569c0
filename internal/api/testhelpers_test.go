// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marketscope/internal/analytics"
	"github.com/tomtom215/marketscope/internal/config"
	"github.com/tomtom215/marketscope/internal/logging"
	"github.com/tomtom215/marketscope/internal/models"
	ws "github.com/tomtom215/marketscope/internal/websocket"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "error",
		Format: "json",
		Output: io.Discard,
	})
}

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

// testRows spans 2017-01-05 to 2017-02-01.
func testRows() []models.Transaction {
	return []models.Transaction{
		{
			OrderID: "o1", CustomerID: "c1", PurchasedAt: at(2017, 1, 5, 10),
			ProductCategory: "toys", ItemQuantity: 1, PaymentValue: 100,
			PaymentType: models.PaymentCreditCard, CustomerState: "SP",
			Location: &models.Location{Lat: -23.5, Lng: -46.6, City: "sao paulo", State: "SP"},
		},
		{
			OrderID: "o2", CustomerID: "c2", PurchasedAt: at(2017, 1, 5, 15),
			ProductCategory: "books", ItemQuantity: 2, PaymentValue: 50,
			PaymentType: models.PaymentBoleto, CustomerState: "RJ",
			Location: &models.Location{Lat: -22.9, Lng: -43.2, City: "rio de janeiro", State: "RJ"},
		},
		{
			OrderID: "o3", CustomerID: "c1", PurchasedAt: at(2017, 1, 10, 9),
			ProductCategory: "toys", ItemQuantity: 1, PaymentValue: 30,
			PaymentType: models.PaymentCreditCard, CustomerState: "SP",
		},
		{
			OrderID: "o4", CustomerID: "c3", PurchasedAt: at(2017, 2, 1, 12),
			ProductCategory: "garden", ItemQuantity: 3, PaymentValue: 500,
			PaymentType: models.PaymentVoucher, CustomerState: "MG",
		},
	}
}

// stubLoader returns tables in order, or err.
type stubLoader struct {
	mu     sync.Mutex
	tables []*analytics.Table
	err    error
	calls  int
}

func (l *stubLoader) Load(context.Context) (*analytics.Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	if len(l.tables) == 0 {
		return nil, errors.New("no table")
	}
	t := l.tables[0]
	if len(l.tables) > 1 {
		l.tables = l.tables[1:]
	}
	return t, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Cache:    config.CacheConfig{Enabled: true, TTL: time.Minute},
		Security: config.SecurityConfig{CORSOrigins: []string{"*"}},
	}
}

// newTestHandler builds a handler with the test rows loaded.
func newTestHandler(t *testing.T, loader DatasetLoader, hub *ws.Hub) *Handler {
	t.Helper()
	h := NewHandler(testConfig(), loader, hub, "test")
	h.SetTable(analytics.NewTable(testRows(), "test"))
	t.Cleanup(h.Close)
	return h
}

// testResponse is APIResponse with Data left raw.
type testResponse struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func serve(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp testResponse
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s %s: invalid JSON body %q: %v", method, target, rec.Body.String(), err)
		}
	}
	return rec, resp
}

func decodeData(t *testing.T, resp testResponse, v any) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", resp.Data, err)
	}
}

func routerFor(h *Handler) http.Handler {
	mc := DefaultChiMiddlewareConfig()
	mc.CORSAllowedOrigins = []string{"*"}
	return NewRouter(h, NewChiMiddleware(mc)).SetupChi()
}
