// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marketscope/internal/config"
	"github.com/tomtom215/marketscope/internal/metrics"
	"github.com/tomtom215/marketscope/internal/models"
)

func testBreakerConfig() *config.BreakerConfig {
	return &config.BreakerConfig{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		MinRequests:  2,
	}
}

func TestBreakerSource_PassesThrough(t *testing.T) {
	src := &stubSource{name: "bt-ok", rows: []models.Transaction{tx("o1", "A", "2018-03-01 10:00:00", 5)}}
	b := NewBreakerSource(src, testBreakerConfig())

	rows, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("Load() returned %d rows, want 1", len(rows))
	}
	if b.Name() != "bt-ok" {
		t.Errorf("Name() = %q, want bt-ok", b.Name())
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("dataset-bt-ok", "success")); got < 1 {
		t.Errorf("success counter = %v, want >= 1", got)
	}
}

func TestBreakerSource_OpensAfterFailures(t *testing.T) {
	boom := errors.New("connection refused")
	src := &stubSource{name: "bt-fail", err: boom}
	b := NewBreakerSource(src, testBreakerConfig())

	for i := 0; i < 2; i++ {
		if _, err := b.Load(context.Background()); !errors.Is(err, boom) {
			t.Fatalf("Load() #%d error = %v, want source error", i+1, err)
		}
	}

	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	_, err := b.Load(context.Background())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Load() with open circuit error = %v, want ErrOpenState", err)
	}
	if calls := src.calls.Load(); calls != 2 {
		t.Errorf("open circuit must not reach the source, calls = %d", calls)
	}

	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("dataset-bt-fail")); got != 2 {
		t.Errorf("circuit_breaker_state = %v, want 2 (open)", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("dataset-bt-fail", "rejected")); got != 1 {
		t.Errorf("rejected counter = %v, want 1", got)
	}
}

func TestBreakerSource_Close(t *testing.T) {
	src := &stubSource{name: "bt-close"}
	if err := NewBreakerSource(src, testBreakerConfig()).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.closed.Load() {
		t.Error("Close() should close the wrapped source")
	}
}

func TestStateConversions(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		f     float64
		s     string
	}{
		{gobreaker.StateClosed, 0, "closed"},
		{gobreaker.StateHalfOpen, 1, "half-open"},
		{gobreaker.StateOpen, 2, "open"},
	}
	for _, tt := range tests {
		if got := stateToFloat(tt.state); got != tt.f {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.f)
		}
		if got := stateToString(tt.state); got != tt.s {
			t.Errorf("stateToString(%v) = %q, want %q", tt.state, got, tt.s)
		}
	}
}
