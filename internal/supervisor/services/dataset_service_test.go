// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/marketscope/internal/analytics"
	"github.com/tomtom215/marketscope/internal/models"
)

// flakyLoader fails the first failures calls and then returns a one-row table.
type flakyLoader struct {
	failures int32
	calls    atomic.Int32
}

func (f *flakyLoader) Load(context.Context) (*analytics.Table, error) {
	n := f.calls.Add(1)
	if n <= f.failures {
		return nil, errors.New("source unavailable")
	}
	rows := []models.Transaction{{
		OrderID:      "o1",
		CustomerID:   "c1",
		PurchasedAt:  time.Date(2017, 1, 5, 10, 0, 0, 0, time.UTC),
		PaymentValue: 10,
	}}
	return analytics.NewTable(rows, "csv"), nil
}

type tableSink struct {
	mu     sync.Mutex
	tables []*analytics.Table
}

func (s *tableSink) set(t *analytics.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = append(s.tables, t)
}

func (s *tableSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables)
}

var _ suture.Service = (*DatasetService)(nil)

func TestDatasetService_LoadsOnceThenIdles(t *testing.T) {
	loader := &flakyLoader{}
	sink := &tableSink{}
	svc := NewDatasetService(loader, sink.set)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(time.Second)
	for !svc.Loaded() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !svc.Loaded() {
		t.Fatal("dataset was not loaded")
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}

	// A restart after a successful load must not reload.
	ctx2, cancel2 := context.WithCancel(context.Background())
	cancel2()
	_ = svc.Serve(ctx2)

	if got := loader.calls.Load(); got != 1 {
		t.Errorf("Load calls = %d, want 1", got)
	}
	if sink.count() != 1 {
		t.Errorf("sink received %d tables, want 1", sink.count())
	}
	if svc.String() != "dataset-loader" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestDatasetService_FailureIsReturned(t *testing.T) {
	svc := NewDatasetService(&flakyLoader{failures: 1}, (&tableSink{}).set)
	err := svc.Serve(context.Background())
	if err == nil {
		t.Fatal("Serve() = nil, want load error")
	}
	if svc.Loaded() {
		t.Error("Loaded() = true after a failed load")
	}
}

func TestDatasetService_RetriedBySupervisor(t *testing.T) {
	loader := &flakyLoader{failures: 2}
	sink := &tableSink{}
	svc := NewDatasetService(loader, sink.set)

	sup := suture.New("data-layer", suture.Spec{
		FailureThreshold: 50,
		FailureBackoff:   5 * time.Millisecond,
		Timeout:          time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for !svc.Loaded() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-errCh

	if !svc.Loaded() {
		t.Fatal("dataset was never loaded")
	}
	if got := loader.calls.Load(); got != 3 {
		t.Errorf("Load calls = %d, want 3", got)
	}
	if sink.count() != 1 {
		t.Errorf("sink received %d tables, want 1", sink.count())
	}
}
