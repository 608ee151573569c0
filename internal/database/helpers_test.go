// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package database

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tomtom215/marketscope/internal/models"
)

// stubSource is an in-memory Source for loader and breaker tests.
type stubSource struct {
	name   string
	rows   []models.Transaction
	err    error
	calls  atomic.Int32
	closed atomic.Bool
	delay  time.Duration
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Load(ctx context.Context) ([]models.Transaction, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Transaction, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *stubSource) Close() error {
	s.closed.Store(true)
	return nil
}

func tx(order, customer string, purchased string, value float64) models.Transaction {
	ts, err := time.Parse("2006-01-02 15:04:05", purchased)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		OrderID:      order,
		CustomerID:   customer,
		PurchasedAt:  ts,
		PaymentValue: value,
		PaymentType:  models.PaymentCreditCard,
		ItemQuantity: 1,
	}
}
