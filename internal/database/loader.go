// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package database

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/marketscope/internal/analytics"
	"github.com/tomtom215/marketscope/internal/config"
	"github.com/tomtom215/marketscope/internal/logging"
	"github.com/tomtom215/marketscope/internal/metrics"
	"github.com/tomtom215/marketscope/internal/models"
)

// Loader turns a Source into an immutable analytics.Table. It is the
// validation boundary: rows leaving the Loader have a purchase timestamp
// and a finite, non-negative payment value.
type Loader struct {
	source      Source
	timeout     time.Duration
	skipInvalid bool
}

// NewLoader creates a Loader for source using the timeout and row policy
// from cfg.
func NewLoader(source Source, cfg *config.DatasetConfig) *Loader {
	return &Loader{
		source:      source,
		timeout:     cfg.LoadTimeout,
		skipInvalid: cfg.SkipInvalidRows,
	}
}

// Source returns the underlying source.
func (l *Loader) Source() Source { return l.source }

// Load reads, validates and indexes the full dataset.
func (l *Loader) Load(ctx context.Context) (*analytics.Table, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	name := l.source.Name()
	start := time.Now()

	rows, err := l.source.Load(ctx)
	if err == nil {
		rows, err = l.validate(rows)
	}
	if err == nil && len(rows) == 0 {
		err = ErrEmptyDataset
	}

	metrics.RecordDatasetLoad(name, time.Since(start), len(rows), err)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s dataset: %w", name, err)
	}

	table := analytics.NewTable(rows, name)
	bounds, _ := table.Bounds()
	logging.Info().
		Str("source", name).
		Int("rows", table.Len()).
		Str("min_date", bounds.StartString()).
		Str("max_date", bounds.EndString()).
		Dur("duration", time.Since(start)).
		Msg("Dataset loaded")

	return table, nil
}

// validate applies the row checks. Invalid rows fail the load unless the
// loader skips them, in which case they are counted and dropped.
func (l *Loader) validate(rows []models.Transaction) ([]models.Transaction, error) {
	kept := rows[:0]
	rejected := 0
	for i := range rows {
		if err := ValidateTransaction(&rows[i]); err != nil {
			if !l.skipInvalid {
				return nil, fmt.Errorf("row %d (order %q): %w", i+1, rows[i].OrderID, err)
			}
			metrics.RecordRejectedRow(rejectReason(err))
			rejected++
			continue
		}
		kept = append(kept, rows[i])
	}
	if rejected > 0 {
		logging.Warn().Int("rejected", rejected).Int("kept", len(kept)).Msg("Dropped invalid dataset rows")
	}
	return kept, nil
}

// ValidateTransaction checks the loading-boundary invariants of one row.
func ValidateTransaction(tx *models.Transaction) error {
	if tx.PurchasedAt.IsZero() {
		return ErrMissingPurchaseDate
	}
	v := tx.PaymentValue
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidPayment, v)
	}
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPayment):
		return "invalid_payment"
	case errors.Is(err, ErrMissingPurchaseDate):
		return "missing_purchase_date"
	default:
		return "other"
	}
}
