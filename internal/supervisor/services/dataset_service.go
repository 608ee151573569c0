// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/tomtom215/marketscope/internal/analytics"
	"github.com/tomtom215/marketscope/internal/logging"
)

// TableLoader is satisfied by *database.Loader.
type TableLoader interface {
	Load(ctx context.Context) (*analytics.Table, error)
}

// DatasetService performs the initial dataset load inside the data layer.
//
// A failed load is returned to suture, which restarts the service with
// backoff until the source answers. The API serves health checks in the
// meantime and reports the dataset as not loaded. Once a table has been
// handed to the sink the service idles until shutdown; later reloads are
// manual and go through the API.
type DatasetService struct {
	loader TableLoader
	sink   func(*analytics.Table)
	loaded atomic.Bool
	name   string
}

// NewDatasetService creates a service that passes the loaded table to sink.
func NewDatasetService(loader TableLoader, sink func(*analytics.Table)) *DatasetService {
	return &DatasetService{
		loader: loader,
		sink:   sink,
		name:   "dataset-loader",
	}
}

// Loaded reports whether the initial load has succeeded.
func (d *DatasetService) Loaded() bool {
	return d.loaded.Load()
}

// Serve implements suture.Service.
func (d *DatasetService) Serve(ctx context.Context) error {
	if !d.loaded.Load() {
		table, err := d.loader.Load(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logging.Warn().Err(err).Msg("Initial dataset load failed, will retry")
			return fmt.Errorf("initial dataset load: %w", err)
		}
		d.sink(table)
		d.loaded.Store(true)
	}

	<-ctx.Done()
	return ctx.Err()
}

// String implements fmt.Stringer.
func (d *DatasetService) String() string {
	return d.name
}
