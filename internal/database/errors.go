// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package database

import (
	"errors"
	"io"

	"github.com/tomtom215/marketscope/internal/logging"
)

var (
	// ErrUnknownSource is returned by NewSource for an unsupported dataset.source.
	ErrUnknownSource = errors.New("unknown dataset source")

	// ErrInvalidPayment marks a row whose payment value is negative, NaN or infinite.
	ErrInvalidPayment = errors.New("invalid payment value")

	// ErrMissingPurchaseDate marks a row without a purchase timestamp.
	ErrMissingPurchaseDate = errors.New("missing purchase timestamp")

	// ErrEmptyDataset is returned when a source yields no usable rows.
	ErrEmptyDataset = errors.New("dataset is empty")
)

// closeWithLog closes a resource and logs any error.
// Use this for cleanup where errors should be acknowledged but not fail the operation.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use this in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
