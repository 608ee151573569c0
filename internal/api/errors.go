// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package api

import (
	"errors"

	"github.com/tomtom215/marketscope/internal/validation"
)

// API error codes
const (
	ErrCodeValidation       = validation.ErrorCode
	ErrCodeService          = "SERVICE_ERROR"
	ErrCodeSource           = "SOURCE_ERROR"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeRateLimited      = "RATE_LIMITED"
)

// ErrNoLoader is returned by Reload when the handler was built without a loader.
var ErrNoLoader = errors.New("no dataset loader configured")
