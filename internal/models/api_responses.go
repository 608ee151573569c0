// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package models

import (
	"time"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Status is "success" with Data populated, or "error" with Error populated.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": [{"date": "2017-11-24", "order_count": 1147, "revenue": 212304.5}],
//	  "metadata": {
//	    "timestamp": "2026-03-01T12:00:00Z",
//	    "query_time_ms": 4
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "Validation failed for field 'start_date'",
//	    "details": {"field": "start_date"}
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and cache information for a response.
// Cached responses report QueryTimeMS as 0.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the structured error body.
//
// Codes in use:
//   - VALIDATION_ERROR: invalid query parameters
//   - SERVICE_ERROR: no dataset loaded or aggregation failure
//   - SOURCE_ERROR: the dataset source could not be reloaded
//   - METHOD_NOT_ALLOWED: wrong HTTP method
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status        string    `json:"status"`
	Version       string    `json:"version"`
	DatasetLoaded bool      `json:"dataset_loaded"`
	Rows          int       `json:"rows"`
	Uptime        float64   `json:"uptime_seconds"`
	LastLoad      time.Time `json:"last_load,omitempty"`
}

// DatasetInfo describes the loaded dataset. MinDate and MaxDate bound the
// date picker.
type DatasetInfo struct {
	Source   string    `json:"source" yaml:"source"`
	Rows     int       `json:"rows" yaml:"rows"`
	MinDate  string    `json:"min_date" yaml:"min_date"`
	MaxDate  string    `json:"max_date" yaml:"max_date"`
	LoadedAt time.Time `json:"loaded_at" yaml:"loaded_at"`
}

// Report is the document written by the report exporter.
type Report struct {
	ReportID    string      `json:"report_id" yaml:"report_id"`
	GeneratedAt time.Time   `json:"generated_at" yaml:"generated_at"`
	Dataset     DatasetInfo `json:"dataset" yaml:"dataset"`
	Dashboard   Dashboard   `json:"dashboard" yaml:"dashboard"`
}
