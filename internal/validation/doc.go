// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

// Package validation provides request validation using go-playground/validator v10.
//
// A single validator instance is shared by the HTTP handlers and the
// WebSocket hub. Fields are reported under their query or json tag name, so
// a bad start date is reported as start_date rather than StartDate.
//
// The request structs in requests.go carry the API's rules: dates are
// YYYY-MM-DD, limits are 1..100, and metric takes one of the enumerated
// values. Handlers fill defaults before validating:
//
//	req := validation.RankingLimitRequest{Limit: validation.DefaultTopLimit}
//	req.Metric = validation.MetricRevenue
//	// ...copy query parameters...
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// Every failure is reported with the VALIDATION_ERROR code. A single failing
// field gives details {field, tag, value}; several give details {fields: [...]}.
package validation
