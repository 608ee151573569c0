// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

/*
Package report exports the dashboard for a date range as a JSON or YAML
document.

Each report carries a random report id and the UTC time it was generated.
Files are named

	marketscope_report_<start>_<end>_<YYYYMMDD-HHMMSS>.<json|yaml>

and are written to a temporary file in the output directory before being
renamed into place.

Usage Example:

	exp := report.NewExporter(&cfg.Report)
	path, rep, err := exp.Export(ctx, table, dr, "yaml")
*/
package report
