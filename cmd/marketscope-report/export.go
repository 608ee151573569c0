// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/marketscope/internal/analytics"
	"github.com/tomtom215/marketscope/internal/config"
	"github.com/tomtom215/marketscope/internal/report"
	"github.com/tomtom215/marketscope/internal/validation"
)

type exportOptions struct {
	start  string
	end    string
	format string
	out    string
}

func newExportCmd(e *env) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dashboard for a date range to a report file",
		Long: `Write the dashboard for a date range to
marketscope_report_<start>_<end>_<timestamp>.<json|yaml>.

Omitted dates default to the dataset bounds. A start after the end is
allowed and produces an empty report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, e, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.start, "start", "", "first day of the range (YYYY-MM-DD)")
	f.StringVar(&opts.end, "end", "", "last day of the range (YYYY-MM-DD)")
	f.StringVar(&opts.format, "format", "", "report format: json or yaml (default from config)")
	f.StringVar(&opts.out, "out", "", "output directory (default from config)")
	return cmd
}

func runExport(cmd *cobra.Command, e *env, opts *exportOptions) error {
	req := validation.RangeRequest{StartDate: opts.start, EndDate: opts.end}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return verr
	}
	if opts.format != "" && !config.ValidReportFormats[opts.format] {
		return fmt.Errorf("%w: %q", report.ErrUnsupportedFormat, opts.format)
	}

	ctx := cmd.Context()
	cfg, table, err := e.setup(ctx)
	if err != nil {
		return err
	}

	dr, err := rangeFor(table, req)
	if err != nil {
		return err
	}

	reportCfg := cfg.Report
	if opts.out != "" {
		reportCfg.OutputDir = opts.out
	}

	path, rep, err := report.NewExporter(&reportCfg).Export(ctx, table, dr, opts.format)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "report %s written to %s (%d orders, %s..%s)\n",
		rep.ReportID, path, rep.Dashboard.Summary.TotalOrders, dr.StartString(), dr.EndString())
	return nil
}

// rangeFor fills omitted dates from the table bounds, or today for an
// empty table.
func rangeFor(table *analytics.Table, req validation.RangeRequest) (analytics.DateRange, error) {
	bounds, ok := table.Bounds()
	if !ok {
		now := time.Now()
		bounds = analytics.NewDateRange(now, now)
	}
	start, end := req.StartDate, req.EndDate
	if start == "" {
		start = bounds.StartString()
	}
	if end == "" {
		end = bounds.EndString()
	}
	return analytics.ParseDateRange(start, end)
}
