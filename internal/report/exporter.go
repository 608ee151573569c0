// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/marketscope/internal/analytics"
	"github.com/tomtom215/marketscope/internal/config"
	"github.com/tomtom215/marketscope/internal/logging"
	"github.com/tomtom215/marketscope/internal/metrics"
	"github.com/tomtom215/marketscope/internal/models"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// timestampLayout is the generated-at suffix of report filenames.
const timestampLayout = "20060102-150405"

// ErrUnsupportedFormat is returned for formats other than json and yaml.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Exporter builds dashboard reports and writes them to disk.
type Exporter struct {
	outputDir string
	format    string
	now       func() time.Time
}

// NewExporter creates an Exporter with the directory and default format
// from cfg.
func NewExporter(cfg *config.ReportConfig) *Exporter {
	format := cfg.Format
	if format == "" {
		format = FormatJSON
	}
	dir := cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	return &Exporter{
		outputDir: dir,
		format:    format,
		now:       time.Now,
	}
}

// Build assembles the report document for r.
func (e *Exporter) Build(ctx context.Context, table *analytics.Table, r analytics.DateRange) (*models.Report, error) {
	dashboard, err := analytics.BuildDashboard(ctx, table, r)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return &models.Report{
		ReportID:    uuid.New().String(),
		GeneratedAt: e.now().UTC(),
		Dataset:     table.Info(),
		Dashboard:   *dashboard,
	}, nil
}

// Export builds the report for r and writes it in format. An empty format
// uses the configured default. It returns the written path.
func (e *Exporter) Export(ctx context.Context, table *analytics.Table, r analytics.DateRange, format string) (string, *models.Report, error) {
	if format == "" {
		format = e.format
	}
	if !validFormat(format) {
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	rep, err := e.Build(ctx, table, r)
	if err != nil {
		return "", nil, err
	}

	path, err := e.Write(rep, format)
	if err != nil {
		return "", nil, err
	}
	return path, rep, nil
}

// Write encodes rep into the output directory. The file appears atomically
// under its final name.
func (e *Exporter) Write(rep *models.Report, format string) (string, error) {
	if !validFormat(format) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := os.MkdirAll(e.outputDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	name := Filename(rep.Dashboard.Range.StartDate, rep.Dashboard.Range.EndDate, rep.GeneratedAt, format)
	path := filepath.Join(e.outputDir, name)

	tmp, err := os.CreateTemp(e.outputDir, ".report-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp report file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := Encode(tmp, rep, format); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close report file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move report into place: %w", err)
	}

	metrics.RecordReport(format)
	logging.Info().
		Str("report_id", rep.ReportID).
		Str("format", format).
		Str("path", path).
		Msg("Report written")

	return path, nil
}

// Encode writes rep to w in format.
func Encode(w io.Writer, rep *models.Report, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("failed to encode json report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush yaml report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Filename returns marketscope_report_<start>_<end>_<timestamp>.<format>.
func Filename(start, end string, generatedAt time.Time, format string) string {
	return fmt.Sprintf("marketscope_report_%s_%s_%s.%s", start, end, generatedAt.UTC().Format(timestampLayout), format)
}

func validFormat(format string) bool {
	return format == FormatJSON || format == FormatYAML
}
