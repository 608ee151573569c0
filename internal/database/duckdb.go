// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/marketscope/internal/config"
	"github.com/tomtom215/marketscope/internal/logging"
	"github.com/tomtom215/marketscope/internal/models"
)

// DuckDBSource reads a CSV or Parquet export, or a table inside a .duckdb
// file, through an embedded DuckDB connection. File parsing and type
// inference are left to read_csv_auto and read_parquet.
type DuckDBSource struct {
	conn *sql.DB
	kind string
	from string
}

// NewDuckDBSource opens an embedded DuckDB connection for cfg. CSV and
// Parquet use an in-memory database; the duckdb kind opens cfg.Path read-only.
func NewDuckDBSource(cfg *config.DatasetConfig) (*DuckDBSource, error) {
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, fmt.Errorf("dataset file %s: %w", cfg.Path, err)
	}

	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	var dbPath, from string
	switch cfg.Source {
	case config.SourceCSV:
		from = "read_csv_auto(" + quoteLiteral(cfg.Path) + ", header=true)"
	case config.SourceParquet:
		from = "read_parquet(" + quoteLiteral(cfg.Path) + ")"
	case config.SourceDuckDB:
		dbPath = cfg.Path
		from = cfg.Table
	default:
		return nil, fmt.Errorf("%w: %q is not a DuckDB source", ErrUnknownSource, cfg.Source)
	}

	connStr := fmt.Sprintf("%s?threads=%d&max_memory=%s", dbPath, numThreads, maxMemory)
	if dbPath != "" {
		connStr += "&access_mode=read_only"
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	configureConnectionPool(conn)

	return &DuckDBSource{conn: conn, kind: cfg.Source, from: from}, nil
}

// configureConnectionPool applies the pool limits used by every
// database/sql based source.
func configureConnectionPool(conn *sql.DB) {
	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)
	conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Name returns the configured source kind (csv, parquet or duckdb).
func (s *DuckDBSource) Name() string { return s.kind }

// Load runs the projection query and returns every row.
func (s *DuckDBSource) Load(ctx context.Context) ([]models.Transaction, error) {
	query := selectTransactions(dialectDuckDB, s.from)
	logging.Debug().Str("source", s.kind).Str("query", query).Msg("Loading dataset")

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s dataset: %w", s.kind, err)
	}
	defer closeWithLog(rows, "duckdb rows")

	return scanTransactions(rows.Next, rows, rows.Err)
}

// Close releases the embedded database.
func (s *DuckDBSource) Close() error {
	return s.conn.Close()
}
