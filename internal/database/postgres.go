// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomtom215/marketscope/internal/config"
	"github.com/tomtom215/marketscope/internal/models"
)

// PostgresSource reads the transaction table from PostgreSQL over a pgx pool.
type PostgresSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSource parses dsn and creates the pool. Connections are
// established on first use.
func NewPostgresSource(dsn, table string) (*PostgresSource, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres DSN: %w", err)
	}
	poolCfg.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	return &PostgresSource{pool: pool, table: table}, nil
}

// Name returns "postgres".
func (s *PostgresSource) Name() string { return config.SourcePostgres }

// Load queries the configured table.
func (s *PostgresSource) Load(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.pool.Query(ctx, selectTransactions(dialectPostgres, s.table))
	if err != nil {
		return nil, fmt.Errorf("failed to query postgres table %s: %w", s.table, err)
	}
	defer rows.Close()

	return scanTransactions(rows.Next, rows, rows.Err)
}

// Close closes every pooled connection.
func (s *PostgresSource) Close() error {
	s.pool.Close()
	return nil
}
