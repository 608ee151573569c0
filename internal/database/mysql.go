// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/tomtom215/marketscope/internal/config"
	"github.com/tomtom215/marketscope/internal/models"
)

// MySQLSource reads the transaction table from MySQL or MariaDB.
type MySQLSource struct {
	db    *sql.DB
	table string
}

// NewMySQLSource opens a connector for dsn. DATETIME columns are always
// parsed into time.Time in UTC regardless of the DSN flags.
func NewMySQLSource(dsn, table string) (*MySQLSource, error) {
	mysqlCfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mysql DSN: %w", err)
	}
	mysqlCfg.ParseTime = true
	mysqlCfg.Loc = time.UTC

	connector, err := mysql.NewConnector(mysqlCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create mysql connector: %w", err)
	}

	db := sql.OpenDB(connector)
	configureConnectionPool(db)
	return &MySQLSource{db: db, table: table}, nil
}

// Name returns "mysql".
func (s *MySQLSource) Name() string { return config.SourceMySQL }

// Load queries the configured table.
func (s *MySQLSource) Load(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, selectTransactions(dialectMySQL, s.table))
	if err != nil {
		return nil, fmt.Errorf("failed to query mysql table %s: %w", s.table, err)
	}
	defer closeWithLog(rows, "mysql rows")

	return scanTransactions(rows.Next, rows, rows.Err)
}

// Close closes the connection pool.
func (s *MySQLSource) Close() error {
	return s.db.Close()
}
