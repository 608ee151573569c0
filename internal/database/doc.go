// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

/*
Package database loads the transaction dataset into an immutable
analytics.Table.

# Sources

A Source reads raw rows from one backend:

  - DuckDBSource: CSV (read_csv_auto), Parquet (read_parquet) or a table in a
    .duckdb file, through the embedded DuckDB engine
  - PostgresSource: a table read with a pgx pool
  - MySQLSource: a table read with go-sql-driver/mysql
  - MongoSource: a collection decoded with the official mongo-driver

Every SQL source runs the same projection over the flattened export columns
(order_id, customer_id, order_purchase_timestamp, ... geolocation_state).
NewSource picks the implementation from config.DatasetConfig and wraps remote
sources in a BreakerSource (sony/gobreaker) so an unreachable database fails
reloads fast.

# Loading

Loader.Load bounds the read with the configured timeout, validates each row
and records dataset metrics:

	src, err := database.NewSource(&cfg.Dataset, &cfg.Breaker)
	if err != nil {
	    return err
	}
	defer src.Close()

	table, err := database.NewLoader(src, &cfg.Dataset).Load(ctx)

Rows with a negative, NaN or infinite payment value fail the load with
ErrInvalidPayment, and rows without a purchase timestamp with
ErrMissingPurchaseDate. With dataset.skip_invalid_rows they are dropped and
counted in dataset_rejected_rows_total instead. A load that yields no rows
returns ErrEmptyDataset.

# Thread Safety

Sources are safe for sequential reloads. The returned Table is read-only and
may be shared across goroutines.
*/
package database
