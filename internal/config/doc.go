// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

/*
Package config provides centralized configuration management for Marketscope.

Configuration is layered with Koanf v2: built-in defaults first, then an
optional YAML file (config.yaml, /etc/marketscope/config.yaml, or the path in
CONFIG_PATH), then environment variables. Validate runs after loading and
every failure wraps ErrInvalidConfig.

# Configuration Structure

  - DatasetConfig: which transaction source to load and how
  - ServerConfig: HTTP bind address, port and timeouts
  - SecurityConfig: CORS origins and rate limiting
  - CacheConfig: per-range dashboard cache
  - LoggingConfig: zerolog level, format and caller info
  - ReportConfig: report exporter defaults
  - BreakerConfig: circuit breaker around remote sources

# Environment Variables

Dataset (DatasetConfig):
  - DATASET_SOURCE: csv, parquet, duckdb, postgres, mysql, mongodb (default: csv)
  - DATASET_PATH: file path for csv, parquet and duckdb sources
  - DATASET_TABLE: table for duckdb, postgres and mysql (default: transactions)
  - DATASET_DSN: connection string for remote sources
  - MONGO_DATABASE, MONGO_COLLECTION: MongoDB namespace
  - DATASET_LOAD_TIMEOUT: bound for one full load (default: 2m)
  - DATASET_SKIP_INVALID_ROWS: drop rows with bad payment values (default: false)
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS: DuckDB tuning

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 3857)
  - HTTP_TIMEOUT: Request timeout (default: 30s)
  - ENVIRONMENT: development, staging, production

Security (SecurityConfig):
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW: per-IP limit (default: 100/1m)
  - DISABLE_RATE_LIMIT: turn the limiter off
  - CORS_ORIGINS: comma-separated allowed origins (default: *)

Cache, logging and reports:
  - CACHE_ENABLED, CACHE_TTL (default: true, 5m)
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER (default: info, json, false)
  - REPORT_FORMAT, REPORT_OUTPUT_DIR (default: json, reports)

Circuit breaker (BreakerConfig):
  - BREAKER_MAX_REQUESTS, BREAKER_INTERVAL, BREAKER_TIMEOUT
  - BREAKER_FAILURE_RATIO, BREAKER_MIN_REQUESTS

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}

# Thread Safety

Config is read-only after Load and safe for concurrent use.
*/
package config
