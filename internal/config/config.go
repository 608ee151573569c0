// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package config

import (
	"errors"
	"time"
)

// ErrInvalidConfig wraps every validation failure returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Dataset source kinds.
const (
	SourceCSV      = "csv"
	SourceParquet  = "parquet"
	SourceDuckDB   = "duckdb"
	SourcePostgres = "postgres"
	SourceMySQL    = "mysql"
	SourceMongoDB  = "mongodb"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	src, err := database.NewSource(&cfg.Dataset, &cfg.Breaker)
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Dataset  DatasetConfig  `koanf:"dataset"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Cache    CacheConfig    `koanf:"cache"`
	Logging  LoggingConfig  `koanf:"logging"`
	Report   ReportConfig   `koanf:"report"`
	Breaker  BreakerConfig  `koanf:"breaker"`
}

// DatasetConfig selects and tunes the transaction dataset source.
//
// File sources (csv, parquet, duckdb) read Path through an in-process DuckDB
// connection. Remote sources (postgres, mysql, mongodb) connect with DSN.
//
// Environment Variables:
//   - DATASET_SOURCE: csv, parquet, duckdb, postgres, mysql, mongodb (default: csv)
//   - DATASET_PATH: file path for file sources
//   - DATASET_TABLE: table name for duckdb, postgres and mysql (default: transactions)
//   - DATASET_DSN: connection string for remote sources
//   - MONGO_DATABASE / MONGO_COLLECTION: MongoDB namespace
//   - DATASET_LOAD_TIMEOUT: upper bound for one full load (default: 2m)
//   - DATASET_SKIP_INVALID_ROWS: drop invalid rows instead of failing the load
type DatasetConfig struct {
	Source          string        `koanf:"source"`
	Path            string        `koanf:"path"`
	Table           string        `koanf:"table"`
	DSN             string        `koanf:"dsn"`
	Database        string        `koanf:"database"`
	Collection      string        `koanf:"collection"`
	LoadTimeout     time.Duration `koanf:"load_timeout"`
	SkipInvalidRows bool          `koanf:"skip_invalid_rows"`
	MaxMemory       string        `koanf:"max_memory"` // DuckDB memory limit
	Threads         int           `koanf:"threads"`    // DuckDB threads (0 = use NumCPU)
}

// IsRemote reports whether the source is reached over the network.
func (d *DatasetConfig) IsRemote() bool {
	switch d.Source {
	case SourcePostgres, SourceMySQL, SourceMongoDB:
		return true
	default:
		return false
	}
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// CacheConfig holds the per-range result cache settings
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	TTL     time.Duration `koanf:"ttl"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production. Console is human-readable for development.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// ReportConfig holds the report exporter defaults
type ReportConfig struct {
	Format    string `koanf:"format"` // json or yaml
	OutputDir string `koanf:"output_dir"`
}

// BreakerConfig tunes the circuit breaker wrapped around remote sources.
// The breaker opens once at least MinRequests were seen in Interval and the
// failure ratio reaches FailureRatio. After Timeout it lets MaxRequests
// probes through.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	FailureRatio float64       `koanf:"failure_ratio"`
	MinRequests  uint32        `koanf:"min_requests"`
}

// Load reads configuration using the layered approach:
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
