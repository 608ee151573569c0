// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package config

import (
	"fmt"
	"time"
)

// Validate checks that required configuration is present and valid.
// Every failure wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateDataset,
		c.validateServer,
		c.validateRateLimits,
		c.validateCache,
		c.validateLogging,
		c.validateReport,
		c.validateBreaker,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// validSources defines the allowed dataset source kinds
var validSources = map[string]bool{
	SourceCSV:      true,
	SourceParquet:  true,
	SourceDuckDB:   true,
	SourcePostgres: true,
	SourceMySQL:    true,
	SourceMongoDB:  true,
}

// validateDataset validates the dataset source configuration
func (c *Config) validateDataset() error {
	d := &c.Dataset
	if !validSources[d.Source] {
		return fmt.Errorf("DATASET_SOURCE must be one of: csv, parquet, duckdb, postgres, mysql, mongodb")
	}
	if d.LoadTimeout <= 0 {
		return fmt.Errorf("DATASET_LOAD_TIMEOUT must be positive")
	}

	if !d.IsRemote() {
		if d.Path == "" {
			return fmt.Errorf("DATASET_PATH is required when DATASET_SOURCE=%s", d.Source)
		}
		if d.Source == SourceDuckDB && d.Table == "" {
			return fmt.Errorf("DATASET_TABLE is required when DATASET_SOURCE=duckdb")
		}
		return nil
	}

	if d.DSN == "" {
		return fmt.Errorf("DATASET_DSN is required when DATASET_SOURCE=%s", d.Source)
	}
	if err := validateDSN(d.Source, d.DSN); err != nil {
		return fmt.Errorf("DATASET_DSN is invalid: %w", err)
	}
	switch d.Source {
	case SourceMongoDB:
		if d.Database == "" || d.Collection == "" {
			return fmt.Errorf("MONGO_DATABASE and MONGO_COLLECTION are required when DATASET_SOURCE=mongodb")
		}
	default:
		if d.Table == "" {
			return fmt.Errorf("DATASET_TABLE is required when DATASET_SOURCE=%s", d.Source)
		}
		if !isSafeIdentifier(d.Table) {
			return fmt.Errorf("DATASET_TABLE must contain only letters, digits, underscores and dots")
		}
	}
	return nil
}

// isSafeIdentifier accepts schema-qualified SQL identifiers. The table name
// is interpolated into SQL, so anything else is rejected.
func isSafeIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateCache validates the result cache configuration
func (c *Config) validateCache() error {
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when the cache is enabled")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// ValidReportFormats lists the formats the report exporter can write
var ValidReportFormats = map[string]bool{
	"json": true,
	"yaml": true,
}

// validateReport validates the report exporter defaults
func (c *Config) validateReport() error {
	if !ValidReportFormats[c.Report.Format] {
		return fmt.Errorf("REPORT_FORMAT must be one of: json, yaml")
	}
	return nil
}

// validateBreaker validates circuit breaker settings
func (c *Config) validateBreaker() error {
	b := &c.Breaker
	if b.MaxRequests == 0 {
		return fmt.Errorf("BREAKER_MAX_REQUESTS must be at least 1")
	}
	if b.Timeout <= 0 || b.Interval < 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive and BREAKER_INTERVAL non-negative")
	}
	if b.FailureRatio <= 0 || b.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	return nil
}
