// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package config

import (
	"fmt"
	"net/url"

	"github.com/go-sql-driver/mysql"
)

// validateDSN checks the connection string shape for a remote source.
// MySQL uses the driver's own DSN grammar; Postgres and MongoDB use URLs.
func validateDSN(source, dsn string) error {
	switch source {
	case SourceMySQL:
		if _, err := mysql.ParseDSN(dsn); err != nil {
			return fmt.Errorf("failed to parse MySQL DSN: %w", err)
		}
		return nil
	case SourcePostgres:
		return validateURLScheme(dsn, map[string]bool{"postgres": true, "postgresql": true})
	case SourceMongoDB:
		return validateURLScheme(dsn, map[string]bool{"mongodb": true, "mongodb+srv": true})
	default:
		return fmt.Errorf("source %q does not take a DSN", source)
	}
}

// validateURLScheme validates that a connection URL parses, uses one of the
// allowed schemes and names a host.
func validateURLScheme(rawURL string, schemes map[string]bool) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	if !schemes[parsedURL.Scheme] {
		return fmt.Errorf("unsupported scheme %q", parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("host is required")
	}

	return nil
}
