// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

// Package testinfra provides test infrastructure for integration testing with containers.
//
// This package uses testcontainers-go to manage Docker containers for integration tests,
// so remote dataset sources are exercised against real servers instead of mocks.
//
// # PostgreSQL Container
//
// The PostgresContainer starts a PostgreSQL server seeded with init scripts:
//
//	func TestPostgresLoad(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    pg, err := testinfra.NewPostgresContainer(ctx,
//	        testinfra.WithInitSQL("01_transactions.sql", seed),
//	    )
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, pg)
//
//	    src, err := database.NewPostgresSource(pg.DSN, "transactions")
//	    // ...
//	}
//
// # CI Considerations
//
// These tests require Docker and network access and only build with the
// integration tag:
//
//	go test -tags integration ./...
//
// Tests are skipped gracefully if Docker is unavailable.
package testinfra
