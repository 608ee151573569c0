// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

// Package main is the entry point for the Marketscope server.
//
// Marketscope loads one e-commerce transaction dataset into memory and serves
// date-range analytics over it: daily orders, product and state rankings,
// payment matrices, RFM scores and segments, and a geographic point layer.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, config.yaml and environment variables (Koanf v2)
//  2. Dataset source: DuckDB for csv/parquet/duckdb, or Postgres, MySQL or
//     MongoDB behind a circuit breaker
//  3. WebSocket hub and API handler
//  4. Supervisor tree: dataset loader (data layer), WebSocket hub
//     (messaging layer) and HTTP server (api layer)
//
// The first dataset load runs inside the supervisor. While it is pending or
// failing, /api/v1/health reports "degraded" and analytics endpoints return
// 503.
//
// # Example Usage
//
//	export DATASET_SOURCE=csv
//	export DATASET_PATH=./data/orders.csv
//	./marketscope
//
//	export DATASET_SOURCE=postgres
//	export DATASET_DSN=postgres://analytics@db:5432/shop
//	export DATASET_TABLE=transactions
//	./marketscope
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
// in-flight requests, WebSocket clients receive a close frame and the
// dataset source is closed.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/marketscope/internal/api"
	"github.com/tomtom215/marketscope/internal/config"
	"github.com/tomtom215/marketscope/internal/database"
	"github.com/tomtom215/marketscope/internal/logging"
	"github.com/tomtom215/marketscope/internal/supervisor"
	"github.com/tomtom215/marketscope/internal/supervisor/services"
	ws "github.com/tomtom215/marketscope/internal/websocket"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

const (
	httpShutdownTimeout = 10 * time.Second
	httpIdleTimeout     = 60 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logCfg := logging.FromSettings(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Caller)
	logCfg.Service = "marketscope"
	logging.Init(logCfg)

	logging.Info().
		Str("version", Version).
		Str("source", cfg.Dataset.Source).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Marketscope")

	source, err := database.NewSource(&cfg.Dataset, &cfg.Breaker)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize dataset source")
	}
	defer func() {
		if err := source.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing dataset source")
		}
	}()
	loader := database.NewLoader(source, &cfg.Dataset)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  httpShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	wsHub := ws.NewHub()
	handler := api.NewHandler(cfg, loader, wsHub, Version)
	defer handler.Close()

	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromConfig(cfg)))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       httpIdleTimeout,
	}

	tree.AddDataService(services.NewDatasetService(loader, handler.SetTable))
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	tree.AddAPIService(services.NewHTTPServerService(server, httpShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("Services added to supervisor tree")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	// ServeBackground delivers exactly one value and never closes the channel.
	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Marketscope stopped")
}
