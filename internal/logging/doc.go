// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

// Package logging provides centralized zerolog-based structured logging for Marketscope.
//
// JSON output is the production default and console output is available
// for development. The global logger is configured once at startup from
// the logging section of the loaded configuration:
//
//	cfg := logging.FromSettings(appCfg.Logging.Level, appCfg.Logging.Format, appCfg.Logging.Caller)
//	cfg.Service = "marketscope"
//	logging.Init(cfg)
//
//	logging.Info().Str("source", "csv").Int("rows", 112650).Msg("Dataset loaded")
//	logging.Err(err).Msg("Dataset reload failed")
//
// # Log Levels
//
//	trace, debug, info (default), warn, error, fatal, disabled
//
// Always terminate log chains with .Msg() or .Send(); an unterminated
// event is never written.
//
// # Request Context
//
// The request ID middleware stores the request ID in the request context,
// and analytics handlers add the date range being computed. Ctx copies
// both onto the logger:
//
//	ctx = logging.ContextWithDateRange(ctx, "2018-01-01", "2018-01-31")
//	logging.Ctx(ctx).Debug().Msg("Building dashboard")
//
// # slog Adapter
//
// The supervisor tree logs through sutureslog, which takes an *slog.Logger.
// NewSlogLogger returns one that writes through zerolog:
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger("supervisor")}
//
// # Output Formats
//
// JSON:
//
//	{"level":"info","service":"marketscope","time":"2026-01-03T10:30:00Z","message":"Server starting","port":3857}
//
// Console:
//
//	10:30:00 INF Server starting port=3857
//
// # Testing
//
//	var buf bytes.Buffer
//	logging.SetLogger(logging.NewTestLogger(&buf))
package logging
