// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

/*
Package supervisor provides process supervision for Marketscope using suture v4.

# Overview

Services are organized into three layers for failure isolation:

	RootSupervisor ("marketscope")
	├── DataSupervisor ("data-layer")
	│   └── DatasetService
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocketHubService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

An unreachable dataset source restarts only the data layer. The API keeps
serving /api/v1/health (reporting "degraded") and /api/v1/health/ready
returns 503 until the first load succeeds.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(nil, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddDataService(services.NewDatasetService(loader, handler.SetTable))
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}

A nil logger routes suture events through logging.NewSlogLogger.

# Configuration

TreeConfig controls restart behavior. Zero values take suture's defaults:
  - FailureThreshold: 5 failures
  - FailureDecay: 30 seconds
  - FailureBackoff: 15 seconds
  - ShutdownTimeout: 10 seconds

# Service Interface

	type Service interface {
	    Serve(ctx context.Context) error
	}

Returning an error makes the parent restart the service. Services must
return promptly once ctx is canceled.

# Debugging Shutdown Issues

	report, err := tree.UnstoppedServiceReport()

lists services that did not stop within ShutdownTimeout.

# See Also

  - internal/supervisor/services: Service wrappers
  - github.com/thejerf/suture/v4: Underlying library
*/
package supervisor
