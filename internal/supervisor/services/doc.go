// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

/*
Package services adapts Marketscope components to suture.Service.

# Available Services

DatasetService (data layer):
  - Performs the initial dataset load and hands the table to the API
  - Returns the load error so suture retries with backoff
  - Idles after a successful load; reloads are manual

WebSocketHubService (messaging layer):
  - Runs websocket.Hub.RunWithContext
  - The hub closes every client on shutdown

HTTPServerService (api layer):
  - Runs ListenAndServe in a goroutine
  - Drains connections with Shutdown when the context is canceled
  - http.ErrServerClosed is treated as a clean stop

# Usage

	tree.AddDataService(services.NewDatasetService(loader, handler.SetTable))
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

# Error Handling

	nil         -> clean stop
	error       -> crash, suture restarts the service
	ctx.Err()   -> shutdown requested

Every wrapper implements fmt.Stringer so suture events name it.
*/
package services
