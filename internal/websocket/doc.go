// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

/*
Package websocket pushes dashboard data to browser clients.

A Hub owns the set of connected clients and broadcasts to them. Each Client
runs a readPump and a writePump goroutine over a gorilla/websocket
connection. RunWithContext runs the hub under the supervisor's messaging
layer and closes every client when its context is canceled.

Message Types:

Clients send:

  - ping: answered with pong
  - subscribe_range: {"start_date": "YYYY-MM-DD", "end_date": "YYYY-MM-DD"};
    answered with a dashboard message for that range

The server sends:

  - pong
  - dashboard: every derived table for the requested range
  - dataset_reloaded: broadcast after a manual reload
  - error: {"code", "message", "details"}

subscribe_range is throttled per client with a token bucket
(golang.org/x/time/rate). Requests over the limit get a RATE_LIMITED error.
Dashboards are computed by the DashboardProvider installed with
SetDashboardProvider, which is the API handler and its result cache.

Usage:

	hub := websocket.NewHub()
	hub.SetDashboardProvider(handler)
	tree.AddMessagingService(services.NewWebSocketHubService(hub))

	client := websocket.NewClient(hub, conn)
	if hub.Join(client) {
	    client.Start()
	}

A client whose send buffer fills up during a broadcast is dropped rather
than blocking the hub.
*/
package websocket
