// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package websocket

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marketscope/internal/analytics"
	"github.com/tomtom215/marketscope/internal/logging"
	"github.com/tomtom215/marketscope/internal/metrics"
	"github.com/tomtom215/marketscope/internal/validation"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024

	// subscribeRate and subscribeBurst throttle subscribe_range per client.
	subscribeRate  = 5
	subscribeBurst = 5

	// dashboardTimeout bounds one subscribe_range computation.
	dashboardTimeout = 30 * time.Second

	sendBufferSize = 64
)

// Error codes sent in error messages.
const (
	ErrorCodeRateLimited = "RATE_LIMITED"
	ErrorCodeBadRequest  = "BAD_REQUEST"
	ErrorCodeService     = "SERVICE_ERROR"
)

// ErrorData is the payload of an error message.
type ErrorData struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// clientIDCounter gives clients increasing IDs so broadcasts visit them in
// a stable order.
var clientIDCounter atomic.Uint64

// Client is a middleman between the websocket connection and the hub
type Client struct {
	id      uint64
	hub     *Hub
	conn    *websocket.Conn
	limiter *rate.Limiter

	ctx    context.Context
	cancel context.CancelFunc

	sendMu sync.Mutex
	send   chan Message
	closed bool
}

// NewClient creates a new Client with a unique ID and its own
// subscribe_range limiter.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		id:      clientIDCounter.Add(1),
		hub:     hub,
		conn:    conn,
		limiter: rate.NewLimiter(rate.Limit(subscribeRate), subscribeBurst),
		ctx:     ctx,
		cancel:  cancel,
		send:    make(chan Message, sendBufferSize),
	}
}

// ID returns the client's unique identifier
func (c *Client) ID() uint64 {
	return c.id
}

// enqueue queues msg without blocking. It reports false when the buffer is
// full or the client is closed.
func (c *Client) enqueue(msg Message) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// closeSend closes the send channel once, which makes writePump send a
// close frame and exit.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// reply queues a message for this client only.
func (c *Client) reply(messageType string, data any) {
	if !c.enqueue(Message{Type: messageType, Data: data}) {
		logging.Debug().Uint64("client_id", c.id).Str("message_type", messageType).Msg("dropping reply to closed or slow client")
	}
}

func (c *Client) replyError(code, message string, details map[string]any) {
	c.reply(MessageTypeError, ErrorData{Code: code, Message: message, Details: details})
}

// handleMessage dispatches one raw client message.
func (c *Client) handleMessage(raw []byte) {
	metrics.WSMessagesReceived.Inc()

	var msg inboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		metrics.WSErrors.WithLabelValues("bad_request").Inc()
		c.replyError(ErrorCodeBadRequest, "Invalid message", nil)
		return
	}

	switch msg.Type {
	case MessageTypePing:
		c.reply(MessageTypePong, nil)
	case MessageTypeSubscribeRange:
		c.handleSubscribeRange(msg.Data)
	default:
		metrics.WSErrors.WithLabelValues("bad_request").Inc()
		c.replyError(ErrorCodeBadRequest, "Unknown message type", map[string]any{"type": msg.Type})
	}
}

// handleSubscribeRange answers a subscribe_range request with the dashboard
// for that range.
func (c *Client) handleSubscribeRange(data json.RawMessage) {
	if !c.limiter.Allow() {
		metrics.WSErrors.WithLabelValues("throttled").Inc()
		c.replyError(ErrorCodeRateLimited, "Too many subscribe_range requests", nil)
		return
	}

	var req validation.RangeRequest
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			metrics.WSErrors.WithLabelValues("bad_request").Inc()
			c.replyError(ErrorCodeBadRequest, "Invalid subscribe_range data", nil)
			return
		}
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		metrics.WSErrors.WithLabelValues("bad_request").Inc()
		c.replyError(apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	provider := c.hub.dashboardProvider()
	if provider == nil {
		c.replyError(ErrorCodeService, "Dashboard service unavailable", nil)
		return
	}

	ctx, cancel := context.WithTimeout(c.ctx, dashboardTimeout)
	defer cancel()
	ctx = logging.ContextWithDateRange(ctx, req.StartDate, req.EndDate)

	dashboard, err := provider.DashboardForRange(ctx, req)
	if err != nil {
		metrics.WSErrors.WithLabelValues("dashboard").Inc()
		msg := "Failed to build dashboard"
		if errors.Is(err, analytics.ErrNoDataset) {
			msg = "No dataset loaded"
		}
		logging.Ctx(ctx).Warn().Err(err).Uint64("client_id", c.id).Msg("subscribe_range failed")
		c.replyError(ErrorCodeService, msg, nil)
		return
	}
	c.reply(MessageTypeDashboard, dashboard)
}

// readPump reads client messages until the connection fails.
func (c *Client) readPump() {
	defer func() {
		c.cancel()
		c.hub.leave(c)
		_ = c.conn.Close() // best-effort cleanup
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn().Err(err).Uint64("client_id", c.id).Msg("unexpected websocket close")
			}
			return
		}
		c.handleMessage(raw)
	}
}

// writePump writes queued messages and keepalive pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // best-effort cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}

			if !ok {
				// The hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := MarshalMessage(message)
			if err != nil {
				logging.Error().Err(err).Str("message_type", message.Type).Msg("failed to marshal websocket message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logging.Debug().Err(err).Uint64("client_id", c.id).Msg("websocket write failed")
				return
			}
			metrics.WSMessagesSent.Inc()

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start begins reading and writing for the client. The client must already
// be registered with the hub.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}
