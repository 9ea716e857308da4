/*
Package handler provides the HTTP handlers and routing for the homepage service.

This file serves the WebSocket variant of the update stream. It keeps the event stream's
single-consumer contract: one text frame per queued update, in order, until the client
disconnects or the user logs out. Client frames are read only to notice disconnects.
*/
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"livefeed/internal/app/feed"
	"livefeed/internal/pkg/errs"
	"livefeed/internal/pkg/logx"
	"livefeed/internal/pkg/resp"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum size of a frame the client may send.
	maxMessageSize = 512
)

// wsSink writes updates as WebSocket text frames and keepalives as pings.
type wsSink struct {
	conn *websocket.Conn
}

// Send writes one text frame.
func (s *wsSink) Send(payload []byte) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

// KeepAlive writes a ping frame.
func (s *wsSink) KeepAlive() error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.PingMessage, nil)
}

// close sends a normal closure frame and closes the connection.
func (s *wsSink) close(logger func(msg string, fields ...any)) {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "stream closed")
	if err := s.conn.WriteMessage(websocket.CloseMessage, msg); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		logger("Error writing close message", "error", err)
	}

	if err := s.conn.Close(); err != nil {
		logger("WebSocket close error", "error", err)
	}
}

// HandleWebSocket upgrades the request and streams the named homepage's updates.
func HandleWebSocket(deps *AppDeps, upgrader websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		hp, ok := deps.streamHomepage(username)
		if !ok {
			logx.Info("WebSocket rejected: user not found", "username", username)
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket", "username", username)
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		go readPump(conn, cancel)

		sink := &wsSink{conn: conn}
		defer sink.close(logx.Debug)

		logx.Info("WebSocket stream established", "username", username)

		err = feed.Stream(ctx, hp, sink, feed.StreamOptions{KeepAlive: pingPeriod})
		if err != nil {
			logx.Warn("WebSocket stream ended with write failure", "username", username, "error", err)
		}
	}
}

// readPump consumes client frames until the connection fails, then calls done.
// Pongs extend the read deadline; anything else the client sends is discarded.
func readPump(conn *websocket.Conn, done context.CancelFunc) {
	defer done()

	conn.SetReadLimit(maxMessageSize)

	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logx.Debug("WebSocket read ended", "error", err)
			}
			return
		}
	}
}
