// Package transport establishes the WebSocket connection a relay session
// runs over.
package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	sdkerrors "github.com/traylinx/bridge-sdk-go/internal/errors"
)

// DefaultHandshakeTimeout bounds the WebSocket opening handshake when the
// caller does not configure one.
const DefaultHandshakeTimeout = 10 * time.Second

// Dial connects to the relay endpoint and completes the WebSocket
// handshake. A dial or handshake failure is fatal and surfaced as
// *ConnectionError; the SDK never retries it.
func Dial(
	ctx context.Context,
	log *slog.Logger,
	url string,
	header http.Header,
	handshakeTimeout time.Duration,
) (*websocket.Conn, error) {
	if handshakeTimeout <= 0 {
		handshakeTimeout = DefaultHandshakeTimeout
	}

	log = log.With("component", "transport")
	log.Debug("Dialing relay", "url", url, "handshake_timeout", handshakeTimeout)

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	conn, resp, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}

		log.Error("Relay dial failed", "url", url, "error", err)

		return nil, &sdkerrors.ConnectionError{URL: url, Err: err}
	}

	log.Info("Connected to relay", "url", url)

	return conn, nil
}
