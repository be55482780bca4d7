package bridgesdk

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/traylinx/bridge-sdk-go/internal/relay"
)

// Option configures a session using the functional options pattern.
// Options are applied once at Open; a session's configuration is
// immutable afterwards.
type Option func(*sessionOptions)

// sessionOptions collects everything Open needs. Nothing is read from
// the environment at call time.
type sessionOptions struct {
	logger            *slog.Logger
	callTimeout       time.Duration
	dialTimeout       time.Duration
	handshakeHeader   http.Header
	heartbeatInterval time.Duration
	streamObserver    func(id, data string)
	conn              relay.Conn
}

func applyOptions(opts []Option) *sessionOptions {
	options := &sessionOptions{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *sessionOptions) {
		o.logger = logger
	}
}

// WithCallTimeout sets the default per-call deadline. Calls that do not
// receive a terminal message within it fail with ErrCallTimeout.
// Defaults to 30 seconds.
func WithCallTimeout(timeout time.Duration) Option {
	return func(o *sessionOptions) {
		o.callTimeout = timeout
	}
}

// WithDialTimeout bounds the WebSocket opening handshake.
func WithDialTimeout(timeout time.Duration) Option {
	return func(o *sessionOptions) {
		o.dialTimeout = timeout
	}
}

// WithHandshakeHeader adds HTTP headers to the WebSocket upgrade request.
func WithHandshakeHeader(header http.Header) Option {
	return func(o *sessionOptions) {
		o.handshakeHeader = header
	}
}

// WithHeartbeatInterval enables periodic ping frames on the connection.
// The relay answers with pong, which the SDK logs and discards. Disabled
// when zero.
func WithHeartbeatInterval(interval time.Duration) Option {
	return func(o *sessionOptions) {
		o.heartbeatInterval = interval
	}
}

// WithStreamObserver registers a callback that receives each stream
// fragment for a pending exchange as it arrives, before the call
// resolves with the concatenated body. The callback runs on the receive
// loop and must not block.
func WithStreamObserver(observer func(exchangeID, data string)) Option {
	return func(o *sessionOptions) {
		o.streamObserver = observer
	}
}

// WithConn injects an established connection, bypassing the dial.
// Intended for testing with in-memory or pre-dialed connections.
func WithConn(conn Conn) Option {
	return func(o *sessionOptions) {
		o.conn = conn
	}
}
