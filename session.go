package bridgesdk

import (
	"context"
	"time"

	"github.com/traylinx/bridge-sdk-go/internal/relay"
	"github.com/traylinx/bridge-sdk-go/internal/transport"
)

// DefaultCallTimeout is the per-call deadline applied when neither
// WithCallTimeout nor CallTimeout supplies one.
const DefaultCallTimeout = relay.DefaultCallTimeout

// Session is an open relay connection.
//
// One session owns exactly one receive loop; any number of Calls may be
// outstanding concurrently, distinguished only by correlation id. A
// session is single-use: once closed or failed, open a new one.
type Session struct {
	inner *relay.Session
}

// Open dials the relay endpoint and starts the session's receive loop.
//
// It fails with *ConnectionError when the dial or WebSocket handshake
// fails. The context bounds the dial only; the session itself runs until
// Close is called or the connection is lost.
func Open(ctx context.Context, url string, opts ...Option) (*Session, error) {
	options := applyOptions(opts)

	log := options.logger
	if log == nil {
		log = NopLogger()
	}

	conn := options.conn
	if conn == nil {
		dialed, err := transport.Dial(ctx, log, url, options.handshakeHeader, options.dialTimeout)
		if err != nil {
			return nil, err
		}

		conn = dialed
	}

	inner := relay.NewSession(log, conn, relay.Config{
		CallTimeout:       options.callTimeout,
		HeartbeatInterval: options.heartbeatInterval,
		StreamObserver:    options.streamObserver,
	})
	inner.Start()

	return &Session{inner: inner}, nil
}

// Call relays one HTTP request and suspends the caller until its exchange
// reaches a terminal state, applying the session's default deadline.
//
// Exactly one terminal outcome is returned: the response, or an error
// distinguishing local timeout (ErrCallTimeout), remote-reported failure
// (*RemoteError), connection loss (*ConnectionClosedError), and context
// cancellation (the context's own error).
func (s *Session) Call(ctx context.Context, req *Request) (*Response, error) {
	return s.inner.Call(ctx, req, 0)
}

// CallTimeout is Call with an explicit per-call deadline.
func (s *Session) CallTimeout(ctx context.Context, req *Request, timeout time.Duration) (*Response, error) {
	return s.inner.Call(ctx, req, timeout)
}

// Close releases the underlying connection and fails all still-pending
// calls with *ConnectionClosedError. Safe to call multiple times.
func (s *Session) Close() error {
	return s.inner.Close()
}

// Done returns a channel that is closed when the session stops, whether
// by Close or by connection loss.
func (s *Session) Done() <-chan struct{} {
	return s.inner.Done()
}

// Err returns the connection-level error that stopped the session, or
// nil after a clean Close.
func (s *Session) Err() error {
	return s.inner.FatalError()
}
