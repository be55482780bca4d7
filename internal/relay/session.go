package relay

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	sdkerrors "github.com/traylinx/bridge-sdk-go/internal/errors"
	"github.com/traylinx/bridge-sdk-go/internal/wire"
)

// DefaultCallTimeout bounds a call that does not supply its own deadline.
const DefaultCallTimeout = 30 * time.Second

// Conn is the minimal frame transport a session drives. *websocket.Conn
// satisfies it; tests inject in-memory implementations.
//
// The session is the sole reader (one receive loop per connection) and
// serializes writers, so implementations only need the same concurrency
// guarantees gorilla provides: one concurrent reader, one concurrent
// writer.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Config carries session construction parameters. Construct once and
// treat as immutable; there are no environment reads at call time.
type Config struct {
	// CallTimeout is the per-call deadline applied when a call does not
	// supply one. Zero means DefaultCallTimeout.
	CallTimeout time.Duration

	// HeartbeatInterval enables periodic ping frames when positive.
	HeartbeatInterval time.Duration

	// StreamObserver, when set, receives each stream fragment for a
	// pending exchange as it arrives, before the terminal result. It runs
	// on the receive loop and must not block.
	StreamObserver func(id, data string)
}

// Session owns one relay connection: the socket, the receive loop, and
// the correlator mapping in-flight exchange ids to waiting callers.
//
// Many calls may be outstanding concurrently; they resolve independently
// and in any order relative to each other.
type Session struct {
	log  *slog.Logger
	conn Conn
	corr *Correlator
	cfg  Config

	// writeMu serializes frame writes: one complete frame per request,
	// never interleaved.
	writeMu sync.Mutex

	// Fatal error handling - stores the first error and broadcasts via done.
	errMu    sync.RWMutex
	fatalErr error

	closeOnce sync.Once
	done      chan struct{}

	connOnce sync.Once
	connErr  error

	wg sync.WaitGroup
}

// NewSession wraps an established connection. Call Start before Call.
func NewSession(log *slog.Logger, conn Conn, cfg Config) *Session {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}

	return &Session{
		log:  log.With("component", "session"),
		conn: conn,
		corr: NewCorrelator(log),
		cfg:  cfg,
		done: make(chan struct{}),
	}
}

// Start launches the receive loop and, when configured, the heartbeat
// loop. The loops run until the connection fails or Close is called.
func (s *Session) Start() {
	var g errgroup.Group

	g.Go(s.readLoop)

	if s.cfg.HeartbeatInterval > 0 {
		g.Go(s.heartbeatLoop)
	}

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		if err := g.Wait(); err != nil {
			s.setFatalError(err)
		}

		s.closeDone()
		s.corr.FailAll(s.closedError())
		s.log.Debug("Session loops stopped")
	}()

	s.log.Debug("Session started",
		"call_timeout", s.cfg.CallTimeout,
		"heartbeat_interval", s.cfg.HeartbeatInterval,
	)
}

// closeDone safely closes the done channel exactly once.
func (s *Session) closeDone() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// setFatalError stores the first fatal error.
func (s *Session) setFatalError(err error) {
	s.errMu.Lock()

	if s.fatalErr == nil {
		s.fatalErr = err
	}

	s.errMu.Unlock()
}

// FatalError returns the connection-level error that stopped the session,
// if any.
func (s *Session) FatalError() error {
	s.errMu.RLock()
	defer s.errMu.RUnlock()

	return s.fatalErr
}

// Done returns a channel that is closed when the session stops.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// closedError returns the error to surface to pending and future callers
// once the session is down.
func (s *Session) closedError() error {
	if err := s.FatalError(); err != nil {
		var closed *sdkerrors.ConnectionClosedError
		if stderrors.As(err, &closed) {
			return err
		}

		return &sdkerrors.ConnectionClosedError{Err: err}
	}

	return &sdkerrors.ConnectionClosedError{Err: sdkerrors.ErrSessionClosed}
}

// Call relays one HTTP request over the connection and suspends the
// caller until its exchange reaches a terminal state: resolved with a
// response, rejected by the remote, timed out, or failed with the
// connection.
//
// A zero timeout applies the session default. The context always wins
// over the relay deadline; its error is surfaced as-is so callers can
// tell local cancellation from ErrCallTimeout and from remote failures.
func (s *Session) Call(ctx context.Context, req *Request, timeout time.Duration) (*Response, error) {
	if timeout <= 0 {
		timeout = s.cfg.CallTimeout
	}

	select {
	case <-s.done:
		return nil, sdkerrors.ErrSessionClosed
	default:
	}

	id := ulid.Make().String()
	log := s.log.With("id", id)

	ex, err := s.corr.Register(id)
	if err != nil {
		return nil, err
	}

	env := &wire.Envelope{
		ID:   id,
		Type: wire.TypeHTTPRequest,
		Payload: &wire.RequestPayload{
			Method:  req.Method,
			URL:     req.URL,
			Headers: req.Headers,
			Body:    req.Body,
		},
	}

	if err := s.send(env); err != nil {
		s.corr.Fail(id, err)

		return nil, fmt.Errorf("send request: %w", err)
	}

	log.Debug("Request sent, awaiting terminal message",
		"method", req.Method,
		"url", req.URL,
		"timeout", timeout,
	)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	// Whichever branch fires claims the exchange through the correlator;
	// if a terminal message won the race instead, the real outcome is
	// already buffered and the drain below returns it.
	select {
	case out := <-ex.outcome:
		return out.resp, out.err

	case <-timer.C:
		s.corr.Expire(id)
		out := <-ex.outcome

		return out.resp, out.err

	case <-ctx.Done():
		log.Debug("Call cancelled", "error", ctx.Err())
		s.corr.Fail(id, ctx.Err())
		out := <-ex.outcome

		return out.resp, out.err

	case <-s.done:
		s.corr.Fail(id, s.closedError())
		out := <-ex.outcome

		return out.resp, out.err
	}
}

// send writes one envelope as a single text frame.
func (s *Session) send(env *wire.Envelope) error {
	data, err := wire.Encode(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// readLoop is the only reader of the connection and the only writer into
// the correlator's dispatch path. One malformed or unmatched frame never
// stops it; only a connection-level read error or Close does.
func (s *Session) readLoop() error {
	defer s.log.Debug("Receive loop stopped")

	for {
		_, frame, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
				// Expected read failure after Close.
				return nil
			default:
			}

			s.log.Debug("Transport read failed", "error", err)

			return &sdkerrors.ConnectionClosedError{Err: err}
		}

		s.handleFrame(frame)
	}
}

// handleFrame decodes one inbound frame and routes it.
func (s *Session) handleFrame(frame []byte) {
	env, err := wire.Decode(frame)
	if err != nil {
		s.log.Warn("Dropping undecodable frame", "error", err)

		return
	}

	switch env.Type {
	case wire.TypePong:
		s.log.Debug("Heartbeat pong observed")

		return

	case wire.TypeUnknown:
		payload, _ := env.Payload.(*wire.UnknownPayload)

		rawType := ""
		if payload != nil {
			rawType = payload.RawType
		}

		s.log.Warn("Dropping message with unrecognized type",
			"wire_type", rawType,
			"id", env.ID,
		)

		return
	}

	matched := s.corr.Dispatch(env)

	if matched && env.Type == wire.TypeStreamChunk && s.cfg.StreamObserver != nil {
		if p, ok := env.Payload.(*wire.StreamChunkPayload); ok {
			s.cfg.StreamObserver(env.ID, p.Data)
		}
	}
}

// heartbeatLoop sends a ping frame every interval. The remote answers
// with pong, which the receive loop logs and discards.
func (s *Session) heartbeatLoop() error {
	ticker := time.NewTicker(s.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.send(&wire.Envelope{Type: wire.TypePing}); err != nil {
				select {
				case <-s.done:
					return nil
				default:
				}

				return fmt.Errorf("send heartbeat: %w", err)
			}

			s.log.Debug("Heartbeat ping sent")

		case <-s.done:
			return nil
		}
	}
}

// Close releases the underlying connection and fails all still-pending
// exchanges with a connection-closed error. Safe to call multiple times.
func (s *Session) Close() error {
	s.closeDone()

	s.connOnce.Do(func() {
		s.connErr = s.conn.Close()
	})

	s.wg.Wait()

	return s.connErr
}
