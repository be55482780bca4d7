package bridgesdk

import "github.com/traylinx/bridge-sdk-go/internal/errors"

// Re-export error types from internal package

// ConnectionError indicates the WebSocket dial or handshake failed.
type ConnectionError = errors.ConnectionError

// ConnectionClosedError indicates the connection dropped while exchanges
// were still pending.
type ConnectionClosedError = errors.ConnectionClosedError

// DecodeError indicates an inbound frame could not be decoded.
type DecodeError = errors.DecodeError

// DuplicateIDError indicates an exchange id collided with a live one.
type DuplicateIDError = errors.DuplicateIDError

// RemoteError carries the description from an explicit error message
// sent by the relay for one exchange.
type RemoteError = errors.RemoteError

// RelayError is the base interface for all SDK errors.
type RelayError = errors.RelayError

// Re-export sentinel errors from internal package.
var (
	// ErrCallTimeout indicates an exchange's deadline elapsed before a
	// terminal message arrived.
	ErrCallTimeout = errors.ErrCallTimeout

	// ErrSessionClosed indicates the session has been closed and cannot
	// be reused.
	ErrSessionClosed = errors.ErrSessionClosed
)
