package errors

import (
	"errors"
	"fmt"
)

// RelayError is the base interface for all SDK errors.
type RelayError interface {
	error
	IsRelayError() bool
}

// Compile-time verification that all error types implement RelayError.
var (
	_ RelayError = (*ConnectionError)(nil)
	_ RelayError = (*ConnectionClosedError)(nil)
	_ RelayError = (*DecodeError)(nil)
	_ RelayError = (*DuplicateIDError)(nil)
	_ RelayError = (*RemoteError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrCallTimeout indicates an exchange's deadline elapsed before a
	// terminal message arrived. Only the timed-out call observes it.
	ErrCallTimeout = errors.New("call timeout")

	// ErrSessionClosed indicates the session has been closed and cannot be
	// reused. Open a new session to continue.
	ErrSessionClosed = errors.New("session closed")

	// ErrMissingType indicates an inbound envelope carried no type tag.
	ErrMissingType = errors.New("envelope missing 'type' field")
)

// ConnectionError indicates the WebSocket dial or handshake failed.
// It is fatal to Open and is never retried by the SDK.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to relay at %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsRelayError implements RelayError.
func (e *ConnectionError) IsRelayError() bool { return true }

// ConnectionClosedError indicates the connection dropped while exchanges
// were still pending. Every pending call on the session receives it.
type ConnectionClosedError struct {
	Err error
}

func (e *ConnectionClosedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("connection closed: %v", e.Err)
	}

	return "connection closed"
}

func (e *ConnectionClosedError) Unwrap() error {
	return e.Err
}

// IsRelayError implements RelayError.
func (e *ConnectionClosedError) IsRelayError() bool { return true }

// DecodeError indicates an inbound frame could not be decoded.
// This error preserves the original raw frame that failed to parse.
// A single undecodable frame is dropped; the receive loop continues.
type DecodeError struct {
	RawData string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode frame: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsRelayError implements RelayError.
func (e *DecodeError) IsRelayError() bool { return true }

// DuplicateIDError indicates an exchange was registered with an identifier
// that is already pending. Registration fails fast rather than silently
// overwriting the live exchange.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("exchange id already pending: %s", e.ID)
}

// IsRelayError implements RelayError.
func (e *DuplicateIDError) IsRelayError() bool { return true }

// RemoteError carries the description from an explicit error-type message
// sent by the remote side for one exchange.
type RemoteError struct {
	ID          string
	Description string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error: %s", e.Description)
}

// IsRelayError implements RelayError.
func (e *RemoteError) IsRelayError() bool { return true }
