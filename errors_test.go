package bridgesdk

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestConnectionError_Creation tests ConnectionError creation and formatting.
func TestConnectionError_Creation(t *testing.T) {
	innerErr := fmt.Errorf("connection refused")
	err := &ConnectionError{
		URL: "ws://localhost:8765/ws",
		Err: innerErr,
	}

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to connect to relay")
	require.Contains(t, err.Error(), "ws://localhost:8765/ws")
	require.Contains(t, err.Error(), "connection refused")
	require.ErrorIs(t, err, innerErr)
}

// TestConnectionClosedError_WithAndWithoutCause tests both formatting paths.
func TestConnectionClosedError_WithAndWithoutCause(t *testing.T) {
	bare := &ConnectionClosedError{}
	require.Equal(t, "connection closed", bare.Error())

	innerErr := fmt.Errorf("unexpected EOF")
	wrapped := &ConnectionClosedError{Err: innerErr}
	require.Contains(t, wrapped.Error(), "connection closed")
	require.Contains(t, wrapped.Error(), "unexpected EOF")
	require.ErrorIs(t, wrapped, innerErr)
}

// TestDecodeError_PreservesRawData tests that the failing frame survives.
func TestDecodeError_PreservesRawData(t *testing.T) {
	err := &DecodeError{
		RawData: `{"incomplete": `,
		Err:     fmt.Errorf("unexpected end of JSON input"),
	}

	require.Contains(t, err.Error(), "failed to decode frame")
	require.Contains(t, err.Error(), "unexpected end of JSON input")
	require.Equal(t, `{"incomplete": `, err.RawData)
}

// TestDuplicateIDError_Creation tests DuplicateIDError formatting.
func TestDuplicateIDError_Creation(t *testing.T) {
	err := &DuplicateIDError{ID: "01J8ZK2Q4R"}

	require.Contains(t, err.Error(), "already pending")
	require.Contains(t, err.Error(), "01J8ZK2Q4R")
}

// TestRemoteError_Creation tests RemoteError formatting.
func TestRemoteError_Creation(t *testing.T) {
	err := &RemoteError{ID: "abc", Description: "upstream returned 502"}

	require.Contains(t, err.Error(), "remote error")
	require.Contains(t, err.Error(), "upstream returned 502")
	require.Equal(t, "abc", err.ID)
}

// TestRelayError_Interface tests that all typed errors satisfy RelayError.
func TestRelayError_Interface(t *testing.T) {
	errs := []error{
		&ConnectionError{URL: "ws://x", Err: fmt.Errorf("dial")},
		&ConnectionClosedError{},
		&DecodeError{RawData: "{", Err: fmt.Errorf("json")},
		&DuplicateIDError{ID: "id"},
		&RemoteError{ID: "id", Description: "boom"},
	}

	for _, err := range errs {
		var relayErr RelayError

		require.ErrorAs(t, err, &relayErr, "%T", err)
		require.True(t, relayErr.IsRelayError())
	}
}

// TestSentinelErrors_Distinct tests the sentinels are usable with errors.Is.
func TestSentinelErrors_Distinct(t *testing.T) {
	require.NotNil(t, ErrCallTimeout)
	require.NotNil(t, ErrSessionClosed)
	require.False(t, errors.Is(ErrCallTimeout, ErrSessionClosed))

	wrapped := fmt.Errorf("call to /v1/models: %w", ErrCallTimeout)
	require.ErrorIs(t, wrapped, ErrCallTimeout)
}
