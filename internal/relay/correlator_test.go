package relay

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	sdkerrors "github.com/traylinx/bridge-sdk-go/internal/errors"
)

func TestCorrelator_RegisterDuplicateID(t *testing.T) {
	corr := NewCorrelator(slog.Default())

	_, err := corr.Register("dup")
	require.NoError(t, err)

	_, err = corr.Register("dup")
	require.Error(t, err)

	var dupErr *sdkerrors.DuplicateIDError
	require.ErrorAs(t, err, &dupErr)
	require.Equal(t, "dup", dupErr.ID)

	// The original exchange survives the failed registration.
	require.Equal(t, 1, corr.pendingLen())
}

func TestCorrelator_DispatchUnmatchedID(t *testing.T) {
	corr := NewCorrelator(slog.Default())

	exA, err := corr.Register("a")
	require.NoError(t, err)
	exB, err := corr.Register("b")
	require.NoError(t, err)

	// An unmatched envelope is dropped without touching a or b.
	require.False(t, corr.Dispatch(responseEnv("ghost", 200, "stale")))
	require.Equal(t, 2, corr.pendingLen())

	require.True(t, corr.Dispatch(responseEnv("a", 200, "for a")))
	require.True(t, corr.Dispatch(responseEnv("b", 201, "for b")))

	outA := drain(t, exA)
	require.NoError(t, outA.err)
	require.Equal(t, "for a", outA.resp.Body)

	outB := drain(t, exB)
	require.NoError(t, outB.err)
	require.Equal(t, 201, outB.resp.Status)

	require.Equal(t, 0, corr.pendingLen())
}

func TestCorrelator_TerminalDispatchRemovesExchange(t *testing.T) {
	corr := NewCorrelator(slog.Default())

	_, err := corr.Register("a")
	require.NoError(t, err)

	require.True(t, corr.Dispatch(responseEnv("a", 200, "done")))
	require.Equal(t, 0, corr.pendingLen())

	// A late duplicate for the resolved id is now unmatched and dropped.
	require.False(t, corr.Dispatch(responseEnv("a", 200, "again")))
}

func TestCorrelator_ExpirePendingExchange(t *testing.T) {
	corr := NewCorrelator(slog.Default())

	ex, err := corr.Register("a")
	require.NoError(t, err)

	corr.Expire("a")

	out := drain(t, ex)
	require.ErrorIs(t, out.err, sdkerrors.ErrCallTimeout)
	require.Equal(t, 0, corr.pendingLen())

	// Expiring again is a no-op.
	corr.Expire("a")
}

func TestCorrelator_ExpireLosesToTerminalMessage(t *testing.T) {
	corr := NewCorrelator(slog.Default())

	ex, err := corr.Register("a")
	require.NoError(t, err)

	require.True(t, corr.Dispatch(responseEnv("a", 200, "won")))

	// The deadline fired after resolution: Expire finds nothing and the
	// real outcome is the one delivered.
	corr.Expire("a")

	out := drain(t, ex)
	require.NoError(t, out.err)
	require.Equal(t, "won", out.resp.Body)
}

func TestCorrelator_FailAll(t *testing.T) {
	corr := NewCorrelator(slog.Default())

	exA, err := corr.Register("a")
	require.NoError(t, err)
	exB, err := corr.Register("b")
	require.NoError(t, err)

	cause := &sdkerrors.ConnectionClosedError{}
	corr.FailAll(cause)

	require.Equal(t, 0, corr.pendingLen())

	for _, ex := range []*Exchange{exA, exB} {
		out := drain(t, ex)

		var closedErr *sdkerrors.ConnectionClosedError
		require.ErrorAs(t, out.err, &closedErr)
	}
}

func TestCorrelator_MidStreamStateSurvivesDispatch(t *testing.T) {
	corr := NewCorrelator(slog.Default())

	ex, err := corr.Register("a")
	require.NoError(t, err)

	require.True(t, corr.Dispatch(streamStartEnv("a", 200)))
	require.True(t, corr.Dispatch(chunkEnv("a", "one ")))
	require.True(t, corr.Dispatch(chunkEnv("a", "two")))

	// Non-terminal messages keep the exchange pending.
	require.Equal(t, 1, corr.pendingLen())

	require.True(t, corr.Dispatch(streamEndEnv("a")))

	out := drain(t, ex)
	require.NoError(t, out.err)
	require.Equal(t, "one two", out.resp.Body)
}
