package relay

import (
	"log/slog"
	"sync"

	sdkerrors "github.com/traylinx/bridge-sdk-go/internal/errors"
	"github.com/traylinx/bridge-sdk-go/internal/wire"
)

// Correlator owns the set of pending exchanges and routes every inbound
// envelope to the matching exchange by correlation id.
//
// All four mutations of the pending set (Register, Dispatch, Fail,
// FailAll) are atomic per id: whichever operation removes an exchange
// from the set is the one that delivers its terminal outcome.
type Correlator struct {
	log *slog.Logger

	mu      sync.Mutex
	pending map[string]*Exchange
}

// NewCorrelator creates an empty correlator.
func NewCorrelator(log *slog.Logger) *Correlator {
	return &Correlator{
		log:     log.With("component", "correlator"),
		pending: make(map[string]*Exchange, 8),
	}
}

// Register creates a pending exchange for id.
//
// A colliding id is a programmer error generating identifiers; Register
// fails with *DuplicateIDError rather than silently overwriting the live
// exchange.
func (c *Correlator) Register(id string) (*Exchange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.pending[id]; exists {
		return nil, &sdkerrors.DuplicateIDError{ID: id}
	}

	ex := newExchange(id)
	c.pending[id] = ex

	return ex, nil
}

// Dispatch routes one inbound envelope to its exchange's state machine
// and reports whether a pending exchange matched.
//
// An envelope whose id matches nothing, including late arrivals for an
// exchange the local side already abandoned, is logged and dropped.
// Dispatch never panics into the receive loop and never blocks on a slow
// caller: terminal outcomes go through each exchange's buffered channel.
func (c *Correlator) Dispatch(env *wire.Envelope) bool {
	c.mu.Lock()

	ex, ok := c.pending[env.ID]
	if !ok {
		c.mu.Unlock()
		c.log.Warn("No pending exchange for envelope, dropping",
			"id", env.ID,
			"message_type", env.Type,
		)

		return false
	}

	if terminal := ex.apply(env); terminal {
		delete(c.pending, env.ID)
	}

	c.mu.Unlock()

	return true
}

// Fail rejects the exchange for id with err if it is still pending, and
// reports whether it was. A false return means a terminal message already
// claimed the exchange and its real outcome is on the channel.
func (c *Correlator) Fail(id string, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ex, ok := c.pending[id]
	if !ok {
		return false
	}

	delete(c.pending, id)
	ex.fail(err)

	return true
}

// Expire rejects the exchange for id with a timeout error if it is still
// pending. Invoked when a call's deadline elapses; a terminal message
// racing the deadline wins if it claimed the exchange first.
func (c *Correlator) Expire(id string) {
	if c.Fail(id, sdkerrors.ErrCallTimeout) {
		c.log.Warn("Exchange deadline elapsed", "id", id)
	}
}

// FailAll rejects every pending exchange with err. Used when the
// connection is lost or the session closes.
func (c *Correlator) FailAll(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, ex := range c.pending {
		delete(c.pending, id)
		ex.fail(err)
	}
}

// pendingLen reports the number of pending exchanges. Test helper.
func (c *Correlator) pendingLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.pending)
}
