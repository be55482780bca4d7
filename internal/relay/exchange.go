package relay

import (
	"fmt"
	"strings"

	sdkerrors "github.com/traylinx/bridge-sdk-go/internal/errors"
	"github.com/traylinx/bridge-sdk-go/internal/wire"
)

// Request describes one HTTP request to relay.
//
// Headers preserve multi-valued entries and the value order within each
// name. Body is carried opaquely; the relay never inspects it.
type Request struct {
	Method  string
	URL     string
	Headers map[string][]string
	Body    string
}

// Response is the terminal result of a successful exchange. For a
// streamed exchange, Body is the concatenation of every fragment in
// arrival order and Status/Headers come from the stream_start message.
type Response struct {
	Status  int
	Headers map[string][]string
	Body    string
}

// exchangeState tracks where one exchange is in its lifecycle.
type exchangeState int

const (
	// stateAwaitingFirst is the initial state: no inbound message yet.
	stateAwaitingFirst exchangeState = iota

	// stateStreaming is entered on stream_start and loops on stream_chunk.
	stateStreaming

	// stateSingleShot is terminal: the first and only inbound message was
	// a direct http_response.
	stateSingleShot

	// stateCompleted is terminal: a streaming lifecycle ended normally.
	stateCompleted

	// stateFailed is terminal: an error message, a protocol violation, a
	// timeout, or connection loss ended the exchange.
	stateFailed
)

func (s exchangeState) String() string {
	switch s {
	case stateAwaitingFirst:
		return "awaiting_first"
	case stateStreaming:
		return "streaming"
	case stateSingleShot:
		return "single_shot"
	case stateCompleted:
		return "completed"
	case stateFailed:
		return "failed"
	default:
		return fmt.Sprintf("exchangeState(%d)", int(s))
	}
}

// outcome is the single terminal result delivered to the waiting caller.
type outcome struct {
	resp *Response
	err  error
}

// Exchange tracks one pending logical request across all inbound messages
// that belong to it.
//
// State transitions run under the Correlator's lock; the Exchange itself
// takes none. The outcome channel is buffered so delivery never blocks
// the receive loop on a slow caller.
type Exchange struct {
	id    string
	state exchangeState

	// Streaming accumulation, in arrival order. The transport delivers
	// frames in order within one connection; nothing is reordered or
	// deduplicated here.
	status  int
	headers map[string][]string
	chunks  []string

	outcome chan outcome
}

func newExchange(id string) *Exchange {
	return &Exchange{
		id:      id,
		outcome: make(chan outcome, 1),
	}
}

// apply advances the state machine with one inbound envelope and reports
// whether the exchange reached a terminal state.
func (e *Exchange) apply(env *wire.Envelope) bool {
	switch env.Type {
	case wire.TypeHTTPResponse:
		if e.state != stateAwaitingFirst {
			return e.violation(env)
		}

		p, ok := env.Payload.(*wire.ResponsePayload)
		if !ok {
			return e.violation(env)
		}

		e.state = stateSingleShot
		e.deliver(&Response{Status: p.Status, Headers: p.Headers, Body: p.Body}, nil)

		return true

	case wire.TypeStreamStart:
		if e.state != stateAwaitingFirst {
			return e.violation(env)
		}

		p, ok := env.Payload.(*wire.StreamStartPayload)
		if !ok {
			return e.violation(env)
		}

		e.state = stateStreaming
		e.status = p.Status
		e.headers = p.Headers

		return false

	case wire.TypeStreamChunk:
		if e.state != stateStreaming {
			return e.violation(env)
		}

		p, ok := env.Payload.(*wire.StreamChunkPayload)
		if !ok {
			return e.violation(env)
		}

		e.chunks = append(e.chunks, p.Data)

		return false

	case wire.TypeStreamEnd:
		if e.state != stateStreaming {
			return e.violation(env)
		}

		e.state = stateCompleted
		e.deliver(&Response{
			Status:  e.status,
			Headers: e.headers,
			Body:    strings.Join(e.chunks, ""),
		}, nil)

		return true

	case wire.TypeError:
		desc := "unknown error"
		if p, ok := env.Payload.(*wire.ErrorPayload); ok && p.Error != "" {
			desc = p.Error
		}

		e.state = stateFailed
		e.deliver(nil, &sdkerrors.RemoteError{ID: e.id, Description: desc})

		return true

	default:
		// Heartbeats and unknown types are filtered before dispatch and
		// never reach the assembler.
		return false
	}
}

// violation fails the exchange on an unexpected type transition.
func (e *Exchange) violation(env *wire.Envelope) bool {
	err := fmt.Errorf("protocol violation: %s message while %s", env.Type, e.state)

	e.state = stateFailed
	e.deliver(nil, err)

	return true
}

// fail transitions the exchange to failed with the given error. Used for
// timeouts, cancellation, and connection loss.
func (e *Exchange) fail(err error) {
	e.state = stateFailed
	e.deliver(nil, err)
}

// deliver hands the terminal outcome to the waiting caller. Each exchange
// delivers exactly once: every terminal transition removes the exchange
// from the pending set under the same lock.
func (e *Exchange) deliver(resp *Response, err error) {
	e.outcome <- outcome{resp: resp, err: err}
}
