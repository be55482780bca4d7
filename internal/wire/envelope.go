package wire

// MessageType tags an envelope with its role in an exchange.
//
// The enumeration is closed but versionable: decoding maps unrecognized
// wire strings to TypeUnknown instead of failing, so a newer relay can
// introduce types without breaking older clients.
type MessageType string

const (
	// TypeHTTPRequest is the outbound request envelope.
	TypeHTTPRequest MessageType = "http_request"

	// TypeHTTPResponse is the terminal single-shot response.
	TypeHTTPResponse MessageType = "http_response"

	// TypeStreamStart begins a streaming lifecycle and carries the
	// initial status and headers.
	TypeStreamStart MessageType = "stream_start"

	// TypeStreamChunk carries one fragment of streamed body data.
	TypeStreamChunk MessageType = "stream_chunk"

	// TypeStreamEnd terminates a streaming lifecycle.
	TypeStreamEnd MessageType = "stream_end"

	// TypeError is terminal and carries a remote-supplied description.
	TypeError MessageType = "error"

	// TypePing is the outbound heartbeat probe.
	TypePing MessageType = "ping"

	// TypePong is the heartbeat answer. It carries no correlation and is
	// always discarded after being logged.
	TypePong MessageType = "pong"

	// TypeUnknown marks an envelope whose wire type was not recognized.
	TypeUnknown MessageType = "unknown"
)

// Envelope is the unit exchanged in both directions: a correlation id, a
// type tag, and a type-dependent payload.
//
// Wire format:
//
//	{
//	  "id": "01JC...",
//	  "type": "http_request",
//	  "payload": {"method": "GET", "url": "/v1/models", ...}
//	}
type Envelope struct {
	// ID is the opaque correlation identifier. Caller-generated on
	// requests, echoed verbatim by every message of that exchange.
	// Heartbeat envelopes carry no meaningful ID.
	ID string

	// Type identifies the payload variant.
	Type MessageType

	// Payload holds the decoded variant for Type, or nil for types that
	// carry none (stream_end, ping, pong).
	Payload Payload
}

// Payload is the closed set of envelope payload variants. Exactly one
// variant exists per carrying message type; decode selects it from the
// wire type tag.
type Payload interface {
	messageType() MessageType
}

// Compile-time verification that every variant is a Payload.
var (
	_ Payload = (*RequestPayload)(nil)
	_ Payload = (*ResponsePayload)(nil)
	_ Payload = (*StreamStartPayload)(nil)
	_ Payload = (*StreamChunkPayload)(nil)
	_ Payload = (*ErrorPayload)(nil)
	_ Payload = (*UnknownPayload)(nil)
)

// RequestPayload is the http_request payload.
//
// Headers preserve multi-valued entries and the value order within each
// name. Body is opaque to the relay; whatever consumes the resolved
// response interprets it.
type RequestPayload struct {
	Method  string              `json:"method"`
	URL     string              `json:"url"`
	Headers map[string][]string `json:"headers,omitempty"`
	Body    string              `json:"body,omitempty"`
}

func (*RequestPayload) messageType() MessageType { return TypeHTTPRequest }

// ResponsePayload is the http_response payload.
type ResponsePayload struct {
	Status  int                 `json:"status"`
	Headers map[string][]string `json:"headers,omitempty"`
	Body    string              `json:"body,omitempty"`
}

func (*ResponsePayload) messageType() MessageType { return TypeHTTPResponse }

// StreamStartPayload carries the status and headers that precede a
// chunked body.
type StreamStartPayload struct {
	Status  int                 `json:"status"`
	Headers map[string][]string `json:"headers,omitempty"`
}

func (*StreamStartPayload) messageType() MessageType { return TypeStreamStart }

// StreamChunkPayload carries one body fragment.
type StreamChunkPayload struct {
	Data string `json:"data"`
}

func (*StreamChunkPayload) messageType() MessageType { return TypeStreamChunk }

// ErrorPayload carries the human-readable description from an error-type
// message.
type ErrorPayload struct {
	Error string `json:"error"`
}

func (*ErrorPayload) messageType() MessageType { return TypeError }

// UnknownPayload preserves the raw type tag and payload bytes of an
// unrecognized message so callers can log it before dropping it.
type UnknownPayload struct {
	RawType string
	Raw     []byte
}

func (*UnknownPayload) messageType() MessageType { return TypeUnknown }
