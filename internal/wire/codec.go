package wire

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/traylinx/bridge-sdk-go/internal/errors"
)

// wireEnvelope is the JSON shape shared by both directions.
type wireEnvelope struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Encode serializes an envelope into one JSON frame.
func Encode(env *Envelope) ([]byte, error) {
	raw := wireEnvelope{
		ID:   env.ID,
		Type: string(env.Type),
	}

	if env.Payload != nil {
		data, err := json.Marshal(env.Payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", env.Type, err)
		}

		raw.Payload = data
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	return data, nil
}

// Decode parses one inbound frame into an Envelope.
//
// It fails with *errors.DecodeError when the frame is not valid JSON, the
// type tag is absent, or a recognized type carries a payload that does not
// match its variant. An unrecognized type is NOT an error: the envelope
// decodes with TypeUnknown and an UnknownPayload so the receive loop can
// log and drop it.
func Decode(data []byte) (*Envelope, error) {
	var raw wireEnvelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &errors.DecodeError{RawData: string(data), Err: err}
	}

	if raw.Type == "" {
		return nil, &errors.DecodeError{RawData: string(data), Err: errors.ErrMissingType}
	}

	env := &Envelope{
		ID:   raw.ID,
		Type: MessageType(raw.Type),
	}

	var err error

	switch env.Type {
	case TypeHTTPRequest:
		env.Payload, err = decodePayload[RequestPayload](raw.Payload)

	case TypeHTTPResponse:
		env.Payload, err = decodePayload[ResponsePayload](raw.Payload)

	case TypeStreamStart:
		env.Payload, err = decodePayload[StreamStartPayload](raw.Payload)

	case TypeStreamChunk:
		env.Payload, err = decodePayload[StreamChunkPayload](raw.Payload)

	case TypeError:
		env.Payload, err = decodePayload[ErrorPayload](raw.Payload)

	case TypeStreamEnd, TypePing, TypePong:
		// No payload variant for these types.

	default:
		env.Type = TypeUnknown
		env.Payload = &UnknownPayload{RawType: raw.Type, Raw: raw.Payload}
	}

	if err != nil {
		return nil, &errors.DecodeError{
			RawData: string(data),
			Err:     fmt.Errorf("%s payload: %w", raw.Type, err),
		}
	}

	return env, nil
}

// decodePayload unmarshals raw payload bytes into the variant for T.
// An absent payload decodes to the variant's zero value.
func decodePayload[T any](raw json.RawMessage) (*T, error) {
	p := new(T)

	if len(raw) == 0 {
		return p, nil
	}

	if err := json.Unmarshal(raw, p); err != nil {
		return nil, err
	}

	return p, nil
}
