// Package wire implements the relay envelope codec.
//
// Every frame on the connection is one JSON envelope: a correlation id, a
// message type tag, and a type-dependent payload. Decode maps the wire
// type string to a closed set of payload variants and keeps unrecognized
// types non-fatal for forward compatibility.
package wire
