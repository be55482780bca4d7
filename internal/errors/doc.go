// Package errors defines the error taxonomy shared across the SDK.
//
// Typed errors carry structured context (the failing URL, the raw frame,
// the remote-supplied description); sentinel errors cover conditions
// callers check with errors.Is. The root package re-exports everything
// user-facing.
package errors
