// Package relay implements the exchange correlation core of the SDK.
//
// A Session owns one persistent connection and one receive loop. Each
// outbound request registers a pending Exchange keyed by a fresh
// correlation id; every inbound envelope is routed by the Correlator to
// its exchange, whose state machine accumulates stream fragments and
// delivers exactly one terminal outcome to the waiting caller.
//
// Example usage:
//
//	sess := relay.NewSession(log, conn, relay.Config{})
//	sess.Start()
//	defer sess.Close()
//
//	resp, err := sess.Call(ctx, &relay.Request{Method: "GET", URL: "/v1/models"}, 0)
package relay
