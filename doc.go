// Package bridgesdk provides a Go client for the switchAILocal WebSocket
// relay.
//
// The relay carries conventional HTTP request/response semantics over a
// single persistent WebSocket connection. Many logical exchanges can be
// in flight at once; each is identified by an opaque correlation id that
// the relay echoes on every message belonging to that exchange. The SDK
// owns the receive loop, demultiplexes inbound messages, reassembles
// chunked streaming responses, and hands each caller exactly one terminal
// outcome.
//
// # Basic Usage
//
//	ctx := context.Background()
//
//	sess, err := bridgesdk.Open(ctx, "ws://localhost:8081/ws")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close()
//
//	resp, err := sess.Call(ctx, &bridgesdk.Request{
//	    Method: "GET",
//	    URL:    "/v1/models",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Status, resp.Body)
//
// Calls may run concurrently on one session; they resolve independently
// and in any order. A streamed response (stream_start, stream_chunk,
// stream_end) resolves with the fragments concatenated in arrival order;
// use WithStreamObserver to see fragments as they arrive.
//
// # Logging
//
// By default, logging is disabled. Use WithLogger to enable it:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	sess, err := bridgesdk.Open(ctx, url, bridgesdk.WithLogger(logger))
//
// # Error Handling
//
// Each call returns exactly one terminal outcome. Typed errors and
// sentinels distinguish local timeout from remote-reported failure from
// connection loss:
//
//	resp, err := sess.Call(ctx, req)
//	if err != nil {
//	    switch {
//	    case errors.Is(err, bridgesdk.ErrCallTimeout):
//	        // deadline elapsed before a terminal message arrived
//	    default:
//	        var remoteErr *bridgesdk.RemoteError
//	        if errors.As(err, &remoteErr) {
//	            // the relay reported a failure for this exchange
//	        }
//	        var closedErr *bridgesdk.ConnectionClosedError
//	        if errors.As(err, &closedErr) {
//	            // the connection dropped; reopen the session to retry
//	        }
//	    }
//	}
//
// The SDK never retries on its own; retry policy belongs to the caller.
package bridgesdk
