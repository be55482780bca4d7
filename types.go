package bridgesdk

import "github.com/traylinx/bridge-sdk-go/internal/relay"

// Request describes one HTTP request to relay.
//
// Headers preserve multi-valued entries and the value order within each
// name. Body is carried opaquely; the relay never inspects it.
type Request = relay.Request

// Response is the terminal result of a successful exchange. For a
// streamed exchange, Body is the concatenation of every fragment in
// arrival order and Status/Headers come from the stream_start message.
type Response = relay.Response

// Conn is the minimal connection interface a session drives. It is
// satisfied by *websocket.Conn and by in-memory test connections.
type Conn = relay.Conn
