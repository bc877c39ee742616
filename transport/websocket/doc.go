// Package websocket streams search-run replays to browser clients.
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Frames are JSON-encoded Message values. A replay of a run emits one
// "expand" frame per expanded state in trace order, a "path" frame with the
// final path when one was found, and a closing "done" frame with the run
// summary.
//
// Run Integration:
//
// Connections are run-aware. Clients specify the run they want to watch via
// query parameter (?run=ab12cd34) when establishing the connection; frames
// are broadcast only to clients watching the same run.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	go hub.Replay(runID, result, 50*time.Millisecond)
//
// Concurrency:
//
// All shared state is owned by the hub's event loop; Replay and
// BroadcastEvent hand frames to it over a channel, so multiple replays and
// clients can proceed simultaneously.
package websocket
