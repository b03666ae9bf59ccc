// Package bollywood is an event-loop-agnostic actor runtime: actors are
// independent units of state and behavior that communicate exclusively by
// asynchronous messages addressed to logical endpoints.
//
// The package owns actor lifecycles (creation, initialization, steady-state
// operation, coordinated shutdown), routes messages between actors hosted on
// the same or different event loops, and coordinates request/response
// exchanges with timeouts. It does not restart failed actors, does not
// persist messages, and does not guarantee delivery across process
// boundaries.
//
// A concrete event loop (see the loop subpackages) drives message
// processing; this package supplies only the EventLoop contract it needs
// from one.
package bollywood
