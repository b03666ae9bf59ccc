package bollywood

import (
	"fmt"
	"reflect"
)

// Handler is a type-erased, polymorphic callable bound to an actor.
// Two handlers are equal iff they wrap the same actor and the same
// method; Hash is a precomputed combination of both, so handlers can be
// used as map keys or de-duplicated in a slice without re-hashing on
// every comparison.
//
// A handler owns a strong reference to its actor: the actor is kept alive
// for as long as any handler referencing it is reachable (e.g. sitting in a
// subscription table).
type Handler interface {
	// Call invokes the handler if msg's payload matches the handler's
	// expected type, and silently ignores it otherwise. Real dispatch
	// routes by type at the subscription table; this check is defensive.
	Call(msg *Message)
	// Type returns the payload type this handler expects.
	Type() reflect.Type
	// Actor returns the actor this handler is bound to.
	Actor() *Actor
	// Equal reports whether other wraps the same (actor, method) pair.
	Equal(other Handler) bool
	// Hash returns the precomputed hash of (actor, method).
	Hash() uint64
}

// typedHandler is the concrete Handler for a single payload type T, bound
// to a method value captured at NewHandler time.
type typedHandler[T any] struct {
	actor    *Actor
	method   func(T)
	typ      reflect.Type
	methodID uintptr
	hash     uint64
}

// NewHandler returns a Handler that invokes method when called with a
// message whose payload is of type T. owner is the actor the handler is
// bound to; owner must outlive the handler.
//
// Equality of two handlers built from the same actor and the same method
// (e.g. two calls to NewHandler(a, a.onPing)) holds because Go method
// values of the same method share one underlying function pointer
// regardless of receiver — only the closure's captured receiver differs —
// so comparing that pointer alongside the actor pointer reproduces
// (actor-identity, method-identity) equality.
func NewHandler[T any](owner *Actor, method func(T)) Handler {
	methodID := reflect.ValueOf(method).Pointer()
	return &typedHandler[T]{
		actor:    owner,
		method:   method,
		typ:      reflect.TypeOf((*T)(nil)).Elem(),
		methodID: methodID,
		hash:     combineHash(actorHash(owner), uint64(methodID)),
	}
}

// Call invokes the handler, recovering a panicking method into a Failure
// message delivered to its own actor rather than letting it unwind through
// the dispatching supervisor's loop and take every other actor on that loop
// down with it.
func (h *typedHandler[T]) Call(msg *Message) {
	payload, ok := msg.Payload.(T)
	if !ok {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			Send(h.actor, h.actor.address, Failure{Err: fmt.Errorf("bollywood: handler panic: %v", r)})
		}
	}()
	h.method(payload)
}

func (h *typedHandler[T]) Type() reflect.Type { return h.typ }
func (h *typedHandler[T]) Actor() *Actor      { return h.actor }
func (h *typedHandler[T]) Hash() uint64       { return h.hash }

func (h *typedHandler[T]) Equal(other Handler) bool {
	o, ok := other.(*typedHandler[T])
	if !ok {
		return false
	}
	return o.actor == h.actor && o.methodID == h.methodID
}

// combineHash mixes two hash inputs with a small FNV-1a-style avalanche.
func combineHash(a, b uint64) uint64 {
	const prime = 1099511628211
	h := uint64(14695981039346656037)
	h = (h ^ a) * prime
	h = (h ^ b) * prime
	return h
}

func actorHash(a *Actor) uint64 {
	return uint64(reflect.ValueOf(a).Pointer())
}
