package bollywood

import "reflect"

// Message is an immutable envelope carrying a typed payload to a
// destination address. Once constructed, a Message passes through the
// system by shared reference: it may sit in a queue, in a pending-request
// slot, and be delivered to multiple handlers, so its Payload must never be
// mutated after construction.
type Message struct {
	Dest    *Address
	Payload interface{}
}

// NewMessage constructs a message addressed to dest carrying payload.
func NewMessage(dest *Address, payload interface{}) *Message {
	return &Message{Dest: dest, Payload: payload}
}

// Type returns the process-wide unique type identity of the message's
// payload, used by the subscription table to route by message type.
func (m *Message) Type() reflect.Type {
	return reflect.TypeOf(m.Payload)
}

// Request wraps a request payload with the bookkeeping the supervisor needs
// to correlate its eventual response: a monotonically increasing id, unique
// per issuing supervisor, and the imaginary reply address the response
// should target instead of the real caller.
type Request[T any] struct {
	ID      uint64
	ReplyTo *Address
	Body    T
}

// Response wraps a reply payload (or a delivery error, e.g.
// ErrRequestTimeout) tagged with the id of the request it answers.
type Response[T any] struct {
	ID   uint64
	Body T
	Err  error
}

// responseTypeOf returns the reflect.Type used as the subscription-table key
// for responses of type T, i.e. the type of Response[T].
func responseTypeOf[T any]() reflect.Type {
	return reflect.TypeOf(Response[T]{})
}
