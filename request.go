package bollywood

import (
	"reflect"
	"time"
)

// pendingRequest is the bookkeeping kept for one in-flight request: enough
// to cancel its timer and to resolve its caller-supplied continuation
// exactly once, whichever of {response, timeout} arrives first.
type pendingRequest struct {
	timerID uint64
	resolve func(payload any, err error)
}

// RequestBuilder assembles a request/response exchange targeting dest.
// Build it with NewRequest, optionally narrow the timeout with Timeout, and
// finish with Then to send it and register the continuation.
type RequestBuilder[Req any, Resp any] struct {
	from    *Actor
	dest    *Address
	body    Req
	timeout time.Duration
}

// NewRequest starts building a request from actor from to dest carrying
// body. The default timeout is zero, meaning no timeout timer is armed and
// the request waits indefinitely for a response; supervisor shutdown does
// not resolve it.
func NewRequest[Req any, Resp any](from *Actor, dest *Address, body Req) *RequestBuilder[Req, Resp] {
	return &RequestBuilder[Req, Resp]{from: from, dest: dest, body: body}
}

// Timeout bounds how long the request waits for a response before its
// continuation is invoked with ErrRequestTimeout.
func (b *RequestBuilder[Req, Resp]) Timeout(d time.Duration) *RequestBuilder[Req, Resp] {
	b.timeout = d
	return b
}

// Then sends the request and arranges for onDone to be called at most once
// (exactly once when a timeout is set): either with the response body and a
// nil error, or with the zero value of Resp and ErrRequestTimeout.
func (b *RequestBuilder[Req, Resp]) Then(onDone func(Resp, error)) {
	sup := b.from.supervisor
	respType := responseTypeOf[Resp]()
	replyAddr := sup.replyAddressFor(respType, func() Handler {
		return NewHandler(&sup.Actor, func(msg Response[Resp]) {
			sup.resolveRequest(msg.ID, msg.Body, msg.Err)
		})
	})

	id := sup.nextRequestID()

	var timerID uint64
	if b.timeout > 0 {
		timerID = id
		sup.StartTimer(timerID, b.timeout, func() {
			var zero Resp
			sup.resolveRequest(id, zero, ErrRequestTimeout)
		})
	}

	sup.pendingRequests[id] = &pendingRequest{
		timerID: timerID,
		resolve: func(payload any, err error) {
			sup.metrics.RequestsInFlight(-1)
			if err != nil {
				if err == ErrRequestTimeout {
					sup.metrics.RequestTimeouts(1)
				}
				var zero Resp
				onDone(zero, err)
				return
			}
			onDone(payload.(Resp), nil)
		},
	}
	sup.metrics.RequestsInFlight(1)

	Send(b.from, b.dest, Request[Req]{ID: id, ReplyTo: replyAddr, Body: b.body})
}

// nextRequestID hands out a monotonically increasing id local to this
// supervisor, used to correlate a response with its pending request.
func (s *Supervisor) nextRequestID() uint64 {
	s.lastRequestID++
	return s.lastRequestID
}

// replyAddressFor returns the cached imaginary reply address for a response
// type, creating it and subscribing the supervisor to it on first use. At
// most one such address exists per (supervisor, response type) pair, shared
// by every outstanding request of that response type.
func (s *Supervisor) replyAddressFor(respType reflect.Type, makeHandler func() Handler) *Address {
	if addr, ok := s.replyAddrs[respType]; ok {
		return addr
	}
	addr := newAddress(s)
	s.subs.subscribe(addr, makeHandler())
	s.replyAddrs[respType] = addr
	return addr
}

// resolveRequest delivers the outcome of request id at most once: whichever
// of a late response or an already-fired timeout arrives second finds the
// entry gone and does nothing.
func (s *Supervisor) resolveRequest(id uint64, payload any, err error) {
	pending, ok := s.pendingRequests[id]
	if !ok {
		return
	}
	delete(s.pendingRequests, id)
	if pending.timerID != 0 {
		s.CancelTimer(pending.timerID)
	}
	pending.resolve(payload, err)
}
