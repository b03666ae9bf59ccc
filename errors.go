package bollywood

import "errors"

// ErrRequestTimeout is delivered as the response body's error when a
// request's timer fires before any reply arrives.
var ErrRequestTimeout = errors.New("bollywood: request timeout")

// ErrEngineStopping is returned by CreateActor/CreateSupervisor once a
// supervisor's shutdown has begun.
var ErrEngineStopping = errors.New("bollywood: supervisor is shutting down")

// shutdownDeadlineExceeded is fatal: it indicates a plugin never finished
// draining, which leaves undrained references behind. The runtime refuses
// to paper over that with a soft failure.
func shutdownDeadlineExceeded(s *Supervisor) {
	panic("bollywood: shutdown deadline exceeded for supervisor " + s.Address().String())
}
