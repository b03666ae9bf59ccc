package bollywood

import "time"

// EventLoop is the contract a supervisor needs from whatever drives it:
// something that can run a callback on its own thread of control (Post) and
// manage timers on that same thread (StartTimer, CancelTimer). Concrete
// adapters live in the loop subpackages; the reference implementation is
// loop/goloop.
type EventLoop interface {
	// Post schedules fn to run on the loop's own goroutine or thread. It
	// must be safe to call from any goroutine.
	Post(fn func())
	// StartTimer arms a one-shot timer identified by id; when it elapses,
	// fire is invoked on the loop's own thread of control. Re-arming an id
	// already in flight cancels the previous timer.
	StartTimer(id uint64, d time.Duration, fire func())
	// CancelTimer disarms a previously started timer. Canceling an id that
	// already fired or was never armed is a no-op.
	CancelTimer(id uint64)
}
