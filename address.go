package bollywood

import (
	"sync"
	"sync/atomic"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// locality is the shared home loop of one or more supervisors: the single
// EventLoop that drives them, the single message queue that feeds it, and a
// reentrancy guard so a message handled while draining the queue can't
// recursively start a second drain on the same goroutine. Supervisors
// sharing a locality forward through this queue to preserve FIFO ordering
// across siblings on that loop.
type locality struct {
	id   uint64
	loop EventLoop

	mu         sync.Mutex
	queue      []*Message
	processing atomic.Bool
}

var localityCounter uint64

func newLocality(loop EventLoop) *locality {
	return &locality{id: atomic.AddUint64(&localityCounter, 1), loop: loop}
}

// Address is an opaque routing identity owned by exactly one supervisor
// (its "home loop"). Two addresses are equal iff they are the same
// identity — since every Address is handed out as a pointer, plain pointer
// comparison is address identity.
//
// Go's garbage collector retires an Address once nothing (no actor, no
// handler, no in-flight message) references it any longer; no explicit
// reference counting is needed.
type Address struct {
	debugID    string
	supervisor *Supervisor
	locality   *locality
}

func newAddress(sup *Supervisor) *Address {
	suffix, err := gonanoid.Generate("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", 7)
	if err != nil {
		// Generate only fails on a bad alphabet/length, both constants here;
		// this branch is unreachable in practice.
		suffix = "unknown"
	}
	return &Address{
		debugID:    "addr-" + suffix,
		supervisor: sup,
		locality:   sup.locality,
	}
}

// Supervisor returns the supervisor that owns this address.
func (a *Address) Supervisor() *Supervisor { return a.supervisor }

// Equal reports whether two addresses are the same identity.
func (a *Address) Equal(other *Address) bool { return a == other }

// String returns a debug-only label; it plays no role in routing.
func (a *Address) String() string {
	if a == nil {
		return "addr-nil"
	}
	return a.debugID
}

// Deliver enqueues payload for dest, exactly as Send would from an actor
// that owned dest's supervisor. It exists for adapters that inject messages
// from outside any actor's own goroutine, such as an inbound network read
// loop, and have no *Actor of their own to send from.
func Deliver(dest *Address, payload any) {
	dest.supervisor.enqueue(NewMessage(dest, payload))
}
