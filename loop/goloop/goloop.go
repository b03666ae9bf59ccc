// Package goloop is the reference bollywood.EventLoop: one goroutine
// draining a buffered channel of callbacks, with per-id one-shot timers
// re-posted onto that same channel when they fire.
package goloop

import (
	"sync"
	"time"

	"github.com/lguibr/bollywood"
)

// Loop is a minimal, dependency-free EventLoop suitable for tests and small
// programs that don't need to integrate with an existing runtime loop.
type Loop struct {
	tasks chan func()
	done  chan struct{}

	mu     sync.Mutex
	timers map[uint64]*time.Timer
}

// New starts a Loop's goroutine and returns it ready for use.
func New() *Loop {
	l := &Loop{
		tasks:  make(chan func(), 256),
		done:   make(chan struct{}),
		timers: map[uint64]*time.Timer{},
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.done:
			return
		}
	}
}

// Post implements bollywood.EventLoop.
func (l *Loop) Post(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// StartTimer implements bollywood.EventLoop. Firing posts back onto the
// loop's own goroutine rather than calling fire from the timer's goroutine
// directly, so every callback the loop ever runs is serialized the same
// way.
func (l *Loop) StartTimer(id uint64, d time.Duration, fire func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.timers[id]; ok {
		existing.Stop()
	}
	l.timers[id] = time.AfterFunc(d, func() { l.Post(fire) })
}

// CancelTimer implements bollywood.EventLoop.
func (l *Loop) CancelTimer(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.timers[id]; ok {
		existing.Stop()
		delete(l.timers, id)
	}
}

// Close stops the loop's goroutine. Tasks already queued but not yet run
// are discarded.
func (l *Loop) Close() {
	close(l.done)
}

var _ bollywood.EventLoop = (*Loop)(nil)
