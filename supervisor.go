package bollywood

import (
	"log/slog"
	"reflect"
	"sync/atomic"
	"time"
)

// DefaultShutdownTimeout bounds how long a supervisor's shutdown-deadline
// timer (id shutdownTimerID) waits for every plugin slot to drain before
// the process treats it as a fatal, unrecoverable condition.
const DefaultShutdownTimeout = 30 * time.Second

// Supervisor is a special actor: besides everything an ordinary Actor does,
// it owns a subscription table, a set of child actors, and a pending-
// request table. Message delivery and timers are driven by its locality,
// which it may share with sibling supervisors. A Supervisor is itself
// addressable and goes through the same lifecycle state machine as any
// other actor.
type Supervisor struct {
	Actor

	parent   *Supervisor
	locality *locality
	log      *slog.Logger
	metrics  Metrics

	subs     *subscriptionTable
	children map[*Address]*Actor

	started  atomic.Bool
	stopping atomic.Bool

	shutdownTimeout time.Duration

	lastRequestID   uint64
	pendingRequests map[uint64]*pendingRequest
	replyAddrs      map[reflect.Type]*Address
}

// Options configures a new root or child supervisor.
type Options struct {
	// Log, if nil, defaults to slog.Default().
	Log *slog.Logger
	// Metrics, if nil, defaults to NopMetrics.
	Metrics Metrics
	// ShutdownTimeout, if zero, defaults to DefaultShutdownTimeout.
	ShutdownTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Log == nil {
		o.Log = slog.Default()
	}
	if o.Metrics == nil {
		o.Metrics = NopMetrics{}
	}
	if o.ShutdownTimeout == 0 {
		o.ShutdownTimeout = DefaultShutdownTimeout
	}
	return o
}

func newSupervisor(parent *Supervisor, loc *locality, opts Options) *Supervisor {
	opts = opts.withDefaults()
	s := &Supervisor{
		parent:          parent,
		log:             opts.Log,
		metrics:         opts.Metrics,
		children:        map[*Address]*Actor{},
		shutdownTimeout: opts.ShutdownTimeout,
		pendingRequests: map[uint64]*pendingRequest{},
		replyAddrs:      map[reflect.Type]*Address{},
	}
	s.locality = loc
	addr := newAddress(s)
	s.Actor = *newActorBase(addr, s)
	s.Actor.impl = s
	s.subs = newSubscriptionTable(s)
	// The child manager is activated before bootstrap so it comes ahead of
	// the lifetime plugin in the SHUTDOWN slot: children are shut down first,
	// and only then does the lifetime plugin drain this supervisor's own
	// subscriptions (its confirmation handler stays subscribed meanwhile).
	s.activatePlugin(&childManagerPlugin{sup: s})
	s.Actor.bootstrap()
	s.Subscribe(NewHandler(&s.Actor, s.onExternalSubscription))
	s.Subscribe(NewHandler(&s.Actor, s.onExternalUnsubscription))
	if parent == nil {
		// A root supervisor has no parent to enroll it, so it enrolls
		// itself: nothing else would ever send its initRequestMsg.
		s.enqueue(NewMessage(addr, initRequestMsg{}))
	}
	return s
}

// CreateSupervisor builds a child supervisor hosted on its own new
// locality, i.e. driven by its own loop rather than sharing this
// supervisor's. Use CreateLocalSupervisor to share this supervisor's loop
// instead.
func (s *Supervisor) CreateSupervisor(loop EventLoop, opts Options) (*Supervisor, error) {
	if s.stopping.Load() {
		return nil, ErrEngineStopping
	}
	child := newSupervisor(s, newLocality(loop), opts)
	if s.started.Load() {
		child.started.Store(true)
	}
	s.enrollChild(&child.Actor)
	return child, nil
}

// CreateLocalSupervisor builds a child supervisor that shares this
// supervisor's locality: same loop, same message queue, same FIFO ordering
// domain.
func (s *Supervisor) CreateLocalSupervisor(opts Options) (*Supervisor, error) {
	if s.stopping.Load() {
		return nil, ErrEngineStopping
	}
	child := newSupervisor(s, s.locality, opts)
	if s.started.Load() {
		child.started.Store(true)
	}
	s.enrollChild(&child.Actor)
	return child, nil
}

// CreateActor builds a plain (non-supervisor) actor hosted on this
// supervisor. produce is called once, synchronously, with the new actor's
// base already addressed; its return value becomes the actor's Actor.impl
// for the purpose of invoking Initializer/Starter/Shutdowner hooks.
func (s *Supervisor) CreateActor(produce Producer) (*Address, error) {
	if s.stopping.Load() {
		return nil, ErrEngineStopping
	}
	addr := newAddress(s)
	a := newActorBase(addr, s)
	a.impl = produce(a)
	a.bootstrap()
	s.enrollChild(a)
	return addr, nil
}

func (s *Supervisor) enrollChild(a *Actor) {
	s.children[a.address] = a
	s.metrics.ActorsCreated(1)
	s.enqueue(NewMessage(a.address, initRequestMsg{}))
}

func (s *Supervisor) removeChild(addr *Address) {
	delete(s.children, addr)
}

// Start transitions this supervisor, and every already-initialized child,
// into OPERATIONAL, and marks the supervisor so that any child reaching
// INITIALIZED afterward starts automatically too. The actual work happens
// in OnStart, invoked once this supervisor's own startMsg is processed.
func (s *Supervisor) Start() {
	Send(&s.Actor, s.Address(), startMsg{})
}

// OnStart implements Starter for a supervisor's own embedded actor: beyond
// the OPERATIONAL transition initShutdownPlugin already performs, a
// supervisor also cascades Start to every already-initialized child and
// remembers that it has started, so later children auto-start on reaching
// INITIALIZED (see Actor.initContinue).
func (s *Supervisor) OnStart() {
	s.started.Store(true)
	for addr, child := range s.children {
		if child.state == StateInitialized {
			Send(&s.Actor, addr, startMsg{})
		}
	}
}

// Shutdown begins this supervisor's coordinated shutdown: it cascades a
// shutdown request to every child, waits for every child to confirm and for
// every plugin slot (lifetime's outstanding subscriptions, in particular)
// to drain, then reports itself SHUT_DOWN. It is safe to call more than
// once; later calls are no-ops.
func (s *Supervisor) Shutdown() {
	if s.stopping.Swap(true) {
		return
	}
	var replyTo *Address
	if s.parent != nil {
		replyTo = s.parent.Address()
	}
	Send(&s.Actor, s.Address(), shutdownRequestMsg{replyTo: replyTo})
	s.locality.loop.StartTimer(shutdownTimerID, s.shutdownTimeout, func() {
		if s.state != StateShutDown {
			shutdownDeadlineExceeded(s)
		}
	})
}

// enqueue appends msg to this supervisor's locality queue and asks the loop
// to drain it. Safe to call from any goroutine.
func (s *Supervisor) enqueue(msg *Message) {
	loc := s.locality
	loc.mu.Lock()
	loc.queue = append(loc.queue, msg)
	loc.mu.Unlock()
	loc.loop.Post(func() { s.doProcess() })
}

// doProcess drains the locality's queue, delivering each message to its
// destination's owning supervisor. It is reentrancy-safe: a handler invoked
// during a drain that itself triggers doProcess (directly, or indirectly by
// enqueuing and having the loop re-invoke it synchronously) is a no-op,
// because the outer call is still draining the same queue.
func (s *Supervisor) doProcess() {
	loc := s.locality
	if !loc.processing.CompareAndSwap(false, true) {
		return
	}
	defer loc.processing.Store(false)
	for {
		loc.mu.Lock()
		if len(loc.queue) == 0 {
			loc.mu.Unlock()
			return
		}
		msg := loc.queue[0]
		loc.queue = loc.queue[1:]
		loc.mu.Unlock()

		dest := msg.Dest.supervisor
		if dest.locality == loc {
			dest.deliverLocal(msg)
		} else {
			dest.enqueue(msg)
		}
	}
}

// deliverLocal dispatches msg through the subscription table of the
// supervisor that owns its destination address. Every control message
// (init/start/shutdown, handler forwarding, subscription confirmations)
// flows through the same table via the self-subscriptions each actor
// installs at bootstrap, so no special-casing is needed here.
func (s *Supervisor) deliverLocal(msg *Message) {
	s.subs.dispatch(msg)
}

// subscribeActor registers h for addr. If addr belongs to this supervisor,
// the registration happens immediately; otherwise it is forwarded as an
// externalSubscription to addr's owning supervisor. Either way, the
// handler's actor is notified once the point is confirmed, synchronously if
// it shares this supervisor, by message otherwise.
func (s *Supervisor) subscribeActor(addr *Address, h Handler) {
	if addr.supervisor != s {
		s.enqueue(NewMessage(addr.supervisor.Address(), externalSubscription{Point: SubscriptionPoint{Address: addr, Handler: h}}))
		return
	}
	s.subs.subscribe(addr, h)
	point := SubscriptionPoint{Address: addr, Handler: h}
	if h.Actor().supervisor == s {
		h.Actor().notifySubscribed(point)
	} else {
		s.enqueue(NewMessage(h.Actor().Address(), subscriptionConfirmation{Point: point}))
	}
}

// unsubscribeActor removes a previously registered point, following the
// same local/foreign split as subscribeActor.
func (s *Supervisor) unsubscribeActor(addr *Address, h Handler) {
	if addr.supervisor != s {
		s.enqueue(NewMessage(addr.supervisor.Address(), externalUnsubscription{Point: SubscriptionPoint{Address: addr, Handler: h}}))
		return
	}
	s.commitUnsubscription(addr, h)
}

// commitUnsubscription is the authoritative removal: it mutates addr's
// owning supervisor's subscription table directly. It is called both for
// locally-originated unsubscribes and for externalUnsubscription arriving
// from a foreign supervisor.
func (s *Supervisor) commitUnsubscription(addr *Address, h Handler) {
	removed := s.subs.unsubscribe(addr, h)
	if !removed {
		return
	}
	point := SubscriptionPoint{Address: addr, Handler: h}
	if h.Actor().supervisor == s {
		h.Actor().notifyUnsubscribed(point)
	} else {
		s.enqueue(NewMessage(h.Actor().Address(), unsubscriptionConfirmation{Point: point}))
	}
}

func (s *Supervisor) onExternalSubscription(msg externalSubscription) {
	s.subs.subscribe(msg.Point.Address, msg.Point.Handler)
	s.enqueue(NewMessage(msg.Point.Handler.Actor().Address(), subscriptionConfirmation{Point: msg.Point}))
}

func (s *Supervisor) onExternalUnsubscription(msg externalUnsubscription) {
	s.commitUnsubscription(msg.Point.Address, msg.Point.Handler)
}

// StartTimer arms a one-shot timer on this supervisor's loop.
func (s *Supervisor) StartTimer(id uint64, d time.Duration, fire func()) {
	s.locality.loop.StartTimer(id, d, fire)
}

// CancelTimer disarms a timer previously armed with StartTimer.
func (s *Supervisor) CancelTimer(id uint64) {
	s.locality.loop.CancelTimer(id)
}

