package bollywood

import "log/slog"

// State is a position in the actor lifecycle state machine: NEW ->
// INITIALIZING -> INITIALIZED -> OPERATIONAL -> SHUTTING_DOWN -> SHUT_DOWN.
type State int

const (
	StateNew State = iota
	StateInitializing
	StateInitialized
	StateOperational
	StateShuttingDown
	StateShutDown
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateInitializing:
		return "INITIALIZING"
	case StateInitialized:
		return "INITIALIZED"
	case StateOperational:
		return "OPERATIONAL"
	case StateShuttingDown:
		return "SHUTTING_DOWN"
	case StateShutDown:
		return "SHUT_DOWN"
	default:
		return "UNKNOWN"
	}
}

// Producer builds the concrete implementation for a newly-addressed actor.
// base is fully wired (address and owning supervisor set) before Producer
// runs, so the implementation can embed it and use it immediately from
// lifecycle hooks.
type Producer func(base *Actor) any

// Initializer, Starter and Shutdowner are the optional lifecycle hooks an
// actor implementation may satisfy; the base only calls the ones present.
type Initializer interface{ OnInitialize() }
type Starter interface{ OnStart() }
type Shutdowner interface{ OnShutdown() }

// control messages, always sent to an actor's own address and intercepted
// by the standard plugins rather than by user subscriptions.
type initRequestMsg struct{ replyTo *Address }
type startMsg struct{}
type shutdownRequestMsg struct{ replyTo *Address }

// shutdownConfirmation is both the reply to a shutdownRequestMsg and, when
// its target is a parent supervisor's childManagerPlugin, the signal that
// removes the sender from the parent's children table.
type shutdownConfirmation struct{ Who *Address }

// initConfirmation is the reply to an initRequestMsg that named a replyTo.
type initConfirmation struct {
	Who *Address
	Err error
}

// Failure is delivered to an actor's own address when one of its handlers
// panics. The base reacts by cascading a shutdown request to itself, the
// same path a supervisor uses to tear down a child, rather than letting the
// panic escape into the shared locality loop.
type Failure struct{ Err error }

type subscriptionConfirmation struct{ Point SubscriptionPoint }
type unsubscriptionConfirmation struct{ Point SubscriptionPoint }
type externalSubscription struct{ Point SubscriptionPoint }
type externalUnsubscription struct{ Point SubscriptionPoint }

// Actor holds the lifecycle state, plugin chain and pending control
// requests shared by every actor, including supervisors (a Supervisor
// embeds Actor). User actor types embed *Actor to gain Subscribe,
// SubscribeAt and Unsubscribe, and pass it as the sender to the package
// functions Send, ReplyTo and NewRequest.
type Actor struct {
	address    *Address
	supervisor *Supervisor
	impl       any

	state   State
	plugins []Plugin
	slots   map[Slot][]Plugin

	initReq     *Message
	shutdownReq *Message
	lifetime    *lifetimePlugin
	resources   *resourcesPlugin

	log *slog.Logger
}

// Address returns the actor's own routing identity.
func (a *Actor) Address() *Address { return a.address }

// Supervisor returns the actor's owning supervisor.
func (a *Actor) Supervisor() *Supervisor { return a.supervisor }

// State returns the actor's current lifecycle state.
func (a *Actor) State() State { return a.state }

func newActorBase(addr *Address, sup *Supervisor) *Actor {
	return &Actor{
		address:    addr,
		supervisor: sup,
		state:      StateNew,
		slots:      map[Slot][]Plugin{},
		log:        sup.log,
	}
}

// bootstrap installs the plugins every actor carries regardless of what the
// user's Producer builds: a handler for cross-supervisor handler calls, the
// lifetime tracker, and the init/shutdown control-message plugin.
func (a *Actor) bootstrap() {
	a.Subscribe(NewHandler(a, a.onHandlerCall))
	a.Subscribe(NewHandler(a, a.onSubscriptionConfirmation))
	a.Subscribe(NewHandler(a, a.onUnsubscriptionConfirmation))
	a.Subscribe(NewHandler(a, a.onFailure))
	lt := &lifetimePlugin{}
	a.activatePlugin(lt)
	a.lifetime = lt
	a.activatePlugin(&initShutdownPlugin{})
}

func (a *Actor) onHandlerCall(hc handlerCall) {
	hc.Handler.Call(hc.Orig)
}

// onSubscriptionConfirmation and onUnsubscriptionConfirmation arrive only
// over the wire from a foreign supervisor (see subscribeActor/
// unsubscribeActor); the local case calls notifySubscribed/
// notifyUnsubscribed directly instead of routing through a message.
func (a *Actor) onSubscriptionConfirmation(msg subscriptionConfirmation) {
	a.notifySubscribed(msg.Point)
}

func (a *Actor) onUnsubscriptionConfirmation(msg unsubscriptionConfirmation) {
	a.notifyUnsubscribed(msg.Point)
}

// onFailure reacts to a panicking handler by shutting the actor down
// through the same path its owning supervisor would use for a deliberate
// cascade, so the rest of the tree observes one fewer child rather than a
// crashed loop.
func (a *Actor) onFailure(f Failure) {
	if a.state != StateOperational && a.state != StateInitialized && a.state != StateInitializing {
		return
	}
	withAddress(a.log, a.address).Error("actor handler panicked", "error", f.Err)
	a.supervisor.enqueue(NewMessage(a.address, shutdownRequestMsg{replyTo: a.supervisor.Address()}))
}

// installPlugin appends p to the slot's plugin list, in call order.
func (a *Actor) installPlugin(p Plugin, slot Slot) {
	a.slots[slot] = append(a.slots[slot], p)
}

// activatePlugin adds p to the actor's plugin set and calls Activate,
// unless a plugin with the same identity is already present.
func (a *Actor) activatePlugin(p Plugin) {
	for _, existing := range a.plugins {
		if existing.Identity() == p.Identity() {
			return
		}
	}
	a.plugins = append(a.plugins, p)
	p.Activate(a)
}

// runSlot drives every plugin installed in slot, in order, until either the
// list drains completely (returns true, the phase is complete) or a plugin
// reports Pending (returns false; the phase resumes later from index 0 when
// initContinue/shutdownContinue is invoked again by an external event).
func (a *Actor) runSlot(slot Slot, msg *Message) bool {
	i := 0
	for i < len(a.slots[slot]) {
		p := a.slots[slot][i]
		var result PhaseResult
		switch slot {
		case SlotInit:
			result = p.(InitPlugin).HandleInit(msg)
		case SlotShutdown:
			result = p.(ShutdownPlugin).HandleShutdown(msg)
		default:
			return true
		}
		switch result {
		case Pending:
			return false
		case Finished:
			list := a.slots[slot]
			a.slots[slot] = append(list[:i], list[i+1:]...)
			p.Deactivate()
		case Consumed:
			i++
		}
	}
	return true
}

// notifySubscribed runs the SUBSCRIPTION slot for a newly confirmed point.
func (a *Actor) notifySubscribed(point SubscriptionPoint) {
	for _, p := range a.slots[SlotSubscription] {
		p.(SubscriptionPlugin).HandleSubscription(point)
	}
}

// notifyUnsubscribed runs the UNSUBSCRIPTION slot for a confirmed removal.
func (a *Actor) notifyUnsubscribed(point SubscriptionPoint) {
	for _, p := range a.slots[SlotUnsubscription] {
		p.(UnsubscriptionPlugin).HandleUnsubscription(point)
	}
}

// initContinue resumes INIT slot traversal; called on receipt of
// initRequestMsg and again whenever a pending plugin's blocking condition
// clears.
func (a *Actor) initContinue() {
	if a.runSlot(SlotInit, a.initReq) {
		a.state = StateInitialized
		if a.supervisor.started.Load() {
			Send(a, a.address, startMsg{})
		}
	}
}

// shutdownContinue resumes SHUTDOWN slot traversal; see initContinue.
func (a *Actor) shutdownContinue() {
	if a.state != StateShuttingDown {
		return
	}
	if a.runSlot(SlotShutdown, a.shutdownReq) {
		a.state = StateShutDown
		a.finishShutdown()
	}
}

// finishShutdown runs the user's OnShutdown hook, replies to the stored
// shutdown request (which doubles as the parent's shutdown confirmation
// when replyTo is the parent's address), and removes the actor from its
// supervisor's bookkeeping.
func (a *Actor) finishShutdown() {
	if hook, ok := a.impl.(Shutdowner); ok {
		hook.OnShutdown()
	}
	if a.shutdownReq != nil {
		req := a.shutdownReq.Payload.(shutdownRequestMsg)
		if req.replyTo != nil {
			a.supervisor.enqueue(NewMessage(req.replyTo, shutdownConfirmation{Who: a.address}))
		}
	}
	a.supervisor.removeChild(a.address)
	a.supervisor.metrics.ActorsShutDown(1)
	withAddress(a.log, a.address).Debug("actor shut down")
}

// UseResource increments the actor's external-resource counter, lazily
// installing the resources plugin on first use. Shutdown cannot complete
// while the counter is above zero.
func (a *Actor) UseResource() {
	if a.resources == nil {
		a.resources = &resourcesPlugin{}
		a.activatePlugin(a.resources)
	}
	a.resources.acquire()
}

// ReleaseResource decrements the counter installed by UseResource.
func (a *Actor) ReleaseResource() {
	if a.resources == nil {
		return
	}
	a.resources.release()
}

// ShutdownSupervisor is convenience sugar for an actor that wants to tear
// down its whole supervisor once its own work is done, mirroring the
// ping-pong example's autoshutdown behavior in the original rotor sources.
func (a *Actor) ShutdownSupervisor() {
	a.supervisor.Shutdown()
}

// Subscribe registers h for messages sent to this actor's own address.
func (a *Actor) Subscribe(h Handler) {
	a.supervisor.subscribeActor(a.address, h)
}

// SubscribeAt registers h for messages sent to addr, which may belong to a
// different actor, supervisor or locality.
func (a *Actor) SubscribeAt(addr *Address, h Handler) {
	a.supervisor.subscribeActor(addr, h)
}

// Unsubscribe removes a previously registered (addr, h) subscription point.
func (a *Actor) Unsubscribe(addr *Address, h Handler) {
	a.supervisor.unsubscribeActor(addr, h)
}

// Send delivers payload to dest asynchronously. It is safe to call from any
// goroutine.
func Send[T any](from *Actor, dest *Address, payload T) {
	from.supervisor.enqueue(NewMessage(dest, payload))
}

// ReplyTo answers a Request[Req] previously received by from, delivering
// body to the request's imaginary reply address tagged with its id.
func ReplyTo[Req any, Resp any](from *Actor, req Request[Req], body Resp) {
	Send(from, req.ReplyTo, Response[Resp]{ID: req.ID, Body: body})
}
