package bollywood

// Slot is a lifecycle phase that runs its installed plugins in insertion
// order. INIT and SHUTDOWN drive the actor state machine; SUBSCRIPTION and
// UNSUBSCRIPTION notify plugins as subscription points come and go.
type Slot int

const (
	SlotInit Slot = iota
	SlotShutdown
	SlotSubscription
	SlotUnsubscription
)

func (s Slot) String() string {
	switch s {
	case SlotInit:
		return "INIT"
	case SlotShutdown:
		return "SHUTDOWN"
	case SlotSubscription:
		return "SUBSCRIPTION"
	case SlotUnsubscription:
		return "UNSUBSCRIPTION"
	default:
		return "UNKNOWN"
	}
}

// PhaseResult is what a plugin reports after being asked to handle a slot's
// event. Consumed means proceed to the next plugin. Finished means this
// plugin is done and should be removed from the slot before proceeding.
// Pending means the plugin isn't done yet and the phase halts until an
// external event (subscription confirmed, resource released) resumes it by
// re-invoking initContinue/shutdownContinue.
type PhaseResult int

const (
	Consumed PhaseResult = iota
	Finished
	Pending
)

// Plugin is a modular participant in an actor's lifecycle. A plugin
// installs itself into zero or more slots during Activate; the actor runs
// each slot's installed plugins, in insertion order, during the
// corresponding phase.
type Plugin interface {
	// Identity names the plugin for diagnostics and duplicate-install
	// checks.
	Identity() string
	// Activate is called once, when the plugin is added to an actor. It
	// should call actor.installPlugin for each slot it participates in.
	Activate(a *Actor)
	// Deactivate is called each time the plugin reports Finished and is
	// removed from a slot; a plugin installed in several slots may see it
	// more than once.
	Deactivate()
}

// InitPlugin participates in the INIT slot.
type InitPlugin interface {
	Plugin
	HandleInit(msg *Message) PhaseResult
}

// ShutdownPlugin participates in the SHUTDOWN slot.
type ShutdownPlugin interface {
	Plugin
	HandleShutdown(msg *Message) PhaseResult
}

// SubscriptionPlugin participates in the SUBSCRIPTION slot.
type SubscriptionPlugin interface {
	Plugin
	HandleSubscription(point SubscriptionPoint) PhaseResult
}

// UnsubscriptionPlugin participates in the UNSUBSCRIPTION slot.
type UnsubscriptionPlugin interface {
	Plugin
	HandleUnsubscription(point SubscriptionPoint) PhaseResult
}
