package bollywood

// initShutdownPlugin drives the NEW->INITIALIZING and OPERATIONAL-or-
// INITIALIZED->SHUTTING_DOWN transitions. It is installed on every actor.
// Its INIT and SHUTDOWN slot participation is deliberately trivial: the
// real work of each phase belongs to the other plugins installed in the
// same slot (most notably the lifetime plugin and, on a supervisor, the
// child manager); this plugin exists only to turn the two control messages
// into state transitions and to kick the corresponding slot traversal off.
type initShutdownPlugin struct {
	actor *Actor
}

func (p *initShutdownPlugin) Identity() string { return "init_shutdown" }

func (p *initShutdownPlugin) Activate(a *Actor) {
	p.actor = a
	a.installPlugin(p, SlotInit)
	a.installPlugin(p, SlotShutdown)
	a.Subscribe(NewHandler(a, p.onInit))
	a.Subscribe(NewHandler(a, p.onStart))
	a.Subscribe(NewHandler(a, p.onShutdown))
}

func (p *initShutdownPlugin) Deactivate() {}

func (p *initShutdownPlugin) onInit(msg initRequestMsg) {
	if p.actor.state != StateNew {
		panic("bollywood: actor " + p.actor.address.String() + " received init_request outside NEW state")
	}
	p.actor.state = StateInitializing
	p.actor.initReq = &Message{Dest: p.actor.address, Payload: msg}
	withAddress(p.actor.log, p.actor.address).Debug("actor initializing")
	if hook, ok := p.actor.impl.(Initializer); ok {
		hook.OnInitialize()
	}
	p.actor.initContinue()
}

func (p *initShutdownPlugin) onStart(msg startMsg) {
	if p.actor.state != StateInitialized {
		return
	}
	p.actor.state = StateOperational
	withAddress(p.actor.log, p.actor.address).Debug("actor operational")
	if hook, ok := p.actor.impl.(Starter); ok {
		hook.OnStart()
	}
}

func (p *initShutdownPlugin) onShutdown(msg shutdownRequestMsg) {
	if p.actor.state != StateOperational && p.actor.state != StateInitialized && p.actor.state != StateInitializing {
		return
	}
	p.actor.state = StateShuttingDown
	p.actor.shutdownReq = &Message{Dest: p.actor.address, Payload: msg}
	withAddress(p.actor.log, p.actor.address).Debug("actor shutting down")
	p.actor.shutdownContinue()
}

func (p *initShutdownPlugin) HandleInit(msg *Message) PhaseResult {
	req := msg.Payload.(initRequestMsg)
	if req.replyTo != nil {
		Send(p.actor, req.replyTo, initConfirmation{Who: p.actor.address})
	}
	return Finished
}

func (p *initShutdownPlugin) HandleShutdown(msg *Message) PhaseResult {
	return Finished
}
