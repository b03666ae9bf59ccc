package bollywood

// childManagerPlugin is installed only on supervisors. It cascades a
// shutdown request to every child on the first SHUTDOWN slot visit and
// blocks completion until the children table has drained. A plain actor
// removes itself via Actor.finishShutdown -> Supervisor.removeChild; a child
// supervisor is removed when its shutdownConfirmation reaches
// onShutdownConfirmation.
type childManagerPlugin struct {
	actor          *Actor
	sup            *Supervisor
	cascadeStarted bool
}

func (p *childManagerPlugin) Identity() string { return "child_manager" }

func (p *childManagerPlugin) Activate(a *Actor) {
	p.actor = a
	a.installPlugin(p, SlotShutdown)
	a.Subscribe(NewHandler(a, p.onShutdownConfirmation))
}

func (p *childManagerPlugin) Deactivate() {}

func (p *childManagerPlugin) onShutdownConfirmation(msg shutdownConfirmation) {
	p.sup.removeChild(msg.Who)
	if len(p.sup.children) == 0 && p.actor.state == StateShuttingDown {
		p.actor.shutdownContinue()
	}
}

func (p *childManagerPlugin) HandleShutdown(msg *Message) PhaseResult {
	if !p.cascadeStarted {
		p.cascadeStarted = true
		p.sup.stopping.Store(true)
		if len(p.sup.children) == 0 {
			return Finished
		}
		for addr := range p.sup.children {
			p.sup.enqueue(NewMessage(addr, shutdownRequestMsg{replyTo: p.sup.Address()}))
		}
		return Pending
	}
	if len(p.sup.children) == 0 {
		return Finished
	}
	return Pending
}
