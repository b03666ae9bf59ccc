package bollywood

// resourcesPlugin is a generic counter of external resources (a dialed
// connection, a spawned goroutine, a leased file handle) that an actor
// wants shutdown to wait for. It is installed lazily by Actor.UseResource
// on first use, not by bootstrap, since most actors never need it.
type resourcesPlugin struct {
	actor   *Actor
	counter int
}

func (p *resourcesPlugin) Identity() string { return "resources" }

func (p *resourcesPlugin) Activate(a *Actor) {
	p.actor = a
	a.installPlugin(p, SlotShutdown)
}

func (p *resourcesPlugin) Deactivate() {}

func (p *resourcesPlugin) acquire() { p.counter++ }

func (p *resourcesPlugin) release() {
	p.counter--
	if p.counter <= 0 && p.actor.state == StateShuttingDown {
		p.actor.shutdownContinue()
	}
}

func (p *resourcesPlugin) HandleShutdown(msg *Message) PhaseResult {
	if p.counter <= 0 {
		return Finished
	}
	return Pending
}
