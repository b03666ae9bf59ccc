package bollywood

// lifetimePlugin tracks the set of subscription points a handler's actor
// currently owns (those confirmed after the plugin is activated; a point
// confirmed twice is recorded once) and blocks shutdown until every one of
// them has been torn
// down. It participates in the SUBSCRIPTION and UNSUBSCRIPTION slots, which
// the supervisor drives (via Actor.notifySubscribed/notifyUnsubscribed)
// whenever a confirmed point is added or removed, whether that confirmation
// arrived synchronously (local address) or over a confirmation message from
// a foreign supervisor.
type lifetimePlugin struct {
	actor  *Actor
	points []SubscriptionPoint
}

func (p *lifetimePlugin) Identity() string { return "lifetime" }

func (p *lifetimePlugin) Activate(a *Actor) {
	p.actor = a
	a.installPlugin(p, SlotShutdown)
	a.installPlugin(p, SlotSubscription)
	a.installPlugin(p, SlotUnsubscription)
}

func (p *lifetimePlugin) Deactivate() {}

func (p *lifetimePlugin) HandleSubscription(point SubscriptionPoint) PhaseResult {
	for _, existing := range p.points {
		if existing.Address == point.Address && existing.Handler.Equal(point.Handler) {
			return Consumed
		}
	}
	p.points = append(p.points, point)
	return Consumed
}

func (p *lifetimePlugin) HandleUnsubscription(point SubscriptionPoint) PhaseResult {
	p.removePoint(point)
	if len(p.points) == 0 && p.actor.state == StateShuttingDown {
		p.actor.shutdownContinue()
	}
	return Consumed
}

func (p *lifetimePlugin) removePoint(point SubscriptionPoint) {
	for i, existing := range p.points {
		if existing.Address == point.Address && existing.Handler.Equal(point.Handler) {
			p.points = append(p.points[:i], p.points[i+1:]...)
			return
		}
	}
}

// HandleShutdown blocks until every tracked point has been unsubscribed. The
// first call kicks off unsubscription of everything still outstanding; it
// and every later call report Pending until the resulting confirmations
// drain the list to empty.
func (p *lifetimePlugin) HandleShutdown(msg *Message) PhaseResult {
	if len(p.points) == 0 {
		return Finished
	}
	// Snapshot first: unsubscribeActor can synchronously reach back into
	// removePoint (for a local point) and mutate p.points mid-iteration.
	pending := append([]SubscriptionPoint(nil), p.points...)
	for _, point := range pending {
		p.actor.supervisor.unsubscribeActor(point.Address, point.Handler)
	}
	return Pending
}
