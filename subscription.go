package bollywood

import "reflect"

// SubscriptionPoint is the pair (address, handler) registered for dispatch.
// A point confirmed after the handler's actor has its lifetime plugin exists
// in two places: the subscription table of the address's owning supervisor,
// and that lifetime plugin (see plugin_lifetime.go); an unsubscription
// confirmed by the table is removed from the plugin as well. Handlers
// subscribed before the lifetime plugin is activated (the control handlers
// installed by bootstrap and a supervisor's child-manager handler) and a
// supervisor's reply-address handlers are held by the table only, and are
// not removed when the actor shuts down.
type SubscriptionPoint struct {
	Address *Address
	Handler Handler
}

// handlerCall is the message a subscription table sends to a foreign
// supervisor so it can invoke a handler it hosts against a message that
// arrived on a different supervisor's address.
type handlerCall struct {
	Handler Handler
	Orig    *Message
}

// bucket holds the ordered handler lists for a single address, split into
// "mine" (handler's actor lives on the address's owning supervisor) and
// "foreign" (handler's actor lives elsewhere).
type bucket struct {
	mine    map[reflect.Type][]Handler
	foreign map[reflect.Type][]Handler
}

func newBucket() *bucket {
	return &bucket{mine: map[reflect.Type][]Handler{}, foreign: map[reflect.Type][]Handler{}}
}

// subscriptionTable maps a local address to its per-type handler lists.
// It belongs to a single supervisor and is mutated only on that
// supervisor's own loop — no internal locking.
type subscriptionTable struct {
	owner   *Supervisor
	entries map[*Address]*bucket
}

func newSubscriptionTable(owner *Supervisor) *subscriptionTable {
	return &subscriptionTable{owner: owner, entries: map[*Address]*bucket{}}
}

// subscribe appends handler to addr's list for its type. Duplicates (an
// already-equal handler) are idempotent: no second entry is added, and the
// caller still confirms the point as if it were new.
func (t *subscriptionTable) subscribe(addr *Address, h Handler) {
	b, ok := t.entries[addr]
	if !ok {
		b = newBucket()
		t.entries[addr] = b
	}
	list := t.listFor(b, h)
	for _, existing := range (*list)[h.Type()] {
		if existing.Equal(h) {
			return
		}
	}
	(*list)[h.Type()] = append((*list)[h.Type()], h)
}

// unsubscribe removes the last matching entry (LIFO). The reverse-scan
// tie-break matches the order in which the lifetime plugin records
// subscriptions, so paired bookkeeping stays consistent. It reports
// whether a matching entry was found.
func (t *subscriptionTable) unsubscribe(addr *Address, h Handler) bool {
	b, ok := t.entries[addr]
	if !ok {
		return false
	}
	list := t.listFor(b, h)
	handlers := (*list)[h.Type()]
	for i := len(handlers) - 1; i >= 0; i-- {
		if handlers[i].Equal(h) {
			(*list)[h.Type()] = append(handlers[:i], handlers[i+1:]...)
			if len((*list)[h.Type()]) == 0 {
				delete(*list, h.Type())
			}
			if len(b.mine) == 0 && len(b.foreign) == 0 {
				delete(t.entries, addr)
			}
			return true
		}
	}
	return false
}

// listFor returns the mine or foreign map of b depending on whether h's
// actor lives on this table's owning supervisor.
func (t *subscriptionTable) listFor(b *bucket, h Handler) *map[reflect.Type][]Handler {
	if h.Actor() != nil && h.Actor().supervisor == t.owner {
		return &b.mine
	}
	return &b.foreign
}

// dispatch invokes every handler subscribed to msg's destination for msg's
// type: mine handlers are called synchronously, foreign handlers are
// forwarded as a handlerCall to the supervisor that owns them. Dispatching
// to an address with no matching entry is a no-op, not an error — this
// supports addresses used purely for routing.
func (t *subscriptionTable) dispatch(msg *Message) {
	b, ok := t.entries[msg.Dest]
	if !ok {
		return
	}
	typ := msg.Type()
	mine := b.mine[typ]
	foreign := b.foreign[typ]
	if n := len(mine) + len(foreign); n > 0 {
		t.owner.metrics.MessagesDispatched(typ.String(), n)
	}
	for _, h := range mine {
		h.Call(msg)
	}
	for _, h := range foreign {
		dest := h.Actor().Address()
		h.Actor().supervisor.enqueue(NewMessage(dest, handlerCall{Handler: h, Orig: msg}))
	}
}
