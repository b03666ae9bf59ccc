package bollywood

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionTable_SubscribeIsIdempotent(t *testing.T) {
	sys := NewSystem(newTestLoop(), Options{})
	root := sys.Root()

	calls := 0
	h := NewHandler(&root.Actor, func(msg string) { calls++ })

	root.subs.subscribe(root.Address(), h)
	root.subs.subscribe(root.Address(), h)

	root.subs.dispatch(NewMessage(root.Address(), "hi"))
	assert.Equal(t, 1, calls, "duplicate subscribe must not register the handler twice")
}

func TestSubscriptionTable_UnsubscribeRemovesHandler(t *testing.T) {
	sys := NewSystem(newTestLoop(), Options{})
	root := sys.Root()

	calls := 0
	h := NewHandler(&root.Actor, func(msg string) { calls++ })

	root.subs.subscribe(root.Address(), h)
	removed := root.subs.unsubscribe(root.Address(), h)
	assert.True(t, removed)

	root.subs.dispatch(NewMessage(root.Address(), "hi"))
	assert.Equal(t, 0, calls)
}

func TestSubscriptionTable_UnsubscribeUnknownPointIsBenign(t *testing.T) {
	sys := NewSystem(newTestLoop(), Options{})
	root := sys.Root()

	h := NewHandler(&root.Actor, func(msg string) {})
	assert.False(t, root.subs.unsubscribe(root.Address(), h))
}

// foreignSubscriberActor lives on one supervisor and subscribes to an
// address owned by another, exercising the subscription table's foreign
// bucket and the handlerCall forwarding path.
type foreignSubscriberActor struct {
	*Actor
	target *Address
	count  int
}

func (a *foreignSubscriberActor) OnInitialize() {
	a.SubscribeAt(a.target, NewHandler(a.Actor, a.onPing))
}

func (a *foreignSubscriberActor) onPing(msg string) { a.count++ }

func TestSubscribeAt_ForwardsDispatchAcrossSupervisorsAndDrainsOnShutdown(t *testing.T) {
	sys1 := NewSystem(newTestLoop(), Options{})
	sys1.Start()
	sys2 := NewSystem(newTestLoop(), Options{})
	sys2.Start()

	target, err := sys2.Root().CreateActor(func(base *Actor) any {
		return &silentActor{Actor: base}
	})
	require.NoError(t, err)

	var sub *foreignSubscriberActor
	_, err = sys1.Root().CreateActor(func(base *Actor) any {
		sub = &foreignSubscriberActor{Actor: base, target: target}
		return sub
	})
	require.NoError(t, err)

	strType := reflect.TypeOf("")
	bucket, ok := sys2.Root().subs.entries[target]
	require.True(t, ok, "SubscribeAt must register the point in the target's owning supervisor")
	assert.Len(t, bucket.foreign[strType], 1, "a handler whose actor lives on another supervisor belongs in the foreign bucket, not mine")
	assert.Empty(t, bucket.mine[strType])

	Send(&sys2.Root().Actor, target, "ping")
	assert.Equal(t, 1, sub.count, "a message to a foreign-owned address must reach the subscriber exactly once via handlerCall forwarding")

	sys1.Shutdown()
	assert.Equal(t, StateShutDown, sys1.Root().state,
		"shutdown must complete, which only happens if the cross-supervisor unsubscription confirmation round-tripped back from sys2")

	bucket, ok = sys2.Root().subs.entries[target]
	if ok {
		assert.Empty(t, bucket.foreign[strType], "the foreign handler must be removed from the remote table once its actor unsubscribes during shutdown")
	}
}
