package bollywood

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lifecycleActor struct {
	*Actor
	initialized bool
	started     bool
	shutdown    bool
}

func (a *lifecycleActor) OnInitialize() { a.initialized = true }
func (a *lifecycleActor) OnStart()      { a.started = true }
func (a *lifecycleActor) OnShutdown()   { a.shutdown = true }

func TestActor_ReachesOperationalAfterStart(t *testing.T) {
	sys := NewSystem(newTestLoop(), Options{})
	sys.Start()

	var impl *lifecycleActor
	addr, err := sys.Root().CreateActor(func(base *Actor) any {
		impl = &lifecycleActor{Actor: base}
		return impl
	})
	require.NoError(t, err)

	assert.Equal(t, StateOperational, addr.Supervisor().children[addr].state)
	assert.True(t, impl.initialized)
	assert.True(t, impl.started)
}

func TestActor_ShutdownRunsHookAndRemovesFromParent(t *testing.T) {
	sys := NewSystem(newTestLoop(), Options{})
	sys.Start()

	var impl *lifecycleActor
	addr, err := sys.Root().CreateActor(func(base *Actor) any {
		impl = &lifecycleActor{Actor: base}
		return impl
	})
	require.NoError(t, err)

	sys.Root().enqueue(NewMessage(addr, shutdownRequestMsg{}))

	assert.True(t, impl.shutdown)
	_, stillChild := sys.Root().children[addr]
	assert.False(t, stillChild)
}

type panickyActor struct {
	*Actor
}

func (a *panickyActor) OnInitialize() {
	a.Subscribe(NewHandler(a.Actor, a.onBoom))
}

func (a *panickyActor) onBoom(msg string) {
	panic(msg)
}

func TestHandlerPanic_CascadesToSelfShutdown(t *testing.T) {
	sys := NewSystem(newTestLoop(), Options{})
	sys.Start()

	addr, err := sys.Root().CreateActor(func(base *Actor) any {
		return &panickyActor{Actor: base}
	})
	require.NoError(t, err)

	Send(&sys.Root().Actor, addr, "boom")

	_, stillChild := sys.Root().children[addr]
	assert.False(t, stillChild, "actor should have shut itself down after its handler panicked")
}
