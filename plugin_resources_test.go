package bollywood

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resourceUsingActor struct {
	*Actor
}

func (a *resourceUsingActor) OnInitialize() {
	a.UseResource()
}

func TestResourcesPlugin_BlocksShutdownUntilReleased(t *testing.T) {
	sys := NewSystem(newTestLoop(), Options{})
	sys.Start()

	var impl *resourceUsingActor
	addr, err := sys.Root().CreateActor(func(base *Actor) any {
		impl = &resourceUsingActor{Actor: base}
		return impl
	})
	require.NoError(t, err)

	Send(&sys.Root().Actor, addr, shutdownRequestMsg{})

	child, stillChild := sys.Root().children[addr]
	require.True(t, stillChild, "the actor must remain a child while its resource counter is above zero")
	assert.Equal(t, StateShuttingDown, child.state)

	impl.ReleaseResource()

	_, stillChild = sys.Root().children[addr]
	assert.False(t, stillChild, "releasing the last resource must let shutdown finish")
	assert.Equal(t, StateShutDown, impl.State())
}

func TestResourcesPlugin_MultipleAcquiresRequireMatchingReleases(t *testing.T) {
	sys := NewSystem(newTestLoop(), Options{})
	sys.Start()

	var impl *resourceUsingActor
	addr, err := sys.Root().CreateActor(func(base *Actor) any {
		impl = &resourceUsingActor{Actor: base}
		return impl
	})
	require.NoError(t, err)
	impl.UseResource()

	Send(&sys.Root().Actor, addr, shutdownRequestMsg{})
	impl.ReleaseResource()
	assert.Equal(t, StateShuttingDown, impl.State(), "one release of two acquires must not finish shutdown")

	impl.ReleaseResource()
	assert.Equal(t, StateShutDown, impl.State())
}
