package bollywood

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingActor struct {
	*Actor
	count *int
}

func (a *countingActor) OnInitialize() {
	a.Subscribe(NewHandler(a.Actor, a.onPing))
}

func (a *countingActor) onPing(msg string) { *a.count++ }

func TestSupervisor_ShutdownCascadesToChildren(t *testing.T) {
	sys := NewSystem(newTestLoop(), Options{})
	sys.Start()

	n := 0
	_, err := sys.Root().CreateActor(func(base *Actor) any {
		return &countingActor{Actor: base, count: &n}
	})
	require.NoError(t, err)
	_, err = sys.Root().CreateActor(func(base *Actor) any {
		return &countingActor{Actor: base, count: &n}
	})
	require.NoError(t, err)

	sys.Shutdown()

	assert.Equal(t, StateShutDown, sys.Root().state)
	assert.Empty(t, sys.Root().children)
}

func TestSupervisor_CascadesThroughChildSupervisor(t *testing.T) {
	sys := NewSystem(newTestLoop(), Options{})
	sys.Start()

	child, err := sys.Root().CreateLocalSupervisor(Options{})
	require.NoError(t, err)

	n := 0
	_, err = child.CreateActor(func(base *Actor) any {
		return &countingActor{Actor: base, count: &n}
	})
	require.NoError(t, err)

	sys.Shutdown()

	assert.Equal(t, StateShutDown, sys.Root().state)
	assert.Equal(t, StateShutDown, child.state)
	assert.Empty(t, child.children)
}

func TestSupervisor_CrossLocalityDelivery(t *testing.T) {
	sys := NewSystem(newTestLoop(), Options{})
	sys.Start()

	child, err := sys.Root().CreateSupervisor(newTestLoop(), Options{})
	require.NoError(t, err)

	n := 0
	addr, err := child.CreateActor(func(base *Actor) any {
		return &countingActor{Actor: base, count: &n}
	})
	require.NoError(t, err)

	Send(&sys.Root().Actor, addr, "ping")

	assert.Equal(t, 1, n)
}

type reqBody struct{ N int }
type respBody struct{ N int }

type echoActor struct{ *Actor }

func (a *echoActor) OnInitialize() {
	a.Subscribe(NewHandler(a.Actor, a.onRequest))
}

func (a *echoActor) onRequest(req Request[reqBody]) {
	ReplyTo(a.Actor, req, respBody{N: req.Body.N * 2})
}

func TestRequest_ResolvesWithResponse(t *testing.T) {
	sys := NewSystem(newTestLoop(), Options{})
	sys.Start()

	addr, err := sys.Root().CreateActor(func(base *Actor) any {
		return &echoActor{Actor: base}
	})
	require.NoError(t, err)

	var got respBody
	var gotErr error
	calls := 0
	NewRequest[reqBody, respBody](&sys.Root().Actor, addr, reqBody{N: 21}).Then(func(resp respBody, err error) {
		calls++
		got = resp
		gotErr = err
	})

	assert.Equal(t, 1, calls)
	assert.NoError(t, gotErr)
	assert.Equal(t, 42, got.N)
}

type silentActor struct{ *Actor }

func (a *silentActor) OnInitialize() {}

func TestRequest_TimesOutWhenNoResponseArrives(t *testing.T) {
	loop := newTestLoop()
	sys := NewSystem(loop, Options{})
	sys.Start()

	addr, err := sys.Root().CreateActor(func(base *Actor) any {
		return &silentActor{Actor: base}
	})
	require.NoError(t, err)

	calls := 0
	var gotErr error
	NewRequest[reqBody, respBody](&sys.Root().Actor, addr, reqBody{N: 1}).
		Timeout(time.Millisecond).
		Then(func(resp respBody, err error) {
			calls++
			gotErr = err
		})

	require.Equal(t, 0, calls, "no timer has fired yet")
	loop.fire(1)

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, gotErr, ErrRequestTimeout)

	// A response arriving after the timeout already resolved the request
	// must not invoke the continuation a second time.
	sys.Root().resolveRequest(1, respBody{N: 99}, nil)
	assert.Equal(t, 1, calls)
}
