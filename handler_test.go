package bollywood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type twoHandlerActor struct {
	*Actor
}

func (a *twoHandlerActor) onFoo(msg string) {}
func (a *twoHandlerActor) onBar(msg string) {}

func TestHandler_EqualComparesActorAndMethodIdentity(t *testing.T) {
	a := &twoHandlerActor{Actor: &Actor{}}
	b := &twoHandlerActor{Actor: &Actor{}}

	h1 := NewHandler(a.Actor, a.onFoo)
	h1Again := NewHandler(a.Actor, a.onFoo)
	hOtherMethod := NewHandler(a.Actor, a.onBar)
	hOtherActor := NewHandler(b.Actor, b.onFoo)

	assert.True(t, h1.Equal(h1Again))
	assert.False(t, h1.Equal(hOtherMethod))
	assert.False(t, h1.Equal(hOtherActor))
	assert.Equal(t, h1.Hash(), h1Again.Hash())
}
