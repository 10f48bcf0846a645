package events

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestBus_PublishDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	var got []string
	bus.Subscribe(TopicLoggedOut, func(interface{}) { got = append(got, "a") })
	bus.Subscribe(TopicLoggedOut, func(interface{}) { got = append(got, "b") })
	bus.Subscribe(TopicLoggedIn, func(interface{}) { got = append(got, "outro") })

	bus.Publish(TopicLoggedOut, nil)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewBus(zerolog.Nop())
	assert.NotPanics(t, func() { bus.Publish("topico.sem.ninguem", 42) })
}

func TestBus_PayloadReachesHandler(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	var payload interface{}
	bus.Subscribe(TopicEntitlementExpired, func(p interface{}) { payload = p })

	bus.Publish(TopicEntitlementExpired, "loja-42")
	assert.Equal(t, "loja-42", payload)
}

func TestBus_PanicInHandlerDoesNotStopDelivery(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	delivered := false
	bus.Subscribe(TopicLoggedOut, func(interface{}) { panic("handler quebrado") })
	bus.Subscribe(TopicLoggedOut, func(interface{}) { delivered = true })

	assert.NotPanics(t, func() { bus.Publish(TopicLoggedOut, nil) })
	assert.True(t, delivered, "os demais handlers ainda recebem o evento")
}
