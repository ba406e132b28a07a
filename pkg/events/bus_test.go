package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()

	var got []int
	bus.Subscribe(FlashStart, func(interface{}) { got = append(got, 1) })
	bus.Subscribe(FlashStart, func(interface{}) { got = append(got, 2) })
	bus.Subscribe(FlashStart, func(interface{}) { got = append(got, 3) })

	bus.Publish(FlashStart, nil)

	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestPublishWithNoSubscribers(t *testing.T) {
	bus := NewBus()
	// Must be a silent no-op.
	bus.Publish(CodeGenerated, CodeGeneratedPayload{Code: "void setup(){}"})
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsubscribe := bus.Subscribe(PeripheralUpdate, func(interface{}) { calls++ })

	bus.Publish(PeripheralUpdate, PeripheralCounts{GPIO: 1})
	unsubscribe()
	bus.Publish(PeripheralUpdate, PeripheralCounts{GPIO: 2})

	assert.Equal(t, 1, calls)

	// A second unsubscribe is harmless.
	unsubscribe()
}

func TestPanickingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewBus()

	var delivered []string
	bus.Subscribe(FlashComplete, func(interface{}) { delivered = append(delivered, "first") })
	bus.Subscribe(FlashComplete, func(interface{}) { panic("boom") })
	bus.Subscribe(FlashComplete, func(interface{}) { delivered = append(delivered, "third") })

	assert.NotPanics(t, func() {
		bus.Publish(FlashComplete, FlashResult{Success: false, Error: "port busy"})
	})
	assert.Equal(t, []string{"first", "third"}, delivered)
}

func TestEventNamesAreIndependent(t *testing.T) {
	bus := NewBus()

	flashCalls, codeCalls := 0, 0
	bus.Subscribe(FlashStart, func(interface{}) { flashCalls++ })
	bus.Subscribe(CodeGenerated, func(interface{}) { codeCalls++ })

	bus.Publish(FlashStart, nil)
	bus.Publish(FlashStart, nil)

	assert.Equal(t, 2, flashCalls)
	assert.Equal(t, 0, codeCalls)
}

func TestPayloadReachesHandlerUnchanged(t *testing.T) {
	bus := NewBus()

	var got CodeGeneratedPayload
	bus.Subscribe(CodeGenerated, func(payload interface{}) {
		got = payload.(CodeGeneratedPayload)
	})

	want := CodeGeneratedPayload{Code: "void loop(){}", FileName: "main.cpp"}
	bus.Publish(CodeGenerated, want)

	assert.Equal(t, want, got)
}
