package event

import (
	"testing"
)

type testEvent struct {
	Base
	Value int
}

func newTestEvent(eventType string, v int) testEvent {
	return testEvent{Base: NewBase(eventType), Value: v}
}

func TestPublish_SpecificThenWildcard(t *testing.T) {
	bus := NewBus(nil)
	var order []string

	bus.SubscribeAll(func(Event) { order = append(order, "all") })
	bus.Subscribe("a.b", func(Event) { order = append(order, "specific-1") })
	bus.Subscribe("a.b", func(Event) { order = append(order, "specific-2") })
	bus.Subscribe("other", func(Event) { order = append(order, "other") })

	bus.Publish(newTestEvent("a.b", 1))

	want := []string{"specific-1", "specific-2", "all"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestPublish_CarriesPayload(t *testing.T) {
	bus := NewBus(nil)
	var got int
	bus.Subscribe("x", func(e Event) {
		if te, ok := e.(testEvent); ok {
			got = te.Value
		}
	})

	bus.Publish(newTestEvent("x", 42))
	if got != 42 {
		t.Errorf("got %d, want 42", got)
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus(nil)
	calls := 0
	id := bus.Subscribe("x", func(Event) { calls++ })

	if !bus.Unsubscribe(id) {
		t.Fatal("expected Unsubscribe to find the subscription")
	}
	if bus.Unsubscribe(id) {
		t.Error("second Unsubscribe should report false")
	}

	bus.Publish(newTestEvent("x", 0))
	if calls != 0 {
		t.Errorf("handler called %d times after unsubscribe", calls)
	}
	if n := bus.SubscriptionCount("x"); n != 0 {
		t.Errorf("SubscriptionCount = %d, want 0", n)
	}
}

func TestPublish_RecoversFromPanic(t *testing.T) {
	bus := NewBus(nil)
	reached := false
	bus.Subscribe("x", func(Event) { panic("boom") })
	bus.Subscribe("x", func(Event) { reached = true })

	bus.Publish(newTestEvent("x", 0))
	if !reached {
		t.Error("handler after a panicking handler should still run")
	}
}
