package ecs

import "testing"

type tickEvent struct{ N int }

func TestEventBusPublishInSubscriptionOrder(t *testing.T) {
	var bus EventBus
	var order []int
	Subscribe(&bus, func(e tickEvent) { order = append(order, e.N*10) })
	Subscribe(&bus, func(e tickEvent) { order = append(order, e.N*100) })

	Publish(&bus, tickEvent{N: 1})

	if len(order) != 2 || order[0] != 10 || order[1] != 100 {
		t.Fatalf("unexpected handler order: %v", order)
	}
}

func TestEventBusPublishWithNoSubscribersIsNoop(t *testing.T) {
	var bus EventBus
	Publish(&bus, tickEvent{N: 1}) // must not panic
}

func TestHookBusFiresOnComponentSet(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	var fired []EntityId
	w.OnComponentSet(func(e, c EntityId) { fired = append(fired, e) })

	e := w.Spawn()
	Set(w, e, Position{X: 1})

	if len(fired) != 1 || fired[0] != e {
		t.Fatalf("expected hook fired once for %v, got %v", e, fired)
	}
}

func TestHookBusFiresOnEntityDestroyed(t *testing.T) {
	w := NewWorld(DefaultWorldConfig())
	var destroyed EntityId
	w.OnEntityDestroyed(func(e EntityId) { destroyed = e })

	e := w.Spawn()
	w.Destroy(e)

	if destroyed != e {
		t.Fatalf("expected destroyed hook to fire for %v, got %v", e, destroyed)
	}
}
