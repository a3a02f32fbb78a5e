package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/events"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/logger"
)

func recv(t *testing.T, ch chan events.OrderEvent) events.OrderEvent {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return events.OrderEvent{}
	}
}

func TestHub_BroadcastRoutesByRestaurant(t *testing.T) {
	hub := NewHub(nil, logger.Get(), 4)

	subA := hub.Subscribe("restaurant-a")
	subB := hub.Subscribe("restaurant-b")
	defer hub.Unsubscribe(subA)
	defer hub.Unsubscribe(subB)

	hub.Broadcast(events.OrderEvent{Type: events.OrderCreated, OrderID: "o1", RestaurantID: "restaurant-a"})

	got := recv(t, subA.C)
	assert.Equal(t, "o1", got.OrderID)

	select {
	case event := <-subB.C:
		t.Fatalf("restaurant-b must not receive restaurant-a events, got %+v", event)
	default:
	}
}

func TestHub_MultipleSubscribersSameRestaurant(t *testing.T) {
	hub := NewHub(nil, logger.Get(), 4)

	sub1 := hub.Subscribe("restaurant-a")
	sub2 := hub.Subscribe("restaurant-a")
	defer hub.Unsubscribe(sub1)
	defer hub.Unsubscribe(sub2)

	require.Equal(t, 2, hub.SubscriberCount("restaurant-a"))

	hub.Broadcast(events.OrderEvent{Type: events.OrderUpdated, OrderID: "o2", RestaurantID: "restaurant-a"})

	assert.Equal(t, "o2", recv(t, sub1.C).OrderID)
	assert.Equal(t, "o2", recv(t, sub2.C).OrderID)
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub(nil, logger.Get(), 4)

	sub := hub.Subscribe("restaurant-a")
	hub.Unsubscribe(sub)

	_, open := <-sub.C
	assert.False(t, open, "channel must be closed after unsubscribe")
	assert.Equal(t, 0, hub.SubscriberCount("restaurant-a"))

	// Double unsubscribe is a no-op, not a double close
	hub.Unsubscribe(sub)
}

func TestHub_BroadcastAllReachesEveryRestaurant(t *testing.T) {
	hub := NewHub(nil, logger.Get(), 4)

	subA := hub.Subscribe("restaurant-a")
	subB := hub.Subscribe("restaurant-b")
	defer hub.Unsubscribe(subA)
	defer hub.Unsubscribe(subB)

	hub.BroadcastAll(events.OrderEvent{Type: events.OrderResync, OccurredAt: time.Now()})

	gotA := recv(t, subA.C)
	gotB := recv(t, subB.C)
	assert.Equal(t, events.OrderResync, gotA.Type)
	assert.Equal(t, "restaurant-a", gotA.RestaurantID)
	assert.Equal(t, events.OrderResync, gotB.Type)
	assert.Equal(t, "restaurant-b", gotB.RestaurantID)
}

func TestHub_SlowSubscriberDropsOldest(t *testing.T) {
	hub := NewHub(nil, logger.Get(), 2)

	sub := hub.Subscribe("restaurant-a")
	defer hub.Unsubscribe(sub)

	for i := 0; i < 5; i++ {
		hub.Broadcast(events.OrderEvent{
			Type:         events.OrderCreated,
			OrderID:      string(rune('a' + i)),
			RestaurantID: "restaurant-a",
		})
	}

	// Buffer holds the two newest events; older ones were dropped, and the
	// broadcaster never blocked.
	first := recv(t, sub.C)
	second := recv(t, sub.C)
	assert.Equal(t, "d", first.OrderID)
	assert.Equal(t, "e", second.OrderID)
}
