package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/events"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/logger"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/redisclient"
)

// Subscription is one dashboard's view of a restaurant's order events.
// Events arrive on C until Unsubscribe closes it.
type Subscription struct {
	RestaurantID string
	C            chan events.OrderEvent
}

// Hub fans order events out to connected dashboards. It holds a single
// pattern subscription on Redis and routes each message to the subscribers
// of the owning restaurant only, so tenants stay isolated even though all
// events share one Redis connection.
type Hub struct {
	redis  *redisclient.Client
	log    *logger.Logger
	buffer int

	mu          sync.RWMutex
	subs        map[string]map[*Subscription]struct{}
	onReconnect []func()

	cancel context.CancelFunc
	done   chan struct{}
}

// NewHub creates a new Hub. buffer is the per-subscription channel capacity;
// a subscriber that falls behind by more than buffer events loses the oldest.
func NewHub(redis *redisclient.Client, log *logger.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		redis:  redis,
		log:    log,
		buffer: buffer,
		subs:   make(map[string]map[*Subscription]struct{}),
		done:   make(chan struct{}),
	}
}

// OnReconnect registers a callback invoked every time the hub has to
// re-establish its Redis subscription. Must be called before Start.
func (h *Hub) OnReconnect(fn func()) {
	h.onReconnect = append(h.onReconnect, fn)
}

// Start subscribes to the order event pattern and routes messages until the
// context is cancelled or Stop is called. If the subscription drops, the hub
// resubscribes and fires the reconnect callbacks.
func (h *Hub) Start(ctx context.Context) {
	ctx, h.cancel = context.WithCancel(ctx)

	go func() {
		defer close(h.done)

		first := true
		for ctx.Err() == nil {
			if !first {
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Second):
				}
				h.log.Warn("order event subscription lost, resubscribing")
				for _, fn := range h.onReconnect {
					fn()
				}
			}
			first = false
			h.consume(ctx)
		}
	}()
}

// consume runs one subscription until the context ends or the message
// channel closes.
func (h *Hub) consume(ctx context.Context) {
	pubsub := h.redis.PSubscribe(ctx, events.ChannelPattern)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			restaurantID := events.RestaurantFromChannel(msg.Channel)
			if restaurantID == "" {
				continue
			}
			var event events.OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				h.log.Warn("dropping malformed order event",
					zap.String("channel", msg.Channel),
					zap.Error(err))
				continue
			}
			h.Broadcast(event)
		}
	}
}

// Stop cancels the Redis subscription and waits for the routing goroutine
func (h *Hub) Stop() {
	if h.cancel != nil {
		h.cancel()
		<-h.done
	}
}

// Subscribe registers a new subscription for a restaurant's events
func (h *Hub) Subscribe(restaurantID string) *Subscription {
	sub := &Subscription{
		RestaurantID: restaurantID,
		C:            make(chan events.OrderEvent, h.buffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[restaurantID] == nil {
		h.subs[restaurantID] = make(map[*Subscription]struct{})
	}
	h.subs[restaurantID][sub] = struct{}{}
	return sub
}

// Unsubscribe removes a subscription and closes its channel
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[sub.RestaurantID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.RestaurantID)
	}
	close(sub.C)
}

// Broadcast delivers an event to every subscriber of its restaurant. Sends
// never block: when a subscriber's buffer is full the oldest event is
// dropped in favor of the new one.
func (h *Hub) Broadcast(event events.OrderEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[event.RestaurantID] {
		send(sub, event)
	}
}

// BroadcastAll delivers an event to every subscriber of every restaurant,
// stamped with the subscriber's own restaurant id. Used for resync hints
// after the upstream subscription was re-established.
func (h *Hub) BroadcastAll(event events.OrderEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for restaurantID, set := range h.subs {
		scoped := event
		scoped.RestaurantID = restaurantID
		for sub := range set {
			send(sub, scoped)
		}
	}
}

func send(sub *Subscription, event events.OrderEvent) {
	select {
	case sub.C <- event:
	default:
		select {
		case <-sub.C:
		default:
		}
		select {
		case sub.C <- event:
		default:
		}
	}
}

// SubscriberCount reports how many subscriptions a restaurant currently has
func (h *Hub) SubscriberCount(restaurantID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[restaurantID])
}
