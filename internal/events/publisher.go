package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/logger"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/redisclient"
	"go.uber.org/zap"
)

// Publisher fans order events out to interested parties
type Publisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

// Bus publishes order events to the Redis channel that feeds connected
// dashboards and, when configured, to a Kafka topic for downstream
// consumers. Publishing happens after the database commit; a failed publish
// is logged and never rolls the order back.
type Bus struct {
	redis *redisclient.Client
	kafka *kgo.Client
	topic string
	log   *logger.Logger
}

// BusOption configures a Bus
type BusOption func(*Bus)

// WithKafka attaches an optional Kafka producer
func WithKafka(client *kgo.Client, topic string) BusOption {
	return func(b *Bus) {
		b.kafka = client
		b.topic = topic
	}
}

// NewBus creates a new Bus
func NewBus(redis *redisclient.Client, log *logger.Logger, opts ...BusOption) *Bus {
	bus := &Bus{
		redis: redis,
		log:   log,
	}
	for _, opt := range opts {
		opt(bus)
	}
	return bus
}

// NewKafkaClient creates a franz-go producer for the given brokers
func NewKafkaClient(brokers []string) (*kgo.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return client, nil
}

// PublishOrderEvent publishes an event to Redis and, if configured, Kafka
func (b *Bus) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	channel := ChannelForRestaurant(event.RestaurantID)
	if err := b.redis.Publish(ctx, channel, payload); err != nil {
		return fmt.Errorf("publish order event to %s: %w", channel, err)
	}

	if b.kafka != nil {
		record := &kgo.Record{
			Topic: b.topic,
			Key:   []byte(event.RestaurantID),
			Value: payload,
		}
		b.kafka.Produce(ctx, record, func(_ *kgo.Record, err error) {
			if err != nil {
				b.log.Error("kafka produce failed",
					zap.String("topic", b.topic),
					zap.String("order_id", event.OrderID),
					zap.Error(err))
			}
		})
	}

	return nil
}

// Close flushes and closes the Kafka producer if one is attached
func (b *Bus) Close(ctx context.Context) {
	if b.kafka != nil {
		if err := b.kafka.Flush(ctx); err != nil {
			b.log.Error("kafka flush failed", zap.Error(err))
		}
		b.kafka.Close()
	}
}
