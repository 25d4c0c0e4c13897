package gateways

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"

	protocols "github.com/giovaniif/bucket-list/protocols"
)

type EventPublisherKafka struct {
	writer  *kafka.Writer
	brokers []string
	dial    func(ctx context.Context, broker string) (io.Closer, error)
}

func NewEventPublisherKafka(brokers []string, topic string) *EventPublisherKafka {
	return &EventPublisherKafka{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           PublishTimeout,
			MaxAttempts:            1,
			AllowAutoTopicCreation: true,
		},
		brokers: brokers,
		dial:    dialKafka,
	}
}

// Publish writes the event keyed by consumer (or item) id so events about one
// resource keep their order within a partition.
func (p *EventPublisherKafka) Publish(ctx context.Context, event protocols.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka marshal: %w", err)
	}
	carrier := &kafkaHeaderCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	message := kafka.Message{
		Key:     []byte(eventKey(event)),
		Value:   value,
		Time:    event.OccurredAt,
		Headers: append(carrier.headers, kafka.Header{Key: "event-type", Value: []byte(event.Type)}),
	}
	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

// Ping succeeds as soon as one broker accepts a connection.
func (p *EventPublisherKafka) Ping(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("kafka: no brokers configured")
	}
	var errs []error
	for _, broker := range p.brokers {
		conn, err := p.dial(ctx, broker)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", broker, err))
			continue
		}
		return conn.Close()
	}
	return errors.Join(errs...)
}

func dialKafka(ctx context.Context, broker string) (io.Closer, error) {
	return kafka.DialContext(ctx, "tcp", broker)
}

func (p *EventPublisherKafka) Close() error {
	return p.writer.Close()
}

func eventKey(event protocols.Event) string {
	if event.ConsumerId != 0 {
		return "consumer-" + strconv.Itoa(int(event.ConsumerId))
	}
	return "item-" + strconv.Itoa(int(event.ItemId))
}

// kafkaHeaderCarrier lets the otel propagator write trace context into message headers.
type kafkaHeaderCarrier struct {
	headers []kafka.Header
}

func (c *kafkaHeaderCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *kafkaHeaderCarrier) Set(key string, value string) {
	for i, h := range c.headers {
		if h.Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c *kafkaHeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}
