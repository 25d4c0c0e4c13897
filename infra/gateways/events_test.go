package gateways

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	protocols "github.com/giovaniif/bucket-list/protocols"
)

type failingPublisher struct {
	calls int
}

func (f *failingPublisher) Publish(ctx context.Context, event protocols.Event) error {
	f.calls++
	return errors.New("unavailable")
}

func TestFanoutDeliversToEveryPublisher(t *testing.T) {
	first := NewEventPublisherMemory()
	failing := &failingPublisher{}
	last := NewEventPublisherMemory()
	fanout := NewEventPublisherFanout().Add("first", first).Add("kafka", failing).Add("last", last)

	err := fanout.Publish(context.Background(), protocols.NewEvent(protocols.EventItemCreated, 1, 0))
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "kafka: unavailable") {
		t.Fatalf("expected the failing publisher to be named, got %v", err)
	}
	if len(first.Published()) != 1 || len(last.Published()) != 1 || failing.calls != 1 {
		t.Fatalf("expected every publisher to be called once, got %d %d %d", len(first.Published()), failing.calls, len(last.Published()))
	}
}

func TestFanoutWithoutFailures(t *testing.T) {
	memory := NewEventPublisherMemory()
	fanout := NewEventPublisherFanout().Add("memory", memory)

	if err := fanout.Publish(context.Background(), protocols.NewEvent(protocols.EventConsumerCreated, 0, 2)); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	published := memory.Published()
	if len(published) != 1 || published[0].ConsumerId != 2 {
		t.Fatalf("unexpected events: %+v", published)
	}
}

func TestEventKey(t *testing.T) {
	if key := eventKey(protocols.NewEvent(protocols.EventBucketListItemAdded, 9, 6)); key != "consumer-6" {
		t.Fatalf("expected consumer-6, got %s", key)
	}
	if key := eventKey(protocols.NewEvent(protocols.EventItemDeleted, 9, 0)); key != "item-9" {
		t.Fatalf("expected item-9, got %s", key)
	}
}

func TestKafkaHeaderCarrier(t *testing.T) {
	carrier := &kafkaHeaderCarrier{}
	carrier.Set("traceparent", "a")
	carrier.Set("traceparent", "b")
	carrier.Set("baggage", "c")

	if carrier.Get("traceparent") != "b" {
		t.Fatalf("expected overwritten value b, got %q", carrier.Get("traceparent"))
	}
	if len(carrier.Keys()) != 2 {
		t.Fatalf("expected 2 keys, got %v", carrier.Keys())
	}
	if carrier.Get("missing") != "" {
		t.Fatalf("expected empty value for missing key")
	}
}

type slowPublisher struct {
	delay time.Duration
}

func (s *slowPublisher) Publish(ctx context.Context, event protocols.Event) error {
	time.Sleep(s.delay)
	return nil
}

func TestFanoutPublishesConcurrently(t *testing.T) {
	fanout := NewEventPublisherFanout().
		Add("kafka", &slowPublisher{delay: 200 * time.Millisecond}).
		Add("mongo", &slowPublisher{delay: 200 * time.Millisecond})

	start := time.Now()
	if err := fanout.Publish(context.Background(), protocols.NewEvent(protocols.EventItemCreated, 1, 0)); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed >= 400*time.Millisecond {
		t.Fatalf("expected sinks to be called concurrently, took %v", elapsed)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func TestKafkaPingTriesEveryBroker(t *testing.T) {
	publisher := NewEventPublisherKafka([]string{"kafka-1:9092", "kafka-2:9092"}, "events")
	defer publisher.Close()
	var dialed []string
	publisher.dial = func(ctx context.Context, broker string) (io.Closer, error) {
		dialed = append(dialed, broker)
		if broker == "kafka-1:9092" {
			return nil, errors.New("connection refused")
		}
		return nopCloser{}, nil
	}

	if err := publisher.Ping(context.Background()); err != nil {
		t.Fatalf("expected nil error with one broker up, got %v", err)
	}
	if len(dialed) != 2 {
		t.Fatalf("expected both brokers to be dialed, got %v", dialed)
	}
}

func TestKafkaPingAllBrokersDown(t *testing.T) {
	publisher := NewEventPublisherKafka([]string{"kafka-1:9092", "kafka-2:9092"}, "events")
	defer publisher.Close()
	publisher.dial = func(ctx context.Context, broker string) (io.Closer, error) {
		return nil, errors.New("connection refused")
	}

	err := publisher.Ping(context.Background())
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "kafka-1:9092") || !strings.Contains(err.Error(), "kafka-2:9092") {
		t.Fatalf("expected every broker to be named, got %v", err)
	}
}
