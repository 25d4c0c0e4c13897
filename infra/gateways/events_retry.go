package gateways

import (
	"context"
	"errors"
	"fmt"
	"time"

	protocols "github.com/giovaniif/bucket-list/protocols"
	"github.com/segmentio/kafka-go"
)

var (
	MaxPublishAttempts = 3
	PublishBaseDelay   = 100 * time.Millisecond
	PublishTimeout     = 500 * time.Millisecond
)

// EventPublisherRetry retries a publisher with exponential backoff while the
// failure looks transient. All attempts together are bounded by PublishTimeout
// and survive the caller's cancellation, since the change being announced has
// already been applied.
type EventPublisherRetry struct {
	publisher protocols.EventPublisher
	sleeper   protocols.Sleeper
	timeout   time.Duration
}

func NewEventPublisherRetry(publisher protocols.EventPublisher, sleeper protocols.Sleeper) *EventPublisherRetry {
	return &EventPublisherRetry{publisher: publisher, sleeper: sleeper, timeout: PublishTimeout}
}

func (r *EventPublisherRetry) Publish(ctx context.Context, event protocols.Event) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	var lastError error
	for attempt := 0; attempt < MaxPublishAttempts; attempt++ {
		if attempt > 0 {
			if err := r.sleeper.Sleep(ctx, PublishBaseDelay<<(attempt-1)); err != nil {
				return fmt.Errorf("%w (last error: %v)", err, lastError)
			}
		}
		err := r.publisher.Publish(ctx, event)
		if err == nil {
			return nil
		}
		lastError = err
		if !IsRetriable(err) {
			return err
		}
	}
	return fmt.Errorf("publish failed after %d attempts: %w", MaxPublishAttempts, lastError)
}

// IsRetriable returns false for cancelled or expired contexts and for broker
// errors kafka reports as permanent. A batch of write errors is retriable when
// any of its messages failed transiently.
func IsRetriable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var writeErrors kafka.WriteErrors
	if errors.As(err, &writeErrors) {
		for _, messageErr := range writeErrors {
			if IsRetriable(messageErr) {
				return true
			}
		}
		return false
	}
	var kafkaError kafka.Error
	if errors.As(err, &kafkaError) {
		return kafkaError.Temporary()
	}
	return true
}
