package gateways

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	protocols "github.com/giovaniif/bucket-list/protocols"
	"github.com/segmentio/kafka-go"
)

type mockSleeper struct {
	durations []time.Duration
	err       error
}

func (m *mockSleeper) Sleep(ctx context.Context, duration time.Duration) error {
	m.durations = append(m.durations, duration)
	return m.err
}

type flakyPublisher struct {
	errs  []error
	calls int
}

func (f *flakyPublisher) Publish(ctx context.Context, event protocols.Event) error {
	f.calls++
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func TestRetryRecoversFromTransientFailure(t *testing.T) {
	publisher := &flakyPublisher{errs: []error{errors.New("connection reset"), kafka.LeaderNotAvailable}}
	sleeper := &mockSleeper{}
	retry := NewEventPublisherRetry(publisher, sleeper)

	err := retry.Publish(context.Background(), protocols.NewEvent(protocols.EventItemCreated, 1, 0))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if publisher.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", publisher.calls)
	}
	expected := []time.Duration{PublishBaseDelay, 2 * PublishBaseDelay}
	if len(sleeper.durations) != len(expected) {
		t.Fatalf("expected %d sleeps, got %d", len(expected), len(sleeper.durations))
	}
	for i, d := range expected {
		if sleeper.durations[i] != d {
			t.Fatalf("expected sleep %d to be %v, got %v", i, d, sleeper.durations[i])
		}
	}
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	publisher := &failingPublisher{}
	sleeper := &mockSleeper{}
	retry := NewEventPublisherRetry(publisher, sleeper)

	err := retry.Publish(context.Background(), protocols.NewEvent(protocols.EventItemCreated, 1, 0))
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if publisher.calls != MaxPublishAttempts {
		t.Fatalf("expected %d attempts, got %d", MaxPublishAttempts, publisher.calls)
	}
	if len(sleeper.durations) != MaxPublishAttempts-1 {
		t.Fatalf("expected %d sleeps, got %d", MaxPublishAttempts-1, len(sleeper.durations))
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	publisher := &flakyPublisher{errs: []error{kafka.TopicAuthorizationFailed}}
	sleeper := &mockSleeper{}
	retry := NewEventPublisherRetry(publisher, sleeper)

	err := retry.Publish(context.Background(), protocols.NewEvent(protocols.EventItemCreated, 1, 0))
	if !errors.Is(err, kafka.TopicAuthorizationFailed) {
		t.Fatalf("expected TopicAuthorizationFailed, got %v", err)
	}
	if publisher.calls != 1 || len(sleeper.durations) != 0 {
		t.Fatalf("expected a single attempt without sleeping, got %d attempts and %d sleeps", publisher.calls, len(sleeper.durations))
	}
}

func TestRetryStopsWhenContextIsDone(t *testing.T) {
	publisher := &failingPublisher{}
	sleeper := &mockSleeper{err: context.Canceled}
	retry := NewEventPublisherRetry(publisher, sleeper)

	err := retry.Publish(context.Background(), protocols.NewEvent(protocols.EventItemCreated, 1, 0))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if publisher.calls != 1 {
		t.Fatalf("expected 1 attempt, got %d", publisher.calls)
	}
}

func TestIsRetriable(t *testing.T) {
	cases := []struct {
		err      error
		expected bool
	}{
		{nil, false},
		{context.Canceled, false},
		{context.DeadlineExceeded, false},
		{kafka.RequestTimedOut, true},
		{kafka.TopicAuthorizationFailed, false},
		{errors.New("connection refused"), true},
	}
	for _, tc := range cases {
		if got := IsRetriable(tc.err); got != tc.expected {
			t.Fatalf("expected IsRetriable(%v) to be %v, got %v", tc.err, tc.expected, got)
		}
	}
}

func TestSleeperHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewSleeper().Sleep(ctx, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := NewSleeper().Sleep(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

type blockingPublisher struct {
	calls int
}

func (b *blockingPublisher) Publish(ctx context.Context, event protocols.Event) error {
	b.calls++
	<-ctx.Done()
	return ctx.Err()
}

func TestRetryBoundsAHangingPublisher(t *testing.T) {
	publisher := &blockingPublisher{}
	retry := NewEventPublisherRetry(publisher, NewSleeper())
	retry.timeout = 20 * time.Millisecond

	start := time.Now()
	err := retry.Publish(context.Background(), protocols.NewEvent(protocols.EventItemCreated, 1, 0))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected publish to give up after its timeout, took %v", elapsed)
	}
	if publisher.calls != 1 {
		t.Fatalf("expected 1 attempt, got %d", publisher.calls)
	}
}

type contextRecordingPublisher struct {
	ctxErr error
}

func (c *contextRecordingPublisher) Publish(ctx context.Context, event protocols.Event) error {
	c.ctxErr = ctx.Err()
	return nil
}

func TestRetryPublishesAfterCallerCancelled(t *testing.T) {
	publisher := &contextRecordingPublisher{}
	retry := NewEventPublisherRetry(publisher, &mockSleeper{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := retry.Publish(ctx, protocols.NewEvent(protocols.EventItemDeleted, 1, 0)); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if publisher.ctxErr != nil {
		t.Fatalf("expected the publisher to get a live context, got %v", publisher.ctxErr)
	}
}

func TestIsRetriableWriteErrors(t *testing.T) {
	cases := []struct {
		err      error
		expected bool
	}{
		{kafka.WriteErrors{kafka.TopicAuthorizationFailed}, false},
		{fmt.Errorf("kafka write: %w", kafka.WriteErrors{kafka.TopicAuthorizationFailed}), false},
		{kafka.WriteErrors{nil, kafka.LeaderNotAvailable}, true},
		{fmt.Errorf("kafka write: %w", kafka.WriteErrors{kafka.TopicAuthorizationFailed, kafka.RequestTimedOut}), true},
	}
	for _, tc := range cases {
		if got := IsRetriable(tc.err); got != tc.expected {
			t.Fatalf("expected IsRetriable(%v) to be %v, got %v", tc.err, tc.expected, got)
		}
	}
}
