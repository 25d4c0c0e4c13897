package gateways

import (
	"context"
	"errors"
	"fmt"
	"sync"

	protocols "github.com/giovaniif/bucket-list/protocols"
)

type EventPublisherMemory struct {
	mutex     sync.Mutex
	published []protocols.Event
}

func NewEventPublisherMemory() *EventPublisherMemory {
	return &EventPublisherMemory{}
}

func (p *EventPublisherMemory) Publish(ctx context.Context, event protocols.Event) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.published = append(p.published, event)
	return nil
}

func (p *EventPublisherMemory) Published() []protocols.Event {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]protocols.Event(nil), p.published...)
}

type namedPublisher struct {
	name      string
	publisher protocols.EventPublisher
}

// EventPublisherFanout delivers every event to all registered publishers, even
// when some of them fail, and reports the failures in registration order.
type EventPublisherFanout struct {
	publishers []namedPublisher
}

func NewEventPublisherFanout() *EventPublisherFanout {
	return &EventPublisherFanout{}
}

func (f *EventPublisherFanout) Add(name string, publisher protocols.EventPublisher) *EventPublisherFanout {
	f.publishers = append(f.publishers, namedPublisher{name: name, publisher: publisher})
	return f
}

// Publish calls every publisher concurrently, so a slow sink costs one timeout
// rather than adding up with the others.
func (f *EventPublisherFanout) Publish(ctx context.Context, event protocols.Event) error {
	errs := make([]error, len(f.publishers))
	var wg sync.WaitGroup
	for i, p := range f.publishers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.publisher.Publish(ctx, event); err != nil {
				errs[i] = fmt.Errorf("%s: %w", p.name, err)
			}
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}
