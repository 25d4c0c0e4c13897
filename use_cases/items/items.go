package items

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/giovaniif/bucket-list/domain/item"
	protocols "github.com/giovaniif/bucket-list/protocols"
	"github.com/giovaniif/bucket-list/use_cases/idempotency"
)

const idempotencyScope = "items:"

func NewItems(itemRepository item.Repository, idempotencyGateway protocols.IdempotencyGateway, eventPublisher protocols.EventPublisher, logger logrus.FieldLogger) *Items {
	return &Items{
		itemRepository:     itemRepository,
		idempotencyGateway: idempotencyGateway,
		eventPublisher:     eventPublisher,
		logger:             logger,
	}
}

func (i *Items) List() []item.Item {
	return i.itemRepository.List()
}

func (i *Items) Get(itemId int32) (*item.Item, error) {
	return i.itemRepository.GetItem(itemId)
}

func (i *Items) Create(ctx context.Context, input CreateInput) (int32, error) {
	key := ""
	if input.IdempotencyKey != "" {
		key = idempotencyScope + input.IdempotencyKey
	}
	created := false
	itemId, err := idempotency.Create(ctx, i.idempotencyGateway, key, i.logger, func() (int32, error) {
		created = true
		return i.itemRepository.Create(input.Name, input.Price, input.Description), nil
	})
	if err != nil {
		return 0, err
	}
	if created {
		i.publish(ctx, protocols.NewEvent(protocols.EventItemCreated, itemId, 0))
	}
	return itemId, nil
}

func (i *Items) Update(ctx context.Context, itemId int32, patch item.Patch) (*item.Item, error) {
	updated, err := i.itemRepository.Update(itemId, patch)
	if err != nil {
		return nil, err
	}
	i.publish(ctx, protocols.NewEvent(protocols.EventItemUpdated, itemId, 0))
	return updated, nil
}

// Delete removes the item only. Bucket lists that reference it keep the dangling id.
func (i *Items) Delete(ctx context.Context, itemId int32) error {
	if err := i.itemRepository.Delete(itemId); err != nil {
		return err
	}
	i.publish(ctx, protocols.NewEvent(protocols.EventItemDeleted, itemId, 0))
	return nil
}

func (i *Items) publish(ctx context.Context, event protocols.Event) {
	if i.eventPublisher == nil {
		return
	}
	if err := i.eventPublisher.Publish(ctx, event); err != nil {
		i.logger.WithError(err).WithField("event", event.Type).Warn("failed to publish item event")
	}
}

type CreateInput struct {
	Name           string
	Price          float64
	Description    string
	IdempotencyKey string
}

type Items struct {
	itemRepository     item.Repository
	idempotencyGateway protocols.IdempotencyGateway
	eventPublisher     protocols.EventPublisher
	logger             logrus.FieldLogger
}
