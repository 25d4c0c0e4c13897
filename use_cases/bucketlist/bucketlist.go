package bucketlist

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/giovaniif/bucket-list/domain/consumer"
	"github.com/giovaniif/bucket-list/domain/item"
	protocols "github.com/giovaniif/bucket-list/protocols"
)

func NewBucketList(consumerRepository consumer.Repository, itemRepository item.Repository, eventPublisher protocols.EventPublisher, logger logrus.FieldLogger) *BucketList {
	return &BucketList{
		consumerRepository: consumerRepository,
		itemRepository:     itemRepository,
		eventPublisher:     eventPublisher,
		logger:             logger,
	}
}

// Add appends the item to the consumer's bucket list. The consumer is checked
// before the item, and the same item may be added more than once.
func (b *BucketList) Add(ctx context.Context, input Input) (string, error) {
	if _, err := b.consumerRepository.GetConsumer(input.ConsumerId); err != nil {
		return "", err
	}
	listedItem, err := b.itemRepository.GetItem(input.ItemId)
	if err != nil {
		return "", err
	}
	updated, err := b.consumerRepository.AppendToBucketList(input.ConsumerId, input.ItemId)
	if err != nil {
		return "", err
	}
	b.publish(ctx, protocols.NewEvent(protocols.EventBucketListItemAdded, input.ItemId, input.ConsumerId))
	return fmt.Sprintf("Added item %s to consumer %s's bucket list", listedItem.Name, updated.Name), nil
}

// Remove drops every occurrence of the item from the consumer's bucket list.
func (b *BucketList) Remove(ctx context.Context, input Input) (string, error) {
	updated, err := b.consumerRepository.RemoveFromBucketList(input.ConsumerId, input.ItemId)
	if err != nil {
		return "", err
	}
	b.publish(ctx, protocols.NewEvent(protocols.EventBucketListItemRemoved, input.ItemId, input.ConsumerId))
	return fmt.Sprintf("Removed item %d from consumer %s's bucket list", input.ItemId, updated.Name), nil
}

// List resolves each reference against the catalog. References to deleted
// items are kept with a nil Item.
func (b *BucketList) List(consumerId int32) ([]Entry, error) {
	owner, err := b.consumerRepository.GetConsumer(consumerId)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(owner.BucketList))
	for _, itemId := range owner.BucketList {
		entry := Entry{ItemId: itemId}
		if listedItem, err := b.itemRepository.GetItem(itemId); err == nil {
			entry.Item = listedItem
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (b *BucketList) publish(ctx context.Context, event protocols.Event) {
	if b.eventPublisher == nil {
		return
	}
	if err := b.eventPublisher.Publish(ctx, event); err != nil {
		b.logger.WithError(err).WithField("event", event.Type).Warn("failed to publish bucket list event")
	}
}

type Input struct {
	ConsumerId int32
	ItemId     int32
}

type Entry struct {
	ItemId int32      `json:"item_id"`
	Item   *item.Item `json:"item"`
}

type BucketList struct {
	consumerRepository consumer.Repository
	itemRepository     item.Repository
	eventPublisher     protocols.EventPublisher
	logger             logrus.FieldLogger
}
