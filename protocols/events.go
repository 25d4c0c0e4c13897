package protocols

import (
	"context"
	"time"
)

const (
	EventItemCreated           = "item.created"
	EventItemUpdated           = "item.updated"
	EventItemDeleted           = "item.deleted"
	EventConsumerCreated       = "consumer.created"
	EventConsumerReplaced      = "consumer.replaced"
	EventConsumerDeleted       = "consumer.deleted"
	EventBucketListItemAdded   = "bucket_list.item_added"
	EventBucketListItemRemoved = "bucket_list.item_removed"
)

type Event struct {
	Type       string    `json:"type" bson:"type"`
	ItemId     int32     `json:"itemId,omitempty" bson:"item_id,omitempty"`
	ConsumerId int32     `json:"consumerId,omitempty" bson:"consumer_id,omitempty"`
	OccurredAt time.Time `json:"occurredAt" bson:"occurred_at"`
}

func NewEvent(eventType string, itemId int32, consumerId int32) Event {
	return Event{
		Type:       eventType,
		ItemId:     itemId,
		ConsumerId: consumerId,
		OccurredAt: time.Now().UTC(),
	}
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
