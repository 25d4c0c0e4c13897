package consumers

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/giovaniif/bucket-list/domain/consumer"
	protocols "github.com/giovaniif/bucket-list/protocols"
	"github.com/giovaniif/bucket-list/use_cases/idempotency"
)

const idempotencyScope = "consumers:"

func NewConsumers(consumerRepository consumer.Repository, idempotencyGateway protocols.IdempotencyGateway, eventPublisher protocols.EventPublisher, logger logrus.FieldLogger) *Consumers {
	return &Consumers{
		consumerRepository: consumerRepository,
		idempotencyGateway: idempotencyGateway,
		eventPublisher:     eventPublisher,
		logger:             logger,
	}
}

func (c *Consumers) List() []consumer.Consumer {
	return c.consumerRepository.List()
}

func (c *Consumers) Get(consumerId int32) (*consumer.Consumer, error) {
	return c.consumerRepository.GetConsumer(consumerId)
}

func (c *Consumers) Create(ctx context.Context, input CreateInput) (int32, error) {
	key := ""
	if input.IdempotencyKey != "" {
		key = idempotencyScope + input.IdempotencyKey
	}
	created := false
	consumerId, err := idempotency.Create(ctx, c.idempotencyGateway, key, c.logger, func() (int32, error) {
		created = true
		return c.consumerRepository.Create(input.Name, input.Email), nil
	})
	if err != nil {
		return 0, err
	}
	if created {
		c.publish(ctx, protocols.NewEvent(protocols.EventConsumerCreated, 0, consumerId))
	}
	return consumerId, nil
}

// Replace swaps name, email and bucket list wholesale. Bucket list ids are not checked against the catalog.
func (c *Consumers) Replace(ctx context.Context, consumerId int32, input ReplaceInput) (*consumer.Consumer, error) {
	bucketList := input.BucketList
	if bucketList == nil {
		bucketList = []int32{}
	}
	replaced, err := c.consumerRepository.Replace(consumerId, consumer.Consumer{
		Name:       input.Name,
		Email:      input.Email,
		BucketList: bucketList,
	})
	if err != nil {
		return nil, err
	}
	c.publish(ctx, protocols.NewEvent(protocols.EventConsumerReplaced, 0, consumerId))
	return replaced, nil
}

func (c *Consumers) Delete(ctx context.Context, consumerId int32) error {
	if err := c.consumerRepository.Delete(consumerId); err != nil {
		return err
	}
	c.publish(ctx, protocols.NewEvent(protocols.EventConsumerDeleted, 0, consumerId))
	return nil
}

func (c *Consumers) publish(ctx context.Context, event protocols.Event) {
	if c.eventPublisher == nil {
		return
	}
	if err := c.eventPublisher.Publish(ctx, event); err != nil {
		c.logger.WithError(err).WithField("event", event.Type).Warn("failed to publish consumer event")
	}
}

type CreateInput struct {
	Name           string
	Email          string
	IdempotencyKey string
}

type ReplaceInput struct {
	Name       string
	Email      string
	BucketList []int32
}

type Consumers struct {
	consumerRepository consumer.Repository
	idempotencyGateway protocols.IdempotencyGateway
	eventPublisher     protocols.EventPublisher
	logger             logrus.FieldLogger
}
