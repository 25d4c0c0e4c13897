package gateways

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	protocols "github.com/giovaniif/bucket-list/protocols"
)

// EventPublisherMongo appends events to an audit collection. Items and consumers
// themselves are never stored there.
type EventPublisherMongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewEventPublisherMongo(client *mongo.Client, database string, collection string) *EventPublisherMongo {
	return &EventPublisherMongo{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

func (p *EventPublisherMongo) Publish(ctx context.Context, event protocols.Event) error {
	if _, err := p.collection.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("mongo insert: %w", err)
	}
	return nil
}

func (p *EventPublisherMongo) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

func (p *EventPublisherMongo) Close(ctx context.Context) error {
	return p.client.Disconnect(ctx)
}
