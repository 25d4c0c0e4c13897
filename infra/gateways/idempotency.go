package gateways

import (
	"context"
	"sync"

	protocols "github.com/giovaniif/bucket-list/protocols"
)

// pendingCreate tracks one keyed create request. createdId is set once the
// resource exists; until then a repeated key is reported as in progress.
type pendingCreate struct {
	createdId *int32
}

// IdempotencyGatewayMemory remembers keyed creates for the life of the process.
type IdempotencyGatewayMemory struct {
	mutex   sync.Mutex
	creates map[string]*pendingCreate
}

func NewIdempotencyGatewayMemory() *IdempotencyGatewayMemory {
	return &IdempotencyGatewayMemory{
		creates: make(map[string]*pendingCreate),
	}
}

func (g *IdempotencyGatewayMemory) ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) (*protocols.IdempotencyKeyResult, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	create, seen := g.creates[idempotencyKey]
	switch {
	case !seen:
		g.creates[idempotencyKey] = &pendingCreate{}
		return nil, nil
	case create.createdId == nil:
		return nil, protocols.ErrIdempotencyKeyInProgress
	default:
		return &protocols.IdempotencyKeyResult{ResourceId: *create.createdId}, nil
	}
}

// MarkFailure forgets the key so the create can be attempted again.
func (g *IdempotencyGatewayMemory) MarkFailure(ctx context.Context, idempotencyKey string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	delete(g.creates, idempotencyKey)
	return nil
}

// MarkSuccess records the created id. Keys that were never reserved are ignored.
func (g *IdempotencyGatewayMemory) MarkSuccess(ctx context.Context, idempotencyKey string, result protocols.IdempotencyKeyResult) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if create, seen := g.creates[idempotencyKey]; seen {
		createdId := result.ResourceId
		create.createdId = &createdId
	}
	return nil
}
