package protocols

import (
	"context"
	"errors"
)

var ErrIdempotencyKeyInProgress = errors.New("idempotency key is already being processed")

type IdempotencyKeyResult struct {
	ResourceId int32 `json:"resourceId"`
}

type IdempotencyGateway interface {
	ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) (*IdempotencyKeyResult, error)
	MarkFailure(ctx context.Context, idempotencyKey string) error
	MarkSuccess(ctx context.Context, idempotencyKey string, result IdempotencyKeyResult) error
}
