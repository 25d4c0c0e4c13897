package idempotency

import (
	"context"

	"github.com/sirupsen/logrus"

	protocols "github.com/giovaniif/bucket-list/protocols"
)

// Create runs create at most once per idempotency key and replays the stored
// resource id for repeated keys. An empty key or a nil gateway always runs create.
// The key is settled even when ctx is cancelled after create ran, otherwise it
// would stay in progress until it expires.
func Create(ctx context.Context, gateway protocols.IdempotencyGateway, key string, logger logrus.FieldLogger, create func() (int32, error)) (int32, error) {
	if key == "" || gateway == nil {
		return create()
	}

	result, err := gateway.ReserveIdempotencyKey(ctx, key)
	if err != nil {
		return 0, err
	}
	if result != nil {
		return result.ResourceId, nil
	}

	var resourceId int32
	success := false
	defer func() {
		markCtx := context.WithoutCancel(ctx)
		var markErr error
		if success {
			markErr = gateway.MarkSuccess(markCtx, key, protocols.IdempotencyKeyResult{ResourceId: resourceId})
		} else {
			markErr = gateway.MarkFailure(markCtx, key)
		}
		if markErr != nil {
			logger.WithError(markErr).WithFields(logrus.Fields{"key": key, "success": success}).Error("failed to settle idempotency key")
		}
	}()

	resourceId, err = create()
	if err != nil {
		return 0, err
	}

	success = true
	return resourceId, nil
}
