package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/giovaniif/bucket-list/domain/consumer"
	"github.com/giovaniif/bucket-list/domain/item"
	"github.com/giovaniif/bucket-list/protocols"
)

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, consumer.ErrNotInBucketList):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Item not found in consumer's bucket list"})
	case errors.Is(err, item.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Item not found"})
	case errors.Is(err, consumer.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Consumer not found"})
	case errors.Is(err, protocols.ErrIdempotencyKeyInProgress):
		c.JSON(http.StatusConflict, gin.H{"detail": "Request with this Idempotency-Key is already being processed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

// respondBindError reports malformed path ids and missing or unparsable parameters.
func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
}
