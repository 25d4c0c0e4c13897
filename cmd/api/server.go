package api

import (
	"github.com/gin-gonic/gin"
	"github.com/giovaniif/bucket-list/infra/logging"
	"github.com/giovaniif/bucket-list/infra/metrics"
	"github.com/giovaniif/bucket-list/infra/requestid"
	"github.com/giovaniif/bucket-list/infra/tracing"
	"github.com/giovaniif/bucket-list/use_cases/bucketlist"
	"github.com/giovaniif/bucket-list/use_cases/consumers"
	"github.com/giovaniif/bucket-list/use_cases/items"
	"github.com/sirupsen/logrus"
)

const idempotencyKeyHeader = "Idempotency-Key"

type Server struct {
	items        *items.Items
	consumers    *consumers.Consumers
	bucketList   *bucketlist.BucketList
	logger       logrus.FieldLogger
	healthChecks []HealthCheck
}

func NewServer(itemsUseCase *items.Items, consumersUseCase *consumers.Consumers, bucketListUseCase *bucketlist.BucketList, logger logrus.FieldLogger, healthChecks ...HealthCheck) *Server {
	return &Server{
		items:        itemsUseCase,
		consumers:    consumersUseCase,
		bucketList:   bucketListUseCase,
		logger:       logger,
		healthChecks: healthChecks,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestid.Middleware(), tracing.Middleware(), metrics.Middleware, logging.Middleware(s.logger))

	r.GET("/health", s.health)
	r.GET("/metrics", metrics.Handler())

	itemRoutes := r.Group("/items")
	itemRoutes.GET("/", s.listItems)
	itemRoutes.POST("/", s.createItem)
	itemRoutes.GET("/:item_id", s.getItem)
	itemRoutes.PUT("/:item_id", s.updateItem)
	itemRoutes.DELETE("/:item_id", s.deleteItem)

	consumerRoutes := r.Group("/consumers")
	consumerRoutes.GET("/", s.listConsumers)
	consumerRoutes.POST("/", s.createConsumer)
	consumerRoutes.GET("/:consumer_id", s.getConsumer)
	consumerRoutes.PUT("/:consumer_id", s.replaceConsumer)
	consumerRoutes.DELETE("/:consumer_id", s.deleteConsumer)
	consumerRoutes.GET("/:consumer_id/bucket_list/", s.listBucketList)
	consumerRoutes.POST("/:consumer_id/bucket_list/", s.addToBucketList)
	consumerRoutes.DELETE("/:consumer_id/bucket_list/:item_id", s.removeFromBucketList)

	return r
}
