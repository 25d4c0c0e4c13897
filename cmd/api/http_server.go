package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giovaniif/bucket-list/infra/config"
	"github.com/giovaniif/bucket-list/infra/gateways"
	"github.com/giovaniif/bucket-list/infra/logging"
	"github.com/giovaniif/bucket-list/infra/loki"
	"github.com/giovaniif/bucket-list/infra/metrics"
	"github.com/giovaniif/bucket-list/infra/repositories"
	"github.com/giovaniif/bucket-list/infra/tracing"
	"github.com/giovaniif/bucket-list/protocols"
	"github.com/giovaniif/bucket-list/use_cases/bucketlist"
	"github.com/giovaniif/bucket-list/use_cases/consumers"
	"github.com/giovaniif/bucket-list/use_cases/items"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	serviceName     = "bucket-list"
	shutdownTimeout = 10 * time.Second
)

func StartServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, os.Stdout)
	if err != nil {
		return err
	}
	if hook := loki.NewHook(cfg.LokiURL, serviceName); hook != nil {
		logger.AddHook(hook)
		defer hook.Close()
	}
	if shutdown := tracing.Init(serviceName); shutdown != nil {
		defer shutdown()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	itemRepository := repositories.NewItemRepositoryMemory()
	consumerRepository := repositories.NewConsumerRepositoryMemory()
	if cfg.SeedData {
		SeedItems(itemRepository)
		SeedConsumers(consumerRepository)
	}

	idempotencyGateway, idempotencyChecks, closeIdempotency := newIdempotencyGateway(ctx, cfg, logger)
	defer closeIdempotency()
	eventPublisher, eventChecks, closeEvents := newEventPublisher(ctx, cfg, logger)
	defer closeEvents()

	server := NewServer(
		items.NewItems(itemRepository, idempotencyGateway, eventPublisher, logger),
		consumers.NewConsumers(consumerRepository, idempotencyGateway, eventPublisher, logger),
		bucketlist.NewBucketList(consumerRepository, itemRepository, eventPublisher, logger),
		logger,
		append(idempotencyChecks, eventChecks...)...,
	)

	httpServer := &http.Server{Addr: cfg.Addr(), Handler: server.Router()}
	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.Addr()).Info("bucket list is running")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func newIdempotencyGateway(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (protocols.IdempotencyGateway, []HealthCheck, func()) {
	if cfg.RedisAddr == "" {
		logger.Info("idempotency: in-memory (set REDIS_ADDR for Redis)")
		return gateways.NewIdempotencyGatewayMemory(), nil, func() {}
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	gateway := gateways.NewIdempotencyGatewayRedis(rdb)
	if err := gateway.Ping(ctx); err != nil {
		logger.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis ping failed, using in-memory idempotency")
		_ = rdb.Close()
		return gateways.NewIdempotencyGatewayMemory(), nil, func() {}
	}
	logger.Info("idempotency: redis (TTL 24h)")
	return gateway, []HealthCheck{{Name: "redis", Check: gateway.Ping}}, func() { _ = rdb.Close() }
}

func newEventPublisher(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (protocols.EventPublisher, []HealthCheck, func()) {
	fanout := gateways.NewEventPublisherFanout().Add("metrics", metrics.NewEventCounter())
	var checks []HealthCheck
	var cleanups []func()

	if brokers := cfg.Brokers(); len(brokers) > 0 {
		kafkaPublisher := gateways.NewEventPublisherKafka(brokers, cfg.KafkaTopic)
		fanout.Add("kafka", gateways.NewEventPublisherRetry(kafkaPublisher, gateways.NewSleeper()))
		checks = append(checks, HealthCheck{Name: "kafka", Check: kafkaPublisher.Ping})
		cleanups = append(cleanups, func() { _ = kafkaPublisher.Close() })
		logger.WithField("topic", cfg.KafkaTopic).Info("events: kafka")
	}

	if cfg.MongoURI != "" {
		mongoPublisher, err := connectMongo(ctx, cfg)
		if err != nil {
			logger.WithError(err).Warn("mongo unavailable, audit log disabled")
		} else {
			fanout.Add("mongo", gateways.NewEventPublisherRetry(mongoPublisher, gateways.NewSleeper()))
			checks = append(checks, HealthCheck{Name: "mongo", Check: mongoPublisher.Ping})
			cleanups = append(cleanups, func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				_ = mongoPublisher.Close(closeCtx)
			})
			logger.WithField("collection", cfg.MongoCollection).Info("events: mongo audit log")
		}
	}

	return fanout, checks, func() {
		for _, cleanup := range cleanups {
			cleanup()
		}
	}
}

func connectMongo(ctx context.Context, cfg config.Config) (*gateways.EventPublisherMongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	publisher := gateways.NewEventPublisherMongo(client, cfg.MongoDatabase, cfg.MongoCollection)
	pingCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	if err := publisher.Ping(pingCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return publisher, nil
}
