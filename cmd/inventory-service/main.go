// cmd/inventory-service/main.go
package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"orderflow/internal/pkg/bootstrap"
	"orderflow/internal/pkg/config"
	"orderflow/internal/pkg/logger"
	"orderflow/internal/pkg/mq"
	"orderflow/internal/pkg/redis"
	"orderflow/internal/service/inventory/application"
	"orderflow/internal/service/inventory/infrastructure"
	"orderflow/internal/service/inventory/interfaces"
	"orderflow/internal/tracing"
)

const (
	serviceName       = "inventory-service"
	orderCreatedTopic = "order_created"
	consumerGroupID   = "inventory-service"
)

// main 是库存服务的组装根。HTTP 接口与消费循环在同一进程内并发运行。
func main() {
	logger.Init(serviceName)

	cfg, err := config.Load()
	if err != nil {
		logger.Logger().Fatal().Err(err).Msg("failed to load config")
	}

	tp, err := tracing.InitTracerProvider(serviceName, cfg.Jaeger.Endpoint)
	if err != nil {
		logger.Logger().Fatal().Err(err).Msg("failed to initialize tracer provider")
	}
	defer tp.Shutdown(context.Background())

	redisClient, err := redis.NewClient(cfg.Redis.Addrs)
	if err != nil {
		logger.Logger().Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	store, err := infrastructure.NewStockRedisAdapter(redisClient)
	if err != nil {
		logger.Logger().Fatal().Err(err).Msg("failed to initialize stock store")
	}
	service := application.NewInventoryApplicationService(store, cfg.Inventory.DefaultStock)
	handler := interfaces.NewInventoryHandler(service)

	// 通道连接按退避策略重试，耗尽即致命
	connector := mq.NewConnector(cfg.Broker.Target(), mq.ConnectPolicy{
		MaxAttempts: cfg.Broker.MaxRetries,
		BackoffBase: cfg.Broker.RetryBase(),
	})
	conn, err := connector.Connect(context.Background())
	if err != nil {
		logger.Logger().Fatal().Err(err).Msg("could not connect to broker")
	}
	if err := mq.EnsureTopic(conn, orderCreatedTopic); err != nil {
		logger.Logger().Fatal().Err(err).Msg("could not ensure topic")
	}
	conn.Close()

	processed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_processed_total",
		Help: "Orders processed from the order_created topic",
	})
	prometheus.MustRegister(processed)

	reader := mq.NewKafkaReader([]string{cfg.Broker.Target()}, orderCreatedTopic, consumerGroupID)
	consumer := infrastructure.NewOrderConsumerAdapter(reader, processed, cfg.Broker.AckOnReceipt)

	if err := bootstrap.Run(bootstrap.App{
		ServiceName:      serviceName,
		Port:             cfg.HTTP.InventoryPort,
		RegisterHandlers: handler.RegisterRoutes,
		BackgroundTasks:  []func(ctx context.Context) error{consumer.Run},
	}); err != nil {
		logger.Logger().Fatal().Err(err).Msg("service exited with error")
	}
}
