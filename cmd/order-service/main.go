// cmd/order-service/main.go
package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"orderflow/internal/pkg/bootstrap"
	"orderflow/internal/pkg/config"
	"orderflow/internal/pkg/logger"
	"orderflow/internal/pkg/mq"
	"orderflow/internal/service/order/application"
	"orderflow/internal/service/order/infrastructure"
	"orderflow/internal/service/order/interfaces"
	"orderflow/internal/tracing"
)

const (
	serviceName       = "order-service"
	orderCreatedTopic = "order_created"
)

// main 是订单服务的组装根: 创建并组装所有依赖，然后启动应用。
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

	// 数据库配置缺失在这里立即暴露，不进入服务循环
	dsn, err := cfg.Database.DSN()
	if err != nil {
		logger.Logger().Fatal().Err(err).Msg("invalid database config")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Logger().Fatal().Err(err).Msg("failed to connect to database")
	}

	repo := infrastructure.NewGormOrderRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		logger.Logger().Fatal().Err(err).Msg("failed to ensure orders schema")
	}

	// 通道连接按退避策略重试，耗尽即致命:
	// 没有通道，本服务无法完成它的核心职责
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

	writer := mq.NewKafkaWriter([]string{cfg.Broker.Target()}, orderCreatedTopic)
	defer writer.Close()
	publisher := infrastructure.NewOrderProducerAdapter(writer)

	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})
	prometheus.MustRegister(created)

	service := application.NewOrderApplicationService(repo, publisher, created)
	handler := interfaces.NewOrderHandler(service)

	if err := bootstrap.Run(bootstrap.App{
		ServiceName:      serviceName,
		Port:             cfg.HTTP.OrderPort,
		RegisterHandlers: handler.RegisterRoutes,
	}); err != nil {
		logger.Logger().Fatal().Err(err).Msg("service exited with error")
	}
}
