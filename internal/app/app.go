package app

import (
	"context"
	"fmt"

	"canteen/internal/entities"
	"canteen/internal/gateway/kafka/order_events"
	"canteen/internal/handlers/kafka-consumer/order_status_changed"
	"canteen/internal/handlers/rest/order_post"
	"canteen/internal/handlers/rest/order_status_patch"
	"canteen/internal/handlers/rest/orders_by_email_get"
	"canteen/internal/handlers/rest/orders_get"
	"canteen/internal/handlers/rest/user_login_post"
	"canteen/internal/handlers/rest/user_signup_post"
	"canteen/internal/handlers/tasks/order_status_gauge"
	"canteen/internal/pkg/config"
	"canteen/internal/pkg/kafka"
	"canteen/internal/pkg/metrics"
	orderRepo "canteen/internal/repository/order"
	userRepo "canteen/internal/repository/user"
	"canteen/internal/service/notification"
	orderService "canteen/internal/service/order"
	"canteen/internal/service/progression"
	userService "canteen/internal/service/user"
	"canteen/pkg/background"
	"canteen/pkg/logger"
	"canteen/pkg/querier"
	"canteen/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
)

type Application struct {
	ServiceUser       ServiceUser
	ServiceOrder      ServiceOrder
	Validator         RequestValidator
	Progression       *progression.Engine
	BackgroundWorkers *background.Worker
}

type ServiceUser interface {
	user_signup_post.Service
	user_login_post.Service
}

type ServiceOrder interface {
	order_post.Service
	orders_by_email_get.Service
	orders_get.Service
	order_status_patch.Service
}

type RequestValidator interface {
	user_signup_post.Validator
	user_login_post.Validator
	order_post.Validator
	order_status_patch.Validator
}

// EventPublisher - Kafka продюсер или заглушка, если брокеры не заданы.
type EventPublisher interface {
	Publish(ctx context.Context, event entities.OrderStatusChanged)
	Close() error
}

type KafkaWorkerApp struct {
	NotificationService order_status_changed.Service
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideUserRepository(querier *querier.Querier) *userRepo.Repository {
	return userRepo.New(querier)
}

func provideEventPublisher(ctx context.Context, log logger.Logger, cfg *config.Config) (EventPublisher, func(), error) {
	if len(cfg.Kafka.BrokerList()) == 0 {
		log.Warn("KAFKA_BROKERS is empty, order status events are not published")
		return order_events.Noop{}, func() {}, nil
	}

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}

	publisher := order_events.New(log, producer, cfg.Kafka.Topic)
	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.With(logger.NewField("error", err)).Error("failed to close kafka producer")
		}
	}
	return publisher, cleanup, nil
}

func provideProgressionEngine(
	log logger.Logger,
	repository progression.Repository,
	publisher progression.EventPublisher,
	clock clockwork.Clock,
	cfg *config.Config,
) (*progression.Engine, func()) {
	engine := progression.New(log, repository, publisher, clock, progression.Config{
		PreparingAfter: cfg.Progression.PreparingAfter,
		ReadyAfter:     cfg.Progression.ReadyAfter,
		CompletedAfter: cfg.Progression.CompletedAfter,
		UpdateTimeout:  cfg.Progression.UpdateTimeout,
		Guarded:        cfg.Progression.Guarded,
	})
	return engine, engine.Close
}

func provideServiceUser(
	repository userService.Repository,
	txManager userService.TxManager,
) *userService.User {
	return userService.New(repository, txManager)
}

func provideServiceOrder(
	repository orderService.Repository,
	users orderService.UserService,
	progression orderService.Progression,
	publisher orderService.EventPublisher,
	txManager orderService.TxManager,
	clock clockwork.Clock,
) *orderService.Order {
	return orderService.New(repository, users, progression, publisher, txManager, clock)
}

func provideOrderStatusGaugeTask(
	log logger.Logger,
	service order_status_gauge.Service,
	cfg *config.Config,
) *order_status_gauge.OrderStatusGauge {
	return order_status_gauge.NewOrderStatusGauge(log, service, metrics.OrdersByStatus, cfg.Tasks.OrderStatusGaugeInterval)
}

func provideTaskList(
	orderStatusGaugeTask *order_status_gauge.OrderStatusGauge,
) []background.Task {
	return []background.Task{
		orderStatusGaugeTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}

func provideNotifier(log logger.Logger) *notification.LogNotifier {
	return notification.NewLogNotifier(log)
}

func provideNotificationService(log logger.Logger, notifier notification.Notifier) *notification.Service {
	return notification.New(log, notifier)
}
