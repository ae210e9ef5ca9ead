//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"canteen/internal/handlers/kafka-consumer/order_status_changed"
	"canteen/internal/handlers/tasks/order_status_gauge"
	"canteen/internal/pkg/config"
	"canteen/internal/pkg/validation"
	orderRepo "canteen/internal/repository/order"
	userRepo "canteen/internal/repository/user"
	"canteen/internal/service/notification"
	orderService "canteen/internal/service/order"
	"canteen/internal/service/progression"
	userService "canteen/internal/service/user"
	"canteen/pkg/logger"
	"canteen/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
)

// InitializeApplication для HTTP сервиса (cmd/service). cleanup
// останавливает таймеры движка и закрывает продюсер событий.
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	clock clockwork.Clock,
	cfg *config.Config,
) (*Application, func(), error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideOrderRepository,
		provideUserRepository,

		provideEventPublisher,
		provideProgressionEngine,
		provideServiceUser,
		provideServiceOrder,
		validation.New,

		provideOrderStatusGaugeTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceUser), new(*userService.User)),
		wire.Bind(new(ServiceOrder), new(*orderService.Order)),

		wire.Bind(new(userService.Repository), new(*userRepo.Repository)),
		wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(progression.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(orderService.UserService), new(*userService.User)),
		wire.Bind(new(orderService.Progression), new(*progression.Engine)),
		wire.Bind(new(orderService.EventPublisher), new(EventPublisher)),
		wire.Bind(new(progression.EventPublisher), new(EventPublisher)),

		wire.Bind(new(userService.TxManager), new(*tx.Manager)),
		wire.Bind(new(orderService.TxManager), new(*tx.Manager)),

		wire.Bind(new(order_status_gauge.Service), new(*orderService.Order)),
		wire.Bind(new(RequestValidator), new(*validation.Validator)),
	)
	return nil, nil, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-order-status-changed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideNotifier,
		provideNotificationService,

		wire.Bind(new(notification.Notifier), new(*notification.LogNotifier)),
		wire.Bind(new(order_status_changed.Service), new(*notification.Service)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}
