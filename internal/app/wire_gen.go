//go:build !wireinject
// +build !wireinject

// Инжекторы из wire.go, разложенные вручную в том порядке провайдеров,
// который выдает wire. `go generate ./internal/app` перезапишет файл
// сгенерированной версией.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire

package app

import (
	"context"

	"canteen/internal/pkg/config"
	"canteen/internal/pkg/validation"
	"canteen/pkg/logger"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
)

// Injectors from wire.go:

// InitializeApplication для HTTP сервиса (cmd/service). cleanup
// останавливает таймеры движка и закрывает продюсер событий.
func InitializeApplication(ctx context.Context, log logger.Logger, pool *pgxpool.Pool, getter *pgxv5.CtxGetter, clock clockwork.Clock, cfg *config.Config) (*Application, func(), error) {
	querierQuerier := provideQuerier(pool, getter)
	repository := provideUserRepository(querierQuerier)
	manager := provideTxManager(pool)
	user := provideServiceUser(repository, manager)
	orderRepository := provideOrderRepository(querierQuerier)
	eventPublisher, cleanup, err := provideEventPublisher(ctx, log, cfg)
	if err != nil {
		return nil, nil, err
	}
	engine, cleanup2 := provideProgressionEngine(log, orderRepository, eventPublisher, clock, cfg)
	order := provideServiceOrder(orderRepository, user, engine, eventPublisher, manager, clock)
	validator := validation.New()
	orderStatusGauge := provideOrderStatusGaugeTask(log, order, cfg)
	v := provideTaskList(orderStatusGauge)
	worker, err := provideBackgroundWorkers(ctx, log, v)
	if err != nil {
		cleanup2()
		cleanup()
		return nil, nil, err
	}
	application := &Application{
		ServiceUser:       user,
		ServiceOrder:      order,
		Validator:         validator,
		Progression:       engine,
		BackgroundWorkers: worker,
	}
	return application, func() {
		cleanup2()
		cleanup()
	}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-order-status-changed)
func InitializeKafkaWorkerApp(ctx context.Context, log logger.Logger, cfg *config.Config) (*KafkaWorkerApp, error) {
	logNotifier := provideNotifier(log)
	service := provideNotificationService(log, logNotifier)
	kafkaWorkerApp := &KafkaWorkerApp{
		NotificationService: service,
	}
	return kafkaWorkerApp, nil
}
