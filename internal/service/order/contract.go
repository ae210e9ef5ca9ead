//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"

	"canteen/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, order entities.Order) (*entities.Order, error)
	GetByUserEmail(ctx context.Context, email string) ([]entities.Order, error)
	GetByFilter(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus) (*entities.StatusUpdate, error)
	CountByStatus(ctx context.Context) (map[entities.OrderStatus]int64, error)
}

type UserService interface {
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
}

// Progression планирует автоматические переходы статуса для нового заказа.
type Progression interface {
	Schedule(order entities.Order)
}

// EventPublisher отправляет события смены статуса. Ошибки обрабатывает сам.
type EventPublisher interface {
	Publish(ctx context.Context, event entities.OrderStatusChanged)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
