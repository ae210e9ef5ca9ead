//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=progression_test
package progression

import (
	"context"

	"canteen/internal/entities"
)

type Repository interface {
	// UpdateStatus перезаписывает статус без условий.
	UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus) (*entities.StatusUpdate, error)
	// UpdateStatusFrom пишет статус, только если текущий входит в from.
	UpdateStatusFrom(ctx context.Context, orderID string, from []entities.OrderStatus, to entities.OrderStatus) (*entities.StatusUpdate, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entities.OrderStatusChanged)
}
