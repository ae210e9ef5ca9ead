//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_sync_test
package order_sync

import (
	"context"

	"canteen/internal/entities"
)

type OrderFetcher interface {
	GetUserOrders(ctx context.Context, email string) ([]entities.Order, error)
}

type OrderSubmitter interface {
	PlaceOrder(ctx context.Context, email string, items []entities.LineItem) (*entities.Order, error)
}
