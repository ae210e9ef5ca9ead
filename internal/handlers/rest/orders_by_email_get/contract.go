//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=orders_by_email_get_test
package orders_by_email_get

import (
	"context"

	"canteen/internal/entities"
	"canteen/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	GetUserOrders(ctx context.Context, email string) ([]entities.Order, error)
}
