//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_status_gauge_test
package order_status_gauge

import (
	"context"

	"canteen/internal/entities"
	"canteen/pkg/logger"
)

type Service interface {
	CountByStatus(ctx context.Context) (map[entities.OrderStatus]int64, error)
}

type taskLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
