//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notification_test
package notification

import (
	"context"

	"canteen/internal/entities"
)

// Notifier доставляет уведомление пользователю.
type Notifier interface {
	Notify(ctx context.Context, n entities.Notification) error
}
