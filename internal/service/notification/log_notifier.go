package notification

import (
	"context"

	"canteen/internal/entities"
	"canteen/pkg/logger"
)

// LogNotifier пишет уведомления в лог. Других каналов доставки пока нет.
type LogNotifier struct {
	log logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, notification entities.Notification) error {
	n.log.Info(notification.Title,
		logger.NewField("kind", string(notification.Kind)),
		logger.NewField("order", notification.OrderID),
		logger.NewField("user_email", notification.UserEmail),
		logger.NewField("body", notification.Body),
	)
	return nil
}
