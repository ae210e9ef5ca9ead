package notification

import (
	"context"
	"fmt"

	"canteen/internal/entities"
	"canteen/internal/pkg/metrics"
	"canteen/pkg/logger"
)

type Outcome string

const (
	OutcomeNotified Outcome = "notified"
	OutcomeIgnored  Outcome = "ignored"
)

type Service struct {
	log      logger.Logger
	notifier Notifier
}

func New(log logger.Logger, notifier Notifier) *Service {
	return &Service{
		log:      log,
		notifier: notifier,
	}
}

// ProcessOrderStatusChange разбирает событие смены статуса. READY превращается
// в уведомление о выдаче, остальные статусы только фиксируются.
func (s *Service) ProcessOrderStatusChange(ctx context.Context, event entities.OrderStatusChanged) (Outcome, error) {
	if err := validateEvent(event); err != nil {
		return OutcomeIgnored, err
	}

	if err := ctx.Err(); err != nil {
		return OutcomeIgnored, err
	}

	if event.OverwroteTerminal() {
		metrics.OrderStatusTerminalOverwritesTotal.
			WithLabelValues(event.PreviousStatus.String(), event.Status.String()).
			Inc()
		s.log.Warn("terminal order status overwritten by timer",
			logger.NewField("order", event.OrderID),
			logger.NewField("previous_status", event.PreviousStatus.String()),
			logger.NewField("status", event.Status.String()),
		)
	}

	if event.Status != entities.OrderReady {
		return OutcomeIgnored, nil
	}

	n := entities.Notification{
		Kind:      entities.NotificationPickup,
		OrderID:   event.OrderID,
		UserEmail: event.UserEmail,
		Title:     event.Status.DisplayName(),
		Body:      fmt.Sprintf("Your order %s is ready for pickup at the counter", shortID(event.OrderID)),
		CreatedAt: event.ChangedAt,
	}

	if err := s.notifier.Notify(ctx, n); err != nil {
		metrics.NotificationsTotal.WithLabelValues(string(n.Kind), "failed").Inc()
		return OutcomeIgnored, fmt.Errorf("%w: %w", ErrDeliverFailed, err)
	}

	metrics.NotificationsTotal.WithLabelValues(string(n.Kind), "sent").Inc()
	return OutcomeNotified, nil
}

func validateEvent(event entities.OrderStatusChanged) error {
	if event.OrderID == "" {
		return fmt.Errorf("%w: empty order id", ErrInvalidEvent)
	}
	if !event.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidEvent, event.Status)
	}
	switch event.Source {
	case entities.SourcePlaced, entities.SourceTimer, entities.SourceStaff:
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidEvent, event.Source)
	}
	return nil
}

// shortID - первые 8 символов id, так заказ называют на кассе.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
