package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"canteen/internal/entities"
	"canteen/internal/pkg/metrics"
	"canteen/internal/service/user"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type Order struct {
	repository  Repository
	users       UserService
	progression Progression
	publisher   EventPublisher
	txManager   TxManager
	clock       clockwork.Clock
}

func New(
	repository Repository,
	users UserService,
	progression Progression,
	publisher EventPublisher,
	txManager TxManager,
	clock clockwork.Clock,
) *Order {
	return &Order{
		repository:  repository,
		users:       users,
		progression: progression,
		publisher:   publisher,
		txManager:   txManager,
		clock:       clock,
	}
}

// PlaceOrder замораживает позиции корзины в новый заказ со статусом PLACED
// и передает его в движок автоматических переходов ровно один раз.
// Итоговая сумма всегда считается здесь, по ценам из корзины.
func (s *Order) PlaceOrder(ctx context.Context, placement entities.OrderPlacement) (*entities.Order, error) {
	if err := validateLineItems(placement.Items); err != nil {
		return nil, err
	}

	items := make([]entities.LineItem, len(placement.Items))
	copy(items, placement.Items)

	var placed *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		owner, err := s.users.GetUserByEmail(ctx, placement.UserEmail)
		if err != nil {
			switch {
			case errors.Is(err, user.ErrUserNotFound):
				return ErrUserNotFound
			case errors.Is(err, user.ErrInvalidEmail):
				return ErrInvalidEmail
			}
			return fmt.Errorf("resolve order owner: %w", err)
		}

		// точность timestamptz в postgres - микросекунды
		now := s.clock.Now().UTC().Truncate(time.Microsecond)
		placed, err = s.repository.Create(ctx, entities.Order{
			ID:     uuid.NewString(),
			UserID: owner.ID,
			UserDetails: entities.UserDetails{
				Name:  owner.Name,
				Email: owner.Email,
			},
			Items:       items,
			TotalAmount: entities.OrderTotal(items),
			Status:      entities.OrderPlaced,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	metrics.OrdersPlacedTotal.Inc()

	s.publisher.Publish(ctx, entities.OrderStatusChanged{
		OrderID:   placed.ID,
		UserEmail: placed.UserDetails.Email,
		Status:    placed.Status,
		Source:    entities.SourcePlaced,
		ChangedAt: placed.CreatedAt,
	})

	s.progression.Schedule(*placed)

	return placed, nil
}

// GetUserOrders возвращает заказы по почте из снимка владельца, новые первыми.
func (s *Order) GetUserOrders(ctx context.Context, email string) ([]entities.Order, error) {
	orders, err := s.repository.GetByUserEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("get user orders: %w", err)
	}
	return orders, nil
}

// GetOrders без фильтра возвращает активные заказы для дашборда персонала.
func (s *Order) GetOrders(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	if len(filter.Statuses) == 0 {
		filter.Statuses = entities.ActiveOrderStatuses()
	}

	orders, err := s.repository.GetByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus - ручная смена статуса персоналом. Запись безусловная:
// финальные статусы не защищены, последняя запись побеждает.
func (s *Order) UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatus) (*entities.Order, error) {
	if orderID == "" {
		return nil, ErrOrderNotFound
	}
	if !isManualStatus(status) {
		return nil, ErrInvalidStatus
	}

	update, err := s.repository.UpdateStatus(ctx, orderID, status)
	if err != nil {
		result := metrics.ResultFailed
		if errors.Is(err, ErrOrderNotFound) {
			result = metrics.ResultNotFound
		}
		metrics.OrderStatusTransitionsTotal.WithLabelValues(entities.SourceStaff.String(), status.String(), result).Inc()
		return nil, fmt.Errorf("update order status: %w", err)
	}
	metrics.OrderStatusTransitionsTotal.WithLabelValues(entities.SourceStaff.String(), status.String(), metrics.ResultApplied).Inc()

	s.publisher.Publish(ctx, entities.OrderStatusChanged{
		OrderID:        update.Order.ID,
		UserEmail:      update.Order.UserDetails.Email,
		Status:         update.Order.Status,
		PreviousStatus: update.PreviousStatus,
		Source:         entities.SourceStaff,
		ChangedAt:      update.Order.UpdatedAt,
	})

	return &update.Order, nil
}

func (s *Order) CountByStatus(ctx context.Context) (map[entities.OrderStatus]int64, error) {
	counts, err := s.repository.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}
	return counts, nil
}
