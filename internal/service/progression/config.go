package progression

import (
	"time"

	"canteen/internal/entities"
)

const (
	DefaultPreparingAfter = 5 * time.Second
	DefaultReadyAfter     = 10 * time.Second
	DefaultCompletedAfter = 15 * time.Second
	DefaultUpdateTimeout  = 3 * time.Second
)

type Config struct {
	PreparingAfter time.Duration
	ReadyAfter     time.Duration
	CompletedAfter time.Duration
	UpdateTimeout  time.Duration

	// Guarded включает условные переходы: шаг не перезаписывает статус,
	// если заказ уже ушел дальше по жизненному циклу или был отменен.
	Guarded bool
}

// Step - один автоматический переход. After отсчитывается от создания заказа.
type Step struct {
	After  time.Duration
	Status entities.OrderStatus
	// From используется только в guarded режиме
	From []entities.OrderStatus
}

func (c Config) steps() []Step {
	return []Step{
		{
			After:  orDefault(c.PreparingAfter, DefaultPreparingAfter),
			Status: entities.OrderPreparing,
			From:   []entities.OrderStatus{entities.OrderPlaced},
		},
		{
			After:  orDefault(c.ReadyAfter, DefaultReadyAfter),
			Status: entities.OrderReady,
			From:   []entities.OrderStatus{entities.OrderPlaced, entities.OrderPreparing},
		},
		{
			After:  orDefault(c.CompletedAfter, DefaultCompletedAfter),
			Status: entities.OrderCompleted,
			From:   []entities.OrderStatus{entities.OrderPlaced, entities.OrderPreparing, entities.OrderReady},
		},
	}
}

func orDefault(value, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return value
}
