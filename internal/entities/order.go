package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPlaced    OrderStatus = "PLACED"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPlaced, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// IsTerminal сообщает, что из статуса по жизненному циклу переходов нет.
// Сервер это не проверяет при записи.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// DisplayName - подпись статуса для пользователя. Неизвестный статус
// показывается как только что оформленный заказ.
func (s OrderStatus) DisplayName() string {
	switch s {
	case OrderPreparing:
		return "Preparing"
	case OrderReady:
		return "Ready for Pickup"
	case OrderCompleted:
		return "Completed"
	case OrderCancelled:
		return "Cancelled"
	default:
		return "Order Placed"
	}
}

// ActiveOrderStatuses - статусы заказов, которые видит дашборд персонала по умолчанию.
func ActiveOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPlaced, OrderPreparing, OrderReady}
}

// LineItem - позиция заказа, скопированная из корзины в момент оформления.
type LineItem struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
	Image    string
}

func (l LineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func OrderTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// UserDetails - снимок имени и почты владельца на момент заказа.
type UserDetails struct {
	Name  string
	Email string
}

type Order struct {
	ID          string
	UserID      string
	UserDetails UserDetails
	Items       []LineItem
	TotalAmount decimal.Decimal
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderPlacement struct {
	UserEmail string
	Items     []LineItem
}

type OrderFilter struct {
	Statuses []OrderStatus
}

// StatusUpdate - результат записи статуса вместе со статусом, который был до нее.
type StatusUpdate struct {
	Order          Order
	PreviousStatus OrderStatus
}
