package dto

import (
	"canteen/internal/entities"

	"github.com/shopspring/decimal"
)

func FromUser(u *entities.User) User {
	return User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}

func FromOrder(o *entities.Order) Order {
	return Order{
		ID:   o.ID,
		User: o.UserID,
		UserDetails: UserDetails{
			Name:  o.UserDetails.Name,
			Email: o.UserDetails.Email,
		},
		Items:       FromLineItems(o.Items),
		TotalAmount: o.TotalAmount.InexactFloat64(),
		Status:      o.Status.String(),
		CreatedAt:   o.CreatedAt,
	}
}

func FromOrders(orders []entities.Order) []Order {
	result := make([]Order, len(orders))
	for i := range orders {
		result[i] = FromOrder(&orders[i])
	}
	return result
}

func FromLineItems(items []entities.LineItem) []OrderItem {
	result := make([]OrderItem, len(items))
	for i, item := range items {
		result[i] = OrderItem{
			Name:     item.Name,
			Price:    item.Price.InexactFloat64(),
			Quantity: item.Quantity,
			Image:    item.Image,
		}
	}
	return result
}

func ToLineItems(items []OrderItem) []entities.LineItem {
	result := make([]entities.LineItem, len(items))
	for i, item := range items {
		result[i] = entities.LineItem{
			Name:     item.Name,
			Price:    decimal.NewFromFloat(item.Price),
			Quantity: item.Quantity,
			Image:    item.Image,
		}
	}
	return result
}

func ToUser(u *User) *entities.User {
	return &entities.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      entities.UserRole(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func ToOrder(o *Order) entities.Order {
	return entities.Order{
		ID:     o.ID,
		UserID: o.User,
		UserDetails: entities.UserDetails{
			Name:  o.UserDetails.Name,
			Email: o.UserDetails.Email,
		},
		Items:       ToLineItems(o.Items),
		TotalAmount: decimal.NewFromFloat(o.TotalAmount),
		Status:      entities.OrderStatus(o.Status),
		CreatedAt:   o.CreatedAt,
	}
}

func ToOrders(orders []Order) []entities.Order {
	result := make([]entities.Order, len(orders))
	for i := range orders {
		result[i] = ToOrder(&orders[i])
	}
	return result
}

func FromOrderStatusChanged(e entities.OrderStatusChanged) OrderStatusChangedEvent {
	return OrderStatusChangedEvent{
		OrderID:        e.OrderID,
		UserEmail:      e.UserEmail,
		Status:         e.Status.String(),
		PreviousStatus: e.PreviousStatus.String(),
		Source:         e.Source.String(),
		ChangedAt:      e.ChangedAt,
	}
}

func ToOrderStatusChanged(e *OrderStatusChangedEvent) entities.OrderStatusChanged {
	return entities.OrderStatusChanged{
		OrderID:        e.OrderID,
		UserEmail:      e.UserEmail,
		Status:         entities.OrderStatus(e.Status),
		PreviousStatus: entities.OrderStatus(e.PreviousStatus),
		Source:         entities.StatusChangeSource(e.Source),
		ChangedAt:      e.ChangedAt,
	}
}
