// Package dto описывает JSON-контракт API. Используется и хендлерами, и клиентским шлюзом.
package dto

import "time"

type MessageResponse struct {
	Message string `json:"message"`
}

type PingResponse struct {
	Message *string `json:"message,omitempty"`
}

type UserSignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserLoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

type OrderItem struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"min=1"`
	Image    string  `json:"image"`
}

type OrderCreateRequest struct {
	UserEmail   string      `json:"userEmail" validate:"required,email"`
	Items       []OrderItem `json:"items" validate:"required,min=1,dive"`
	TotalAmount *float64    `json:"totalAmount,omitempty" validate:"omitempty,gte=0"`
}

type UserDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Order struct {
	ID          string      `json:"id"`
	User        string      `json:"user"`
	UserDetails UserDetails `json:"userDetails"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type OrderCreateResponse struct {
	Message  string `json:"message"`
	NewOrder Order  `json:"newOrder"`
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderStatusUpdateResponse struct {
	Message string `json:"message"`
	Order   Order  `json:"order"`
}

// OrderStatusChangedEvent - сообщение в топике статусов заказов, ключ - id заказа.
type OrderStatusChangedEvent struct {
	OrderID        string    `json:"order_id"`
	UserEmail      string    `json:"user_email"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Source         string    `json:"source"`
	ChangedAt      time.Time `json:"changed_at"`
}
