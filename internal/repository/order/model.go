package order

import "time"

type OrderDB struct {
	ID          string
	UserID      string
	UserName    string
	UserEmail   string
	Items       []byte // jsonb
	TotalAmount string // numeric(12,2) читаем как text, без потери точности
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LineItemDB - элемент массива orders.items.
type LineItemDB struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image,omitempty"`
}
