package entities

import "time"

type NotificationKind string

const NotificationPickup NotificationKind = "pickup"

type Notification struct {
	Kind      NotificationKind
	OrderID   string
	UserEmail string
	Title     string
	Body      string
	CreatedAt time.Time
}
