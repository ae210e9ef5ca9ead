package entities

import "time"

type StatusChangeSource string

const (
	SourcePlaced StatusChangeSource = "placed"
	SourceTimer  StatusChangeSource = "timer"
	SourceStaff  StatusChangeSource = "staff"
)

func (s StatusChangeSource) String() string {
	return string(s)
}

type OrderStatusChanged struct {
	OrderID        string
	UserEmail      string
	Status         OrderStatus
	PreviousStatus OrderStatus
	Source         StatusChangeSource
	ChangedAt      time.Time
}

// OverwroteTerminal сообщает, что таймер перезаписал уже финальный статус.
func (e OrderStatusChanged) OverwroteTerminal() bool {
	return e.Source == SourceTimer && e.PreviousStatus.IsTerminal()
}
