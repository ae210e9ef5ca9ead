package order_sync

import "canteen/internal/entities"

// DisplayStatus - подпись статуса в трекере. Тексты живут в
// entities.OrderStatus.DisplayName, здесь только тип для снимка.
type DisplayStatus string

var (
	DisplayPlaced    = ToDisplayStatus(entities.OrderPlaced)
	DisplayPreparing = ToDisplayStatus(entities.OrderPreparing)
	DisplayReady     = ToDisplayStatus(entities.OrderReady)
	DisplayCompleted = ToDisplayStatus(entities.OrderCompleted)
	DisplayCancelled = ToDisplayStatus(entities.OrderCancelled)
)

// ToDisplayStatus переводит статус с сервера в подпись для пользователя.
// Незнакомый статус показывается как только что оформленный.
func ToDisplayStatus(status entities.OrderStatus) DisplayStatus {
	return DisplayStatus(status.DisplayName())
}

func (d DisplayStatus) String() string {
	return string(d)
}
