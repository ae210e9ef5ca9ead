package order

import (
	"fmt"
	"strings"

	"canteen/internal/entities"
)

func validateLineItems(items []entities.LineItem) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}

	for i, item := range items {
		switch {
		case strings.TrimSpace(item.Name) == "":
			return fmt.Errorf("item %d: empty name: %w", i, ErrInvalidLineItem)
		case item.Quantity < 1:
			return fmt.Errorf("item %d: quantity %d: %w", i, item.Quantity, ErrInvalidLineItem)
		case item.Price.IsNegative():
			return fmt.Errorf("item %d: negative price: %w", i, ErrInvalidLineItem)
		}
	}
	return nil
}

// персонал может выставить любой статус, кроме начального
func isManualStatus(status entities.OrderStatus) bool {
	return status.IsValid() && status != entities.OrderPlaced
}

func validateFilter(filter entities.OrderFilter) error {
	for _, status := range filter.Statuses {
		if !status.IsValid() {
			return fmt.Errorf("filter status %q: %w", status, ErrInvalidStatus)
		}
	}
	return nil
}
