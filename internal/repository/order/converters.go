package order

import (
	"encoding/json"
	"fmt"

	"canteen/internal/entities"

	"github.com/shopspring/decimal"
)

func ToDomain(o *OrderDB) (*entities.Order, error) {
	if o == nil {
		return nil, nil
	}

	var itemsDB []LineItemDB
	if err := json.Unmarshal(o.Items, &itemsDB); err != nil {
		return nil, fmt.Errorf("order %s items: %w", o.ID, err)
	}

	items := make([]entities.LineItem, len(itemsDB))
	for i, item := range itemsDB {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, fmt.Errorf("order %s item %d price: %w", o.ID, i, err)
		}
		items[i] = entities.LineItem{
			Name:     item.Name,
			Price:    price,
			Quantity: item.Quantity,
			Image:    item.Image,
		}
	}

	total, err := decimal.NewFromString(o.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("order %s total: %w", o.ID, err)
	}

	return &entities.Order{
		ID:     o.ID,
		UserID: o.UserID,
		UserDetails: entities.UserDetails{
			Name:  o.UserName,
			Email: o.UserEmail,
		},
		Items:       items,
		TotalAmount: total,
		Status:      entities.OrderStatus(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}, nil
}

func ToDomainList(ordersDB []OrderDB) ([]entities.Order, error) {
	result := make([]entities.Order, 0, len(ordersDB))
	for i := range ordersDB {
		o, err := ToDomain(&ordersDB[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	return result, nil
}

func FromDomain(o *entities.Order) (*OrderDB, error) {
	itemsDB := make([]LineItemDB, len(o.Items))
	for i, item := range o.Items {
		itemsDB[i] = LineItemDB{
			Name:     item.Name,
			Price:    item.Price.String(),
			Quantity: item.Quantity,
			Image:    item.Image,
		}
	}

	items, err := json.Marshal(itemsDB)
	if err != nil {
		return nil, fmt.Errorf("marshal order items: %w", err)
	}

	return &OrderDB{
		ID:          o.ID,
		UserID:      o.UserID,
		UserName:    o.UserDetails.Name,
		UserEmail:   o.UserDetails.Email,
		Items:       items,
		TotalAmount: o.TotalAmount.StringFixed(2),
		Status:      o.Status.String(),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}, nil
}

func statusStrings(statuses []entities.OrderStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = s.String()
	}
	return result
}
