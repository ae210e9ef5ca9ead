package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"canteen/internal/entities"

	"github.com/shopspring/decimal"
)

var errInvalidItem = errors.New("item must look like name=price or name=pricexqty")

type cartLine struct {
	item     entities.CatalogItem
	quantity int
}

// parseItems разбирает флаги вида "Masala Dosa=60x2". Одинаковые имена
// складываются в одну позицию.
func parseItems(raw []string) ([]cartLine, error) {
	lines := make([]cartLine, 0, len(raw))
	index := make(map[string]int, len(raw))

	for _, value := range raw {
		line, err := parseItem(value)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", value, err)
		}

		if i, ok := index[line.item.ID]; ok {
			lines[i].quantity += line.quantity
			continue
		}
		index[line.item.ID] = len(lines)
		lines = append(lines, line)
	}
	return lines, nil
}

func parseItem(value string) (cartLine, error) {
	eq := strings.LastIndex(value, "=")
	if eq <= 0 {
		return cartLine{}, errInvalidItem
	}

	name := strings.TrimSpace(value[:eq])
	if name == "" {
		return cartLine{}, errInvalidItem
	}

	priceRaw, qtyRaw, hasQty := strings.Cut(strings.TrimSpace(value[eq+1:]), "x")

	price, err := decimal.NewFromString(priceRaw)
	if err != nil || price.IsNegative() {
		return cartLine{}, errInvalidItem
	}

	quantity := 1
	if hasQty {
		quantity, err = strconv.Atoi(qtyRaw)
		if err != nil || quantity < 1 {
			return cartLine{}, errInvalidItem
		}
	}

	return cartLine{
		item: entities.CatalogItem{
			ID:    strings.ToLower(name),
			Name:  name,
			Price: price,
		},
		quantity: quantity,
	}, nil
}
