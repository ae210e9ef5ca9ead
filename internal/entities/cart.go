package entities

import "github.com/shopspring/decimal"

// CatalogItem - то, что клиент знает о блюде из каталога в момент добавления в корзину.
type CatalogItem struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Image string
}

type cartEntry struct {
	item     CatalogItem
	quantity int
}

// Cart хранит позиции в порядке добавления. Количество всегда >= 1.
// Не потокобезопасна, принадлежит одной сессии.
type Cart struct {
	order   []string
	entries map[string]*cartEntry
}

func NewCart() *Cart {
	return &Cart{entries: make(map[string]*cartEntry)}
}

// Add добавляет одну штуку. Повторное добавление увеличивает количество,
// снимок цены остается от первого добавления.
func (c *Cart) Add(item CatalogItem) {
	if entry, ok := c.entries[item.ID]; ok {
		entry.quantity++
		return
	}
	c.entries[item.ID] = &cartEntry{item: item, quantity: 1}
	c.order = append(c.order, item.ID)
}

// SetQuantity меняет количество, значение <= 0 удаляет позицию.
func (c *Cart) SetQuantity(itemID string, quantity int) {
	entry, ok := c.entries[itemID]
	if !ok {
		return
	}
	if quantity <= 0 {
		c.Remove(itemID)
		return
	}
	entry.quantity = quantity
}

func (c *Cart) Remove(itemID string) {
	if _, ok := c.entries[itemID]; !ok {
		return
	}
	delete(c.entries, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) Clear() {
	c.order = nil
	c.entries = make(map[string]*cartEntry)
}

func (c *Cart) IsEmpty() bool {
	return len(c.order) == 0
}

// Count - общее количество штук.
func (c *Cart) Count() int {
	count := 0
	for _, entry := range c.entries {
		count += entry.quantity
	}
	return count
}

func (c *Cart) Lines() []LineItem {
	lines := make([]LineItem, 0, len(c.order))
	for _, id := range c.order {
		entry := c.entries[id]
		lines = append(lines, LineItem{
			Name:     entry.item.Name,
			Price:    entry.item.Price,
			Quantity: entry.quantity,
			Image:    entry.item.Image,
		})
	}
	return lines
}

func (c *Cart) Total() decimal.Decimal {
	return OrderTotal(c.Lines())
}
