// Package cart составление текущего мемо из позиций каталога.
package cart

import (
	"errors"
	"sync"

	"memopad/internal/domain"
)

var (
	// ErrOutOfStock ни один из заявленных размеров не имеет остатка
	ErrOutOfStock = errors.New("out of stock")
	// ErrNoSuchLine индекс позиции вне границ корзины
	ErrNoSuchLine = errors.New("no such cart line")
	// ErrInvalidValue недопустимое значение правки позиции
	ErrInvalidValue = errors.New("invalid value")
)

// Cart упорядоченный список позиций. Порядок вставки значим: позиции
// адресуются индексом.
type Cart struct {
	mu    sync.Mutex
	items []domain.OrderItem
}

func New() *Cart {
	return &Cart{}
}

// Add выбирает первый размер в заявленном порядке с положительным
// остатком и добавляет позицию с количеством 1. Если остатка нет ни по
// одному размеру, корзина не меняется.
func (c *Cart) Add(p domain.Product) (domain.OrderItem, error) {
	var picked domain.Size
	found := false
	for _, s := range p.Sizes {
		if p.Stock(s) > 0 {
			picked = s
			found = true
			break
		}
	}
	if !found {
		return domain.OrderItem{}, ErrOutOfStock
	}
	item := domain.OrderItem{
		ProductID: p.ID,
		Name:      p.Name,
		Size:      picked,
		Price:     p.Price,
		Quantity:  1,
	}
	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()
	return item, nil
}

// Remove удаляет позицию по индексу. Индекс вне границ — no-op:
// перерисовка списка может прислать устаревший индекс.
func (c *Cart) Remove(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.items) {
		return
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
}

// Правки позиций не перепроверяют остатки каталога: цена и размер в мемо
// редактируются независимо от текущего состояния склада.

// SetSize меняет размер позиции; размер обязан входить в фиксированный набор
func (c *Cart) SetSize(index int, s domain.Size) error {
	if !domain.ValidSize(s) {
		return ErrInvalidValue
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.items) {
		return ErrNoSuchLine
	}
	c.items[index].Size = s
	return nil
}

// SetPrice меняет цену позиции, не трогая цену товара в каталоге
func (c *Cart) SetPrice(index int, price int64) error {
	if price < 0 {
		return ErrInvalidValue
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.items) {
		return ErrNoSuchLine
	}
	c.items[index].Price = price
	return nil
}

// SetQuantity меняет количество; количество строго положительное
func (c *Cart) SetQuantity(index int, qty int64) error {
	if qty <= 0 {
		return ErrInvalidValue
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.items) {
		return ErrNoSuchLine
	}
	c.items[index].Quantity = qty
	return nil
}

// Items снимок позиций в порядке вставки
func (c *Cart) Items() []domain.OrderItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.OrderItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len число позиций
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear опустошает корзину
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
