// Package order оформление заказа и история подтверждённых заказов.
package order

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"memopad/internal/cart"
	"memopad/internal/domain"
	"memopad/internal/obs"
)

var (
	// ErrMissingField имя, телефон и адрес покупателя обязательны
	ErrMissingField = errors.New("missing customer field")
	// ErrEmptyCart пустую корзину оформить нельзя
	ErrEmptyCart = errors.New("empty cart")
)

// Remote операции удалённого сервиса, нужные заказам
type Remote interface {
	PlaceOrder(ctx context.Context, o domain.Order) error
	FetchOrders(ctx context.Context) ([]domain.Order, error)
}

// CatalogRefresher обновление каталога после успешного оформления
type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}

// CustomerInfo данные покупателя из формы мемо
type CustomerInfo struct {
	Name    string
	Phone   string
	Address string
}

// Service проверяет и оформляет заказ, ведёт историю
type Service struct {
	mu      sync.RWMutex
	remote  Remote
	catalog CatalogRefresher
	cart    *cart.Cart
	history []domain.Order
}

func NewService(remote Remote, catalog CatalogRefresher, c *cart.Cart) *Service {
	return &Service{remote: remote, catalog: catalog, cart: c}
}

// ComputeTotal сумма price*quantity по всем позициям; пустой список — ноль
func ComputeTotal(items []domain.OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Price * it.Quantity
	}
	return total
}

// ValidateCheckout всё-или-ничего: три поля покупателя непусты после
// обрезки пробелов и в корзине есть хотя бы одна позиция
func (s *Service) ValidateCheckout(info CustomerInfo) error {
	if strings.TrimSpace(info.Name) == "" ||
		strings.TrimSpace(info.Phone) == "" ||
		strings.TrimSpace(info.Address) == "" {
		return ErrMissingField
	}
	if s.cart.Len() == 0 {
		return ErrEmptyCart
	}
	return nil
}

// Checkout оформляет заказ: проверка, запись на сервис, обновление
// данных, очистка корзины — строго в этом порядке. При отказе записи
// корзина остаётся нетронутой, чтобы повторить попытку без повторного ввода.
func (s *Service) Checkout(ctx context.Context, info CustomerInfo) (*domain.Order, error) {
	if err := s.ValidateCheckout(info); err != nil {
		return nil, err
	}

	items := s.cart.Items()
	o := domain.Order{
		ID:              newOrderID(),
		CustomerName:    info.Name,
		CustomerPhone:   info.Phone,
		CustomerAddress: info.Address,
		Items:           items,
		TotalAmount:     ComputeTotal(items),
		CreatedAt:       time.Now().UnixMilli(),
	}

	if err := s.remote.PlaceOrder(ctx, o); err != nil {
		return nil, err
	}

	s.RefreshHistory(ctx)
	if err := s.catalog.Refresh(ctx); err != nil {
		obs.Logger.Warn("catalog refresh after checkout failed", "error", err)
	}
	s.cart.Clear()
	return &o, nil
}

// RefreshHistory замещает историю данными сервиса. В отличие от каталога
// ошибка не фатальна: история деградирует до пустого списка с диагностикой.
func (s *Service) RefreshHistory(ctx context.Context) {
	orders, err := s.remote.FetchOrders(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		obs.Logger.Warn("order history fetch failed", "error", err)
		s.history = nil
		return
	}
	s.history = orders
}

// History снимок истории заказов
func (s *Service) History() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, len(s.history))
	copy(out, s.history)
	return out
}

// newOrderID идентификатор из хвоста unix-времени в миллисекундах.
// Уникален в пределах одного терминала.
// TODO: перейти на uuid, если сервис будет обслуживать несколько касс.
func newOrderID() string {
	ms := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return "ORD-" + ms
}
