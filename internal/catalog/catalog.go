// Package catalog хранилище каталога товаров поверх удалённого сервиса.
package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"

	"memopad/internal/domain"
)

// ErrNotFound возвращается, когда товар не найден
var ErrNotFound = errors.New("not found")

// ErrDuplicateID второй товар с тем же id не допускается
var ErrDuplicateID = errors.New("duplicate product id")

// Remote операции удалённого сервиса, нужные каталогу
type Remote interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	AddProduct(ctx context.Context, p domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// Filter параметры фильтрации списка товаров
type Filter struct {
	NameSubstring string
}

// Store упорядоченный in-memory каталог. Новые товары добавляются в начало.
type Store struct {
	mu       sync.RWMutex
	remote   Remote
	products []domain.Product
}

func NewStore(remote Remote) *Store {
	return &Store{remote: remote}
}

// Refresh полностью замещает каталог данными сервиса. При любой ошибке
// каталог очищается: устаревшие или частичные данные не сохраняются.
func (s *Store) Refresh(ctx context.Context) error {
	products, err := s.remote.FetchProducts(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.products = nil
		return err
	}
	s.products = products
	return nil
}

// Add оптимистично вставляет товар в начало списка до подтверждения
// сервисом; при отказе записи вставка откатывается
func (s *Store) Add(ctx context.Context, p domain.Product) error {
	s.mu.Lock()
	for _, existing := range s.products {
		if existing.ID == p.ID {
			s.mu.Unlock()
			return ErrDuplicateID
		}
	}
	s.products = append([]domain.Product{p}, s.products...)
	s.mu.Unlock()

	if err := s.remote.AddProduct(ctx, p); err != nil {
		// rollback
		s.mu.Lock()
		for i, existing := range s.products {
			if existing.ID == p.ID {
				s.products = append(s.products[:i], s.products[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// Remove удаляет товар локально только после успешного удаления на
// сервисе; отсутствующий id локально — no-op
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.remote.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			break
		}
	}
	return nil
}

// Get товар по id
func (s *Store) Get(id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			// return copy
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// List товары в порядке хранения с опциональным фильтром по подстроке имени
func (s *Store) List(f Filter) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if !containsIgnoreCase(p.Name, f.NameSubstring) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Counts количество товаров и суммарный остаток по всем размерам
func (s *Store) Counts() (products, itemsInStock int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		products++
		itemsInStock += p.TotalStock()
	}
	return products, itemsInStock
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
