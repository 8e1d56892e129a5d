package domain

import (
	"errors"
	"strings"
)

// Size размер товара из фиксированного набора
type Size string

const (
	SizeS    Size = "S"
	SizeM    Size = "M"
	SizeL    Size = "L"
	SizeXL   Size = "XL"
	SizeXXL  Size = "XXL"
	SizeFree Size = "Free Size"
)

// AllSizes порядок отображения размеров в форме
var AllSizes = []Size{SizeS, SizeM, SizeL, SizeXL, SizeXXL, SizeFree}

// ValidSize проверяет принадлежность метки фиксированному набору
func ValidSize(s Size) bool {
	switch s {
	case SizeS, SizeM, SizeL, SizeXL, SizeXXL, SizeFree:
		return true
	}
	return false
}

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrInvalidPrice  = errors.New("price must be positive")
	ErrNoSizes       = errors.New("at least one size is required")
	ErrDuplicateSize = errors.New("duplicate size")
	ErrUnknownSize   = errors.New("unknown size label")
	ErrOrphanStock   = errors.New("stock entry for size not offered")
	ErrNegativeStock = errors.New("stock must be non-negative")
)

// Product товар каталога. Остатки хранятся отдельно по каждому размеру.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Price       int64          `json:"price"`
	StockBySize map[Size]int64 `json:"stockBySize"`
	Sizes       []Size         `json:"sizes"`
	Image       string         `json:"image"`
	Description string         `json:"description"`
	CreatedAt   int64          `json:"createdAt"`
}

// Validate проверяет инварианты товара: каждый ключ StockBySize обязан
// присутствовать в Sizes, размер без записи трактуется как нулевой остаток
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price <= 0 {
		return ErrInvalidPrice
	}
	if len(p.Sizes) == 0 {
		return ErrNoSizes
	}
	seen := make(map[Size]bool, len(p.Sizes))
	for _, s := range p.Sizes {
		if !ValidSize(s) {
			return ErrUnknownSize
		}
		if seen[s] {
			return ErrDuplicateSize
		}
		seen[s] = true
	}
	for s, qty := range p.StockBySize {
		if !seen[s] {
			return ErrOrphanStock
		}
		if qty < 0 {
			return ErrNegativeStock
		}
	}
	return nil
}

// Stock остаток по размеру; отсутствующая запись — ноль
func (p Product) Stock(s Size) int64 {
	return p.StockBySize[s]
}

// TotalStock суммарный остаток по всем размерам
func (p Product) TotalStock() int64 {
	var total int64
	for _, qty := range p.StockBySize {
		total += qty
	}
	return total
}

// OrderItem позиция корзины/заказа. Name и Price — снимок на момент
// добавления, правки каталога на них не влияют.
type OrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Size      Size   `json:"size"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

// Order подтверждённый заказ, неизменяемый после создания
type Order struct {
	ID              string      `json:"id"`
	CustomerName    string      `json:"customerName"`
	CustomerPhone   string      `json:"customerPhone"`
	CustomerAddress string      `json:"customerAddress"`
	Items           []OrderItem `json:"items"`
	TotalAmount     int64       `json:"totalAmount"`
	CreatedAt       int64       `json:"createdAt"`
}

// Stats счётчики для дашборда
type Stats struct {
	TotalProducts     int64 `json:"totalProducts"`
	TotalItemsInStock int64 `json:"totalItemsInStock"`
	TotalOrders       int64 `json:"totalOrders"`
}
