package cart

import (
	"testing"

	"memopad/internal/domain"
)

func sampleProduct() domain.Product {
	return domain.Product{
		ID:    "P1",
		Name:  "Panjabi",
		Price: 500,
		Sizes: []domain.Size{domain.SizeS, domain.SizeM},
		StockBySize: map[domain.Size]int64{
			domain.SizeS: 0,
			domain.SizeM: 3,
		},
	}
}

func TestAddPicksFirstAvailableSize(t *testing.T) {
	c := New()
	item, err := c.Add(sampleProduct())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	// S имеет нулевой остаток, выбирается M
	if item.Size != domain.SizeM {
		t.Fatalf("expected size M, got %v", item.Size)
	}
	if item.Price != 500 || item.Quantity != 1 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if c.Len() != 1 {
		t.Fatalf("expected one line, got %d", c.Len())
	}
}

func TestAddDeterministicSizePick(t *testing.T) {
	p := sampleProduct()
	p.StockBySize[domain.SizeS] = 2
	for i := 0; i < 5; i++ {
		c := New()
		item, err := c.Add(p)
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if item.Size != domain.SizeS {
			t.Fatalf("expected first declared size S, got %v", item.Size)
		}
	}
}

func TestAddOutOfStock(t *testing.T) {
	p := sampleProduct()
	p.StockBySize = map[domain.Size]int64{domain.SizeS: 0, domain.SizeM: 0}
	c := New()
	if _, err := c.Add(p); err != ErrOutOfStock {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("cart changed on failed add")
	}
}

func TestRemoveOutOfRangeIsNoop(t *testing.T) {
	c := New()
	if _, err := c.Add(sampleProduct()); err != nil {
		t.Fatalf("add: %v", err)
	}
	c.Remove(0)
	if c.Len() != 0 {
		t.Fatalf("expected empty cart")
	}
	// повторное удаление по тому же индексу не падает
	c.Remove(0)
	c.Remove(-1)
	c.Remove(5)
	if c.Len() != 0 {
		t.Fatalf("expected empty cart after stale removes")
	}
}

func TestRemoveKeepsOrder(t *testing.T) {
	c := New()
	p := sampleProduct()
	for _, id := range []string{"A", "B", "C"} {
		p.ID = id
		if _, err := c.Add(p); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	c.Remove(1)
	items := c.Items()
	if len(items) != 2 || items[0].ProductID != "A" || items[1].ProductID != "C" {
		t.Fatalf("unexpected lines: %+v", items)
	}
}

func TestTaggedUpdates(t *testing.T) {
	c := New()
	if _, err := c.Add(sampleProduct()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.SetSize(0, domain.SizeXL); err != nil {
		t.Fatalf("set size: %v", err)
	}
	if err := c.SetPrice(0, 450); err != nil {
		t.Fatalf("set price: %v", err)
	}
	if err := c.SetQuantity(0, 3); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	items := c.Items()
	if items[0].Size != domain.SizeXL || items[0].Price != 450 || items[0].Quantity != 3 {
		t.Fatalf("updates not applied: %+v", items[0])
	}
}

func TestTaggedUpdatesValidation(t *testing.T) {
	c := New()
	if _, err := c.Add(sampleProduct()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.SetSize(0, domain.Size("XS")); err != ErrInvalidValue {
		t.Fatalf("expected ErrInvalidValue for unknown size, got %v", err)
	}
	if err := c.SetPrice(0, -1); err != ErrInvalidValue {
		t.Fatalf("expected ErrInvalidValue for negative price, got %v", err)
	}
	if err := c.SetQuantity(0, 0); err != ErrInvalidValue {
		t.Fatalf("expected ErrInvalidValue for zero quantity, got %v", err)
	}
	if err := c.SetPrice(9, 100); err != ErrNoSuchLine {
		t.Fatalf("expected ErrNoSuchLine, got %v", err)
	}
}

func TestSetSizeDoesNotCheckStock(t *testing.T) {
	c := New()
	if _, err := c.Add(sampleProduct()); err != nil {
		t.Fatalf("add: %v", err)
	}
	// S в каталоге без остатка, но правка позиции это не проверяет
	if err := c.SetSize(0, domain.SizeS); err != nil {
		t.Fatalf("set size: %v", err)
	}
}

func TestItemsIsSnapshot(t *testing.T) {
	c := New()
	if _, err := c.Add(sampleProduct()); err != nil {
		t.Fatalf("add: %v", err)
	}
	items := c.Items()
	items[0].Price = 1
	if got := c.Items()[0].Price; got != 500 {
		t.Fatalf("snapshot mutation leaked into cart: %d", got)
	}
}
