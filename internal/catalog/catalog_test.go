package catalog

import (
	"context"
	"testing"

	"memopad/internal/domain"
	"memopad/internal/gateway"
)

// fakeRemote управляемая замена удалённого сервиса
type fakeRemote struct {
	products  []domain.Product
	fetchErr  error
	addErr    error
	deleteErr error
	deleted   []string
}

func (f *fakeRemote) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.products, nil
}

func (f *fakeRemote) AddProduct(ctx context.Context, p domain.Product) error {
	return f.addErr
}

func (f *fakeRemote) DeleteProduct(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func product(id, name string) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        name,
		Price:       100,
		Sizes:       []domain.Size{domain.SizeM},
		StockBySize: map[domain.Size]int64{domain.SizeM: 5},
	}
}

func TestRefreshReplacesCatalog(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{products: []domain.Product{product("P1", "Shirt")}}
	s := NewStore(remote)
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := s.List(Filter{}); len(got) != 1 || got[0].ID != "P1" {
		t.Fatalf("unexpected catalog: %+v", got)
	}

	remote.products = []domain.Product{product("P2", "Pants")}
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := s.List(Filter{}); len(got) != 1 || got[0].ID != "P2" {
		t.Fatalf("catalog not replaced: %+v", got)
	}
}

func TestRefreshFailsClosed(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{products: []domain.Product{product("P1", "Shirt")}}
	s := NewStore(remote)
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	// кривое тело ответа: каталог очищается, устаревшие данные не остаются
	remote.fetchErr = gateway.ErrParseFailed
	err := s.Refresh(ctx)
	if err == nil {
		t.Fatalf("expected error")
	}
	if err != gateway.ErrParseFailed {
		t.Fatalf("expected ErrParseFailed, got %v", err)
	}
	if got := s.List(Filter{}); len(got) != 0 {
		t.Fatalf("stale catalog retained: %+v", got)
	}
}

func TestAddOptimisticPrepend(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{products: []domain.Product{product("P1", "Shirt")}}
	s := NewStore(remote)
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if err := s.Add(ctx, product("P2", "Pants")); err != nil {
		t.Fatalf("add: %v", err)
	}
	got := s.List(Filter{})
	if len(got) != 2 || got[0].ID != "P2" {
		t.Fatalf("new product not prepended: %+v", got)
	}
}

func TestAddRollbackOnRejection(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{addErr: gateway.ErrRejectedByStore}
	s := NewStore(remote)
	err := s.Add(ctx, product("P1", "Shirt"))
	if err != gateway.ErrRejectedByStore {
		t.Fatalf("expected ErrRejectedByStore, got %v", err)
	}
	if got := s.List(Filter{}); len(got) != 0 {
		t.Fatalf("optimistic insert not rolled back: %+v", got)
	}
}

func TestAddDuplicateID(t *testing.T) {
	ctx := context.Background()
	s := NewStore(&fakeRemote{})
	if err := s.Add(ctx, product("P1", "Shirt")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(ctx, product("P1", "Copy")); err != ErrDuplicateID {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if got := s.List(Filter{}); len(got) != 1 {
		t.Fatalf("duplicate slipped in: %+v", got)
	}
}

func TestRemoveExactlyOne(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{}
	s := NewStore(remote)
	for _, id := range []string{"P1", "P2", "P3"} {
		if err := s.Add(ctx, product(id, "X")); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	if err := s.Remove(ctx, "P2"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := s.List(Filter{}); len(got) != 2 {
		t.Fatalf("expected 2 products, got %+v", got)
	}
	if _, err := s.Get("P2"); err != ErrNotFound {
		t.Fatalf("P2 still present")
	}
	if len(remote.deleted) != 1 || remote.deleted[0] != "P2" {
		t.Fatalf("unexpected remote deletes: %v", remote.deleted)
	}
}

func TestRemoveAbsentIDIsNoop(t *testing.T) {
	ctx := context.Background()
	s := NewStore(&fakeRemote{})
	if err := s.Add(ctx, product("P1", "Shirt")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Remove(ctx, "nope"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if got := s.List(Filter{}); len(got) != 1 {
		t.Fatalf("catalog changed: %+v", got)
	}
}

func TestRemoveRejectedKeepsLocal(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{}
	s := NewStore(remote)
	if err := s.Add(ctx, product("P1", "Shirt")); err != nil {
		t.Fatalf("add: %v", err)
	}
	remote.deleteErr = gateway.ErrRejectedByStore
	if err := s.Remove(ctx, "P1"); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := s.Get("P1"); err != nil {
		t.Fatalf("local entry removed despite remote rejection")
	}
}

func TestListFilter(t *testing.T) {
	ctx := context.Background()
	s := NewStore(&fakeRemote{})
	if err := s.Add(ctx, product("P1", "Cotton Panjabi")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(ctx, product("P2", "Silk Saree")); err != nil {
		t.Fatalf("add: %v", err)
	}
	got := s.List(Filter{NameSubstring: "panjabi"})
	if len(got) != 1 || got[0].ID != "P1" {
		t.Fatalf("filter mismatch: %+v", got)
	}
}

func TestCounts(t *testing.T) {
	ctx := context.Background()
	s := NewStore(&fakeRemote{})
	p := product("P1", "Shirt")
	p.StockBySize = map[domain.Size]int64{domain.SizeM: 5, domain.SizeL: 2}
	p.Sizes = []domain.Size{domain.SizeM, domain.SizeL}
	if err := s.Add(ctx, p); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(ctx, product("P2", "Pants")); err != nil {
		t.Fatalf("add: %v", err)
	}
	products, stock := s.Counts()
	if products != 2 || stock != 12 {
		t.Fatalf("expected 2 products / 12 items, got %d / %d", products, stock)
	}
}
