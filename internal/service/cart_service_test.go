package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/tiendaonline/backend/internal/entity"
)

type fakeCartRepo struct {
	lines map[string]map[string]int // userID -> productID -> qty
	repo  *fakeProductRepo
}

func newFakeCartRepo(products *fakeProductRepo) *fakeCartRepo {
	return &fakeCartRepo{lines: map[string]map[string]int{}, repo: products}
}

func (r *fakeCartRepo) line(userID, productID string) entity.CartLine {
	qty := r.lines[userID][productID]
	p := r.repo.products[productID]
	return entity.CartLine{
		ProductID: productID,
		Name:      p.Name,
		Quantity:  qty,
		UnitPrice: p.Price,
		Subtotal:  p.Price.Mul(qty),
	}
}

func (r *fakeCartRepo) AddLine(_ context.Context, userID, productID string, quantity int) (entity.CartLine, error) {
	if r.lines[userID] == nil {
		r.lines[userID] = map[string]int{}
	}
	r.lines[userID][productID] += quantity
	return r.line(userID, productID), nil
}

func (r *fakeCartRepo) RemoveLine(_ context.Context, userID, productID string) error {
	if _, ok := r.lines[userID][productID]; !ok {
		return fmt.Errorf("cart line: %w", entity.ErrNotFound)
	}
	delete(r.lines[userID], productID)
	return nil
}

func (r *fakeCartRepo) Lines(_ context.Context, userID string) ([]entity.CartLine, error) {
	var out []entity.CartLine
	for productID := range r.lines[userID] {
		out = append(out, r.line(userID, productID))
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]entity.Product
}

func (r *fakeProductRepo) Filter(_ context.Context, _ entity.ProductFilter) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id string) (entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return entity.Product{}, fmt.Errorf("product: %w", entity.ErrNotFound)
	}
	return p, nil
}

func (r *fakeProductRepo) Categories(_ context.Context) ([]entity.Category, error) { return nil, nil }

func (r *fakeProductRepo) Seed(_ context.Context, _ []entity.Category, _ []entity.Product) error {
	return nil
}

func newCartFixture() (*CartService, *fakeCartRepo) {
	products := &fakeProductRepo{products: map[string]entity.Product{
		"prod-a": {ID: "prod-a", Name: "Keyboard", Price: 17999, Stock: 10},
		"prod-b": {ID: "prod-b", Name: "Lamp", Price: 8999, Stock: 5},
	}}
	carts := newFakeCartRepo(products)
	return NewCartService(carts, products), carts
}

func TestCartAddItemValidation(t *testing.T) {
	svc, _ := newCartFixture()
	id := entity.Identity{UserID: "u1"}

	t.Run("zero quantity -> invalid", func(t *testing.T) {
		_, err := svc.AddItem(context.Background(), id, "prod-a", 0)
		if !errors.Is(err, entity.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative quantity -> invalid", func(t *testing.T) {
		_, err := svc.AddItem(context.Background(), id, "prod-a", -3)
		if !errors.Is(err, entity.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown product -> not found", func(t *testing.T) {
		_, err := svc.AddItem(context.Background(), id, "prod-zzz", 1)
		if !errors.Is(err, entity.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestCartAddItemAccumulates(t *testing.T) {
	svc, _ := newCartFixture()
	id := entity.Identity{UserID: "u1"}

	line, err := svc.AddItem(context.Background(), id, "prod-a", 2)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if line.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", line.Quantity)
	}

	line, err = svc.AddItem(context.Background(), id, "prod-a", 3)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if line.Quantity != 5 {
		t.Fatalf("expected accumulated quantity 5, got %d", line.Quantity)
	}
	if line.Subtotal != entity.Cents(17999*5) {
		t.Fatalf("expected subtotal %d, got %d", 17999*5, line.Subtotal)
	}
}

func TestCartRemoveItem(t *testing.T) {
	svc, _ := newCartFixture()
	id := entity.Identity{UserID: "u1"}

	if _, err := svc.AddItem(context.Background(), id, "prod-a", 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := svc.RemoveItem(context.Background(), id, "prod-a"); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}

	if err := svc.RemoveItem(context.Background(), id, "prod-a"); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second removal, got %v", err)
	}
}

func TestCartListItemsTotal(t *testing.T) {
	svc, _ := newCartFixture()
	id := entity.Identity{UserID: "u1"}

	mustAdd := func(productID string, qty int) {
		t.Helper()
		if _, err := svc.AddItem(context.Background(), id, productID, qty); err != nil {
			t.Fatalf("AddItem(%s) failed: %v", productID, err)
		}
	}
	mustAdd("prod-a", 2)
	mustAdd("prod-b", 1)

	cart, err := svc.ListItems(context.Background(), id)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(cart.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Lines))
	}

	want := entity.Cents(17999*2 + 8999)
	if cart.Total != want {
		t.Fatalf("expected total %d, got %d", want, cart.Total)
	}
}
