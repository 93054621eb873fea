package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tiendaonline/backend/internal/entity"
	"github.com/tiendaonline/backend/internal/repository"
)

// CartService manages the per-user staging cart.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
	}
}

// AddItem accumulates quantity onto the (cart, product) line, creating
// the cart and the line as needed.
func (s *CartService) AddItem(ctx context.Context, id entity.Identity, productID string, quantity int) (entity.CartLine, error) {
	if productID == "" {
		return entity.CartLine{}, fmt.Errorf("%w: product id is required", entity.ErrInvalidInput)
	}
	if quantity <= 0 {
		return entity.CartLine{}, fmt.Errorf("%w: quantity must be a positive integer", entity.ErrInvalidInput)
	}

	// Reject unknown products up front rather than with a foreign key
	// error from the insert.
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return entity.CartLine{}, fmt.Errorf("product %s: %w", productID, err)
	}

	line, err := s.carts.AddLine(ctx, id.UserID, productID, quantity)
	if err != nil {
		return entity.CartLine{}, err
	}

	slog.Info("cart line updated", "user_id", id.UserID, "product_id", productID, "quantity", line.Quantity)
	return line, nil
}

// RemoveItem deletes the line for productID from the user's cart.
func (s *CartService) RemoveItem(ctx context.Context, id entity.Identity, productID string) error {
	if productID == "" {
		return fmt.Errorf("%w: product id is required", entity.ErrInvalidInput)
	}
	return s.carts.RemoveLine(ctx, id.UserID, productID)
}

// ListItems returns the cart joined with live catalog prices plus an
// informational total. The checkout recomputes its own total inside
// the transaction; this one is for display only.
func (s *CartService) ListItems(ctx context.Context, id entity.Identity) (entity.Cart, error) {
	lines, err := s.carts.Lines(ctx, id.UserID)
	if err != nil {
		return entity.Cart{}, err
	}

	var total entity.Cents
	for _, line := range lines {
		total += line.Subtotal
	}
	return entity.Cart{Lines: lines, Total: total}, nil
}
