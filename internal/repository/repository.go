package repository

import (
	"context"

	"github.com/tiendaonline/backend/internal/entity"
)

// UserRepository handles persistence for Users.
type UserRepository interface {
	// Create inserts a new user. Returns entity.ErrConflict if the
	// email is already registered.
	Create(ctx context.Context, user entity.User) error
	FindByEmail(ctx context.Context, email string) (entity.User, error)
	FindByID(ctx context.Context, id string) (entity.User, error)
}

// ProductRepository handles read access to the catalog.
type ProductRepository interface {
	Filter(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error)
	FindByID(ctx context.Context, id string) (entity.Product, error)
	Categories(ctx context.Context) ([]entity.Category, error)
	// Seed inserts initial categories and products if the catalog is empty.
	Seed(ctx context.Context, categories []entity.Category, products []entity.Product) error
}

// CartRepository handles the per-user mutable cart.
type CartRepository interface {
	// AddLine increments the quantity of an existing (cart, product)
	// line or creates one, lazily creating the cart itself. Returns the
	// updated line joined with the live catalog price.
	AddLine(ctx context.Context, userID, productID string, quantity int) (entity.CartLine, error)
	// RemoveLine deletes the matching line. Returns entity.ErrNotFound
	// if the user has no such line.
	RemoveLine(ctx context.Context, userID, productID string) error
	// Lines returns the cart joined against live catalog prices.
	Lines(ctx context.Context, userID string) ([]entity.CartLine, error)
}

// OrderRepository handles read access to persisted orders.
type OrderRepository interface {
	FindRecentByUser(ctx context.Context, userID string, limit int) ([]entity.Order, error)
}

// CheckoutTx is the set of writes available inside one checkout
// transaction. All methods run against the same held connection so the
// stock values read by LinesForUpdate are the ones the decrements are
// applied to.
type CheckoutTx interface {
	// LinesForUpdate loads the user's cart lines joined with current
	// price and stock, locking the product rows (SELECT ... FOR UPDATE)
	// in product-id order.
	LinesForUpdate(ctx context.Context, userID string) ([]entity.CheckoutLine, error)
	InsertAddress(ctx context.Context, addr entity.Address) error
	InsertOrder(ctx context.Context, order entity.Order) error
	InsertOrderLine(ctx context.Context, line entity.OrderLine) error
	// DecrementStock subtracts quantity from the product's stock.
	// Returns an *entity.InsufficientStockError if stock would go
	// negative.
	DecrementStock(ctx context.Context, productID string, quantity int) error
	// ClearCart deletes every line in the user's cart.
	ClearCart(ctx context.Context, userID string) error
}

// OrderStore combines order reads with the checkout transaction.
type OrderStore interface {
	OrderRepository
	CheckoutStore
}

// CheckoutStore opens the single atomic transaction a checkout runs in.
// If fn returns an error every write is rolled back; otherwise the
// transaction commits before RunCheckout returns.
type CheckoutStore interface {
	RunCheckout(ctx context.Context, fn func(tx CheckoutTx) error) error
}
