package entity

import (
	"errors"
	"fmt"
)

// Failure taxonomy surfaced to callers. Services translate every store
// or infrastructure error into one of these before it crosses the HTTP
// boundary; raw driver errors never leak past the service layer.
var (
	// ErrInvalidInput marks client-correctable input; no store access
	// was attempted.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart is returned by checkout when the user's cart has no
	// lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrUnauthenticated marks a missing or invalid session token.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrConflict marks a duplicate unique key, e.g. registering an
	// already-used email.
	ErrConflict = errors.New("already exists")

	// ErrTransactionFailure marks a store-level abort (deadlock,
	// connectivity loss). Nothing committed; the whole operation is
	// safe to retry from scratch.
	ErrTransactionFailure = errors.New("transaction failure")
)

// InsufficientStockError is returned when a cart line's quantity
// exceeds the product's available stock. It carries remediation data
// for the client.
type InsufficientStockError struct {
	ProductID string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: %d available", e.ProductID, e.Available)
}
