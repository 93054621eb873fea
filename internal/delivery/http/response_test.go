package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/tiendaonline/backend/internal/entity"
)

func TestStatusFromError(t *testing.T) {
	t.Run("InvalidInput -> 400", func(t *testing.T) {
		status, code := statusFromError(fmt.Errorf("%w: bad", entity.ErrInvalidInput))
		if status != http.StatusBadRequest || code != "INVALID_INPUT" {
			t.Fatalf("got (%d,%s)", status, code)
		}
	})

	t.Run("EmptyCart -> 400", func(t *testing.T) {
		status, code := statusFromError(entity.ErrEmptyCart)
		if status != http.StatusBadRequest || code != "EMPTY_CART" {
			t.Fatalf("got (%d,%s)", status, code)
		}
	})

	t.Run("NotFound -> 404", func(t *testing.T) {
		status, code := statusFromError(fmt.Errorf("product: %w", entity.ErrNotFound))
		if status != http.StatusNotFound || code != "NOT_FOUND" {
			t.Fatalf("got (%d,%s)", status, code)
		}
	})

	t.Run("Unauthenticated -> 401", func(t *testing.T) {
		status, code := statusFromError(entity.ErrUnauthenticated)
		if status != http.StatusUnauthorized || code != "UNAUTHENTICATED" {
			t.Fatalf("got (%d,%s)", status, code)
		}
	})

	t.Run("Conflict -> 409", func(t *testing.T) {
		status, code := statusFromError(entity.ErrConflict)
		if status != http.StatusConflict || code != "CONFLICT" {
			t.Fatalf("got (%d,%s)", status, code)
		}
	})

	t.Run("InsufficientStock -> 409", func(t *testing.T) {
		err := &entity.InsufficientStockError{ProductID: "prod-a", Available: 2}
		status, code := statusFromError(err)
		if status != http.StatusConflict || code != "INSUFFICIENT_STOCK" {
			t.Fatalf("got (%d,%s)", status, code)
		}
	})

	t.Run("TransactionFailure -> 500", func(t *testing.T) {
		status, code := statusFromError(fmt.Errorf("%w: deadlock", entity.ErrTransactionFailure))
		if status != http.StatusInternalServerError || code != "TRANSACTION_FAILURE" {
			t.Fatalf("got (%d,%s)", status, code)
		}
	})

	t.Run("unknown error -> 500", func(t *testing.T) {
		status, code := statusFromError(errors.New("boom"))
		if status != http.StatusInternalServerError || code != "INTERNAL" {
			t.Fatalf("got (%d,%s)", status, code)
		}
	})
}
