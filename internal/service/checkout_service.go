package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tiendaonline/backend/internal/entity"
	"github.com/tiendaonline/backend/internal/messaging"
	"github.com/tiendaonline/backend/internal/repository"
)

// CheckoutService converts a user's cart into a persisted order,
// exactly once, with no partial effects visible on failure. All writes
// happen inside one store transaction; the product rows backing the
// cart are locked before the stock sufficiency check so the values
// checked are the values decremented.
type CheckoutService struct {
	store         repository.CheckoutStore
	publisher     messaging.Publisher
	initialStatus string
}

func NewCheckoutService(store repository.CheckoutStore, publisher messaging.Publisher, initialStatus string) *CheckoutService {
	if initialStatus == "" {
		initialStatus = "paid"
	}
	return &CheckoutService{
		store:         store,
		publisher:     publisher,
		initialStatus: initialStatus,
	}
}

// CheckoutInput carries the shipping address fields and the payment
// method descriptor. The payment method is opaque to this component.
type CheckoutInput struct {
	Street        string
	City          string
	State         string
	PostalCode    string
	PaymentMethod string
}

func (in *CheckoutInput) validate() error {
	in.Street = strings.TrimSpace(in.Street)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.PostalCode = strings.TrimSpace(in.PostalCode)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"street", in.Street},
		{"city", in.City},
		{"state", in.State},
		{"postal_code", in.PostalCode},
		{"payment_method", in.PaymentMethod},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing fields: %s", entity.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

// Checkout runs the full checkout for the identified user. On success
// the returned order carries the server-computed total and the created
// line items; on any failure the cart, stock and order tables are
// unchanged.
func (s *CheckoutService) Checkout(ctx context.Context, id entity.Identity, in CheckoutInput) (entity.Order, error) {
	// Input validation happens before any store access.
	if err := in.validate(); err != nil {
		return entity.Order{}, err
	}

	var order entity.Order
	err := s.store.RunCheckout(ctx, func(tx repository.CheckoutTx) error {
		lines, err := tx.LinesForUpdate(ctx, id.UserID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return entity.ErrEmptyCart
		}

		// Every line must be satisfiable before any write happens; the
		// first violation aborts the whole attempt.
		var total entity.Cents
		for _, line := range lines {
			if line.Quantity > line.Stock {
				return &entity.InsufficientStockError{
					ProductID: line.ProductID,
					Available: line.Stock,
				}
			}
			total += line.UnitPrice.Mul(line.Quantity)
		}

		now := time.Now()
		addr := entity.Address{
			ID:         uuid.New().String(),
			UserID:     id.UserID,
			Street:     in.Street,
			City:       in.City,
			State:      in.State,
			PostalCode: in.PostalCode,
			CreatedAt:  now,
		}
		if err := tx.InsertAddress(ctx, addr); err != nil {
			return err
		}

		order = entity.Order{
			ID:            uuid.New().String(),
			UserID:        id.UserID,
			Total:         total,
			Status:        s.initialStatus,
			AddressID:     addr.ID,
			PaymentMethod: in.PaymentMethod,
			CreatedAt:     now,
		}
		if err := tx.InsertOrder(ctx, order); err != nil {
			return err
		}

		for _, line := range lines {
			ol := entity.OrderLine{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			}
			if err := tx.InsertOrderLine(ctx, ol); err != nil {
				return err
			}
			if err := tx.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
			order.Lines = append(order.Lines, ol)
		}

		return tx.ClearCart(ctx, id.UserID)
	})
	if err != nil {
		return entity.Order{}, translateCheckoutErr(err)
	}

	slog.Info("order placed", "order_id", order.ID, "user_id", id.UserID, "total", order.Total)

	// The order is durable once the transaction committed; event
	// publishing is best-effort and never fails the checkout.
	if s.publisher != nil {
		event := entity.OrderPlaced{
			OrderID:  order.ID,
			UserID:   order.UserID,
			Total:    order.Total,
			Status:   order.Status,
			Lines:    order.Lines,
			PlacedAt: order.CreatedAt,
		}
		if err := s.publisher.PublishEvent(ctx, order.ID, event); err != nil {
			slog.Error("failed to publish order placed event", "order_id", order.ID, "err", err)
		}
	}

	return order, nil
}

// translateCheckoutErr maps whatever came out of the transaction to
// the failure taxonomy. Domain failures pass through; anything else is
// a store-level abort, safe for the caller to retry from scratch.
func translateCheckoutErr(err error) error {
	var stockErr *entity.InsufficientStockError
	switch {
	case errors.Is(err, entity.ErrEmptyCart),
		errors.Is(err, entity.ErrInvalidInput),
		errors.As(err, &stockErr):
		return err
	default:
		return fmt.Errorf("%w: %v", entity.ErrTransactionFailure, err)
	}
}
