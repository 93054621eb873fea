package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tiendaonline/backend/internal/entity"
	"github.com/tiendaonline/backend/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a store backed by Postgres that serves
// both order reads and the checkout transaction.
func NewOrderRepository(db *sql.DB) repository.OrderStore {
	return &orderRepository{db: db}
}

// RunCheckout runs fn inside a single transaction. The connection is
// held for the whole duration, so the row locks taken by
// LinesForUpdate cover every later write in the same attempt.
func (r *orderRepository) RunCheckout(ctx context.Context, fn func(tx repository.CheckoutTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&checkoutTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type checkoutTx struct {
	tx *sql.Tx
}

// LinesForUpdate locks the product rows behind the user's cart lines.
// Rows are locked in product-id order so two checkouts contending on
// overlapping products acquire locks in the same sequence instead of
// deadlocking.
func (t *checkoutTx) LinesForUpdate(ctx context.Context, userID string) ([]entity.CheckoutLine, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT cl.product_id, cl.quantity, p.price_cents, p.stock
		FROM carts c
		JOIN cart_lines cl ON cl.cart_id = c.id
		JOIN products p ON p.id = cl.product_id
		WHERE c.user_id = $1
		ORDER BY cl.product_id
		FOR UPDATE OF p`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to lock cart lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.CheckoutLine
	for rows.Next() {
		var line entity.CheckoutLine
		if err := rows.Scan(&line.ProductID, &line.Quantity, &line.UnitPrice, &line.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan checkout line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (t *checkoutTx) InsertAddress(ctx context.Context, addr entity.Address) error {
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO addresses (id, user_id, street, city, state, postal_code, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		addr.ID, addr.UserID, addr.Street, addr.City, addr.State, addr.PostalCode, addr.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert address: %w", err)
	}
	return nil
}

func (t *checkoutTx) InsertOrder(ctx context.Context, order entity.Order) error {
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO orders (id, user_id, total_cents, status, address_id, payment_method, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		order.ID, order.UserID, int64(order.Total), order.Status, order.AddressID, order.PaymentMethod, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (t *checkoutTx) InsertOrderLine(ctx context.Context, line entity.OrderLine) error {
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO order_lines (order_id, product_id, quantity, unit_price_cents) VALUES ($1, $2, $3, $4)",
		line.OrderID, line.ProductID, line.Quantity, int64(line.UnitPrice),
	)
	if err != nil {
		return fmt.Errorf("failed to insert order line: %w", err)
	}
	return nil
}

// DecrementStock subtracts quantity from the locked product row. The
// stock >= quantity guard is a second line of defense behind the
// sufficiency check the orchestrator already ran on the locked values;
// it also keeps the column's CHECK constraint from ever firing here,
// so an insufficient row surfaces as zero affected rows.
func (t *checkoutTx) DecrementStock(ctx context.Context, productID string, quantity int) error {
	res, err := t.tx.ExecContext(ctx,
		"UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1",
		quantity, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check stock update: %w", err)
	}
	if affected == 0 {
		var available int
		if err := t.tx.QueryRowContext(ctx, "SELECT stock FROM products WHERE id = $1", productID).Scan(&available); err != nil {
			return fmt.Errorf("failed to read stock for %s: %w", productID, err)
		}
		return &entity.InsufficientStockError{ProductID: productID, Available: available}
	}
	return nil
}

func (t *checkoutTx) ClearCart(ctx context.Context, userID string) error {
	_, err := t.tx.ExecContext(ctx,
		"DELETE FROM cart_lines WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)",
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (r *orderRepository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]entity.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, total_cents, status, address_id, payment_method, created_at FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2",
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.AddressID, &o.PaymentMethod, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Fetch lines for each order.
	for i := range orders {
		lines, err := r.orderLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}
	return orders, nil
}

func (r *orderRepository) orderLines(ctx context.Context, orderID string) ([]entity.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT order_id, product_id, quantity, unit_price_cents FROM order_lines WHERE order_id = $1",
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
