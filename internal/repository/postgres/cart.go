package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/tiendaonline/backend/internal/entity"
	"github.com/tiendaonline/backend/internal/repository"
)

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new CartRepository backed by Postgres.
func NewCartRepository(db *sql.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// getOrCreateCartID returns the user's cart id, creating the cart row
// lazily on first use. Concurrent creation races resolve through the
// unique constraint on user_id.
func (r *cartRepository) getOrCreateCartID(ctx context.Context, userID string) (string, error) {
	var cartID string
	err := r.db.QueryRowContext(ctx, "SELECT id FROM carts WHERE user_id = $1", userID).Scan(&cartID)
	if err == nil {
		return cartID, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to query cart: %w", err)
	}

	cartID = uuid.New().String()
	_, err = r.db.ExecContext(ctx, "INSERT INTO carts (id, user_id) VALUES ($1, $2)", cartID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the creation race; re-read the winner's row.
			err = r.db.QueryRowContext(ctx, "SELECT id FROM carts WHERE user_id = $1", userID).Scan(&cartID)
			if err != nil {
				return "", fmt.Errorf("failed to re-read cart after conflict: %w", err)
			}
			return cartID, nil
		}
		return "", fmt.Errorf("failed to create cart: %w", err)
	}
	return cartID, nil
}

func (r *cartRepository) AddLine(ctx context.Context, userID, productID string, quantity int) (entity.CartLine, error) {
	cartID, err := r.getOrCreateCartID(ctx, userID)
	if err != nil {
		return entity.CartLine{}, err
	}

	// Upsert-accumulate: repeated adds of the same product grow the
	// existing line instead of creating a duplicate.
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cart_lines (cart_id, product_id, quantity) VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity`,
		cartID, productID, quantity,
	)
	if err != nil {
		return entity.CartLine{}, fmt.Errorf("failed to add cart line: %w", err)
	}

	var line entity.CartLine
	err = r.db.QueryRowContext(ctx, `
		SELECT cl.product_id, p.name, cl.quantity, p.price_cents, cl.quantity * p.price_cents
		FROM cart_lines cl
		JOIN products p ON p.id = cl.product_id
		WHERE cl.cart_id = $1 AND cl.product_id = $2`,
		cartID, productID,
	).Scan(&line.ProductID, &line.Name, &line.Quantity, &line.UnitPrice, &line.Subtotal)
	if err != nil {
		return entity.CartLine{}, fmt.Errorf("failed to read cart line: %w", err)
	}
	return line, nil
}

func (r *cartRepository) RemoveLine(ctx context.Context, userID, productID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_lines cl
		USING carts c
		WHERE cl.cart_id = c.id AND c.user_id = $1 AND cl.product_id = $2`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check removed rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("cart line for product %s: %w", productID, entity.ErrNotFound)
	}
	return nil
}

func (r *cartRepository) Lines(ctx context.Context, userID string) ([]entity.CartLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT cl.product_id, p.name, cl.quantity, p.price_cents, cl.quantity * p.price_cents
		FROM carts c
		JOIN cart_lines cl ON cl.cart_id = c.id
		JOIN products p ON p.id = cl.product_id
		WHERE c.user_id = $1
		ORDER BY p.name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.CartLine
	for rows.Next() {
		var line entity.CartLine
		if err := rows.Scan(&line.ProductID, &line.Name, &line.Quantity, &line.UnitPrice, &line.Subtotal); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
