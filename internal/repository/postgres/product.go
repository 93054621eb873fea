package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tiendaonline/backend/internal/entity"
	"github.com/tiendaonline/backend/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository backed by Postgres.
func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = "p.id, p.name, p.description, p.price_cents, p.image_url, p.category_id, p.stock"

// buildFilterQuery composes the catalog listing query from the filter.
// Price comparison is numeric on price_cents, never lexicographic.
func buildFilterQuery(filter entity.ProductFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT " + productColumns + " FROM products p WHERE 1=1")

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CategoryID != "" {
		sb.WriteString(" AND p.category_id = " + arg(filter.CategoryID))
	}
	if filter.MinPrice != nil {
		sb.WriteString(" AND p.price_cents >= " + arg(int64(*filter.MinPrice)))
	}
	if filter.MaxPrice != nil {
		sb.WriteString(" AND p.price_cents <= " + arg(int64(*filter.MaxPrice)))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		sb.WriteString(" AND (p.name ILIKE " + p + " OR p.description ILIKE " + p + ")")
	}

	switch filter.Sort {
	case entity.SortByPriceAsc:
		sb.WriteString(" ORDER BY p.price_cents ASC")
	case entity.SortByPriceDesc:
		sb.WriteString(" ORDER BY p.price_cents DESC")
	default:
		sb.WriteString(" ORDER BY p.name ASC")
	}

	return sb.String(), args
}

func (r *productRepository) Filter(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	query, args := buildFilterQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CategoryID, &p.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepository) FindByID(ctx context.Context, id string) (entity.Product, error) {
	var p entity.Product
	err := r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products p WHERE p.id = $1", id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CategoryID, &p.Stock)
	if err != nil {
		return entity.Product{}, notFound(err)
	}
	return p, nil
}

func (r *productRepository) Categories(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *productRepository) Seed(ctx context.Context, categories []entity.Category, products []entity.Product) error {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil // already seeded
	}

	for _, c := range categories {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO categories (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING",
			c.ID, c.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.ID, err)
		}
	}

	for _, p := range products {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO products (id, name, description, price_cents, image_url, category_id, stock) VALUES ($1, $2, $3, $4, $5, $6, $7)",
			p.ID, p.Name, p.Description, int64(p.Price), p.ImageURL, p.CategoryID, p.Stock,
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}
	return nil
}
