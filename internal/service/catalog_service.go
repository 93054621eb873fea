package service

import (
	"context"

	"github.com/tiendaonline/backend/internal/entity"
	"github.com/tiendaonline/backend/internal/repository"
)

// CatalogService serves read-only filtered product listings.
type CatalogService struct {
	products repository.ProductRepository
}

func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

func (s *CatalogService) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	return s.products.Filter(ctx, filter)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (entity.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.products.Categories(ctx)
}
