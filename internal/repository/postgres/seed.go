package postgres

import "github.com/tiendaonline/backend/internal/entity"

// DefaultCategories and DefaultProducts seed an empty catalog for
// local development.
func DefaultCategories() []entity.Category {
	return []entity.Category{
		{ID: "cat-electronics", Name: "Electronics"},
		{ID: "cat-furniture", Name: "Furniture"},
		{ID: "cat-home", Name: "Home"},
		{ID: "cat-accessories", Name: "Accessories"},
	}
}

func DefaultProducts() []entity.Product {
	return []entity.Product{
		{ID: "prod-001", Name: "Wireless Noise-Cancelling Headphones", Description: "Premium over-ear headphones with active noise cancellation and 30-hour battery life.", Price: 34999, ImageURL: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400", CategoryID: "cat-electronics", Stock: 50},
		{ID: "prod-002", Name: "Mechanical Keyboard RGB", Description: "Cherry MX switches with per-key RGB lighting and aluminum frame.", Price: 17999, ImageURL: "https://images.unsplash.com/photo-1618384887929-16ec33fab9ef?w=400", CategoryID: "cat-electronics", Stock: 120},
		{ID: "prod-003", Name: "Ultrawide Curved Monitor 34\"", Description: "UWQHD 3440x1440 144Hz IPS panel with USB-C connectivity.", Price: 69999, ImageURL: "https://images.unsplash.com/photo-1527443224154-c4a3942d3acf?w=400", CategoryID: "cat-electronics", Stock: 30},
		{ID: "prod-004", Name: "Ergonomic Office Chair", Description: "Adjustable lumbar support, breathable mesh, and 4D armrests.", Price: 54999, ImageURL: "https://images.unsplash.com/photo-1592078615290-033ee584e267?w=400", CategoryID: "cat-furniture", Stock: 25},
		{ID: "prod-005", Name: "Smart LED Desk Lamp", Description: "Adjustable color temperature, brightness levels, and USB charging port.", Price: 8999, ImageURL: "https://images.unsplash.com/photo-1507473885765-e6ed057ab6fe?w=400", CategoryID: "cat-home", Stock: 200},
		{ID: "prod-006", Name: "Premium Laptop Backpack", Description: "Water-resistant 17\" laptop compartment with anti-theft design.", Price: 12999, ImageURL: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400", CategoryID: "cat-accessories", Stock: 80},
	}
}
