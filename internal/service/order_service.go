package service

import (
	"context"

	"github.com/tiendaonline/backend/internal/entity"
	"github.com/tiendaonline/backend/internal/repository"
)

// OrderService serves order history reads.
type OrderService struct {
	orders repository.OrderRepository
}

func NewOrderService(orders repository.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// RecentOrders returns the caller's latest orders with their lines.
func (s *OrderService) RecentOrders(ctx context.Context, id entity.Identity, limit int) ([]entity.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.orders.FindRecentByUser(ctx, id.UserID, limit)
}
