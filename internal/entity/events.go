package entity

import "time"

// OrderPlaced is emitted after a checkout transaction commits, for
// downstream consumers (notifications, analytics). Publishing is
// best-effort; the order is already durable when this fires.
type OrderPlaced struct {
	OrderID  string      `json:"order_id"`
	UserID   string      `json:"user_id"`
	Total    Cents       `json:"total"`
	Status   string      `json:"status"`
	Lines    []OrderLine `json:"items"`
	PlacedAt time.Time   `json:"placed_at"`
}
