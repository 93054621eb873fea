package entity

import (
	"time"
)

// User is a registered customer account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"` // "customer" or "admin"
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the authenticated caller, carried explicitly through
// every operation that needs to know who is acting.
type Identity struct {
	UserID string
	Name   string
}

// Category groups products in the catalog.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product represents a product in the store.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Cents  `json:"price"`
	ImageURL    string `json:"image_url"`
	CategoryID  string `json:"category_id"`
	Stock       int    `json:"stock"`
}

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID string
	MinPrice   *Cents
	MaxPrice   *Cents
	Search     string
	Sort       ProductSort
}

type ProductSort string

const (
	SortByName      ProductSort = "name"
	SortByPriceAsc  ProductSort = "price_asc"
	SortByPriceDesc ProductSort = "price_desc"
)

// CartLine is one (product, quantity) pair in a user's cart, joined
// against the live catalog price. Subtotal is informational only; the
// checkout recomputes totals inside its own transaction.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice Cents  `json:"unit_price"`
	Subtotal  Cents  `json:"subtotal"`
}

// Cart is the listing view of a user's cart.
type Cart struct {
	Lines []CartLine `json:"items"`
	Total Cents      `json:"total"`
}

// Address is a shipping address snapshot. A fresh row is written per
// checkout and never updated, so historical orders keep the exact
// street/city/state/postal values used at purchase time.
type Address struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	CreatedAt  time.Time `json:"-"`
}

// Order is a customer order. Total is computed server-side at checkout
// and immutable afterwards.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"-"`
	Total         Cents       `json:"total"`
	Status        string      `json:"status"`
	AddressID     string      `json:"address_id"`
	PaymentMethod string      `json:"payment_method"`
	Lines         []OrderLine `json:"items,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// OrderLine is an immutable record of one product's quantity and
// purchase-time unit price within an order.
type OrderLine struct {
	OrderID   string `json:"-"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice Cents  `json:"unit_price"`
}

// CheckoutLine is a cart line joined with the product's current price
// and stock, read under row lock inside the checkout transaction.
type CheckoutLine struct {
	ProductID string
	Quantity  int
	UnitPrice Cents
	Stock     int
}
