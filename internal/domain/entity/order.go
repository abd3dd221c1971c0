package entity

import (
	"encoding/json"
	"time"
)

// Order statuses, in rough lifecycle order.
const (
	OrderPending    = "Pending"
	OrderProcessing = "Processing"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"
)

// ValidOrderStatus reports whether s is a recognized order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderLine is one purchased product and its count.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Count     int    `json:"count"`
}

// Order records a settled purchase. Payment holds the gateway's transaction
// result as an opaque JSON snapshot.
type Order struct {
	ID        string          `json:"id"`
	BuyerID   string          `json:"buyer_id"`
	Lines     []OrderLine     `json:"products"`
	Payment   json.RawMessage `json:"payment,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
