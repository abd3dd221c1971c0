package entity

import "time"

// Product is a catalog item. Prices are stored in cents to avoid float
// arithmetic on money. Photos live in object storage; only the URL is kept.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	CategoryID  string    `json:"category_id"`
	Quantity    int       `json:"quantity"`
	Shipping    bool      `json:"shipping"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
