package product

import "time"

// Brand identifies a supported laptop storefront
type Brand string

const (
	BrandHP     Brand = "HP"
	BrandLenovo Brand = "Lenovo"
)

// Valid reports whether the brand is one of the supported storefronts
func (b Brand) Valid() bool {
	return b == BrandHP || b == BrandLenovo
}

// Availability represents the stock status extracted from a product page
type Availability string

const (
	InStock    Availability = "In Stock"
	OutOfStock Availability = "Out of Stock"
	Backorder  Availability = "Backorder"
	Unknown    Availability = "Unknown"
)

// Product represents one catalog entry to track
type Product struct {
	ProductID string `json:"product_id"`
	Brand     Brand  `json:"brand"`
	Model     string `json:"model"`
	URL       string `json:"product_url"`
}

// Observation is one timestamped scrape result for a product.
// Price is nil when extraction failed entirely; the record is still
// appended so gaps in coverage stay visible in the history.
type Observation struct {
	ProductID    string       `json:"product_id"`
	Price        *float64     `json:"price"`
	Currency     string       `json:"currency"`
	Availability Availability `json:"availability"`
	Promo        *string      `json:"promo"`
	ObservedAt   time.Time    `json:"observed_at"`
}

// Statistics summarizes the non-null prices recorded for a product
type Statistics struct {
	ProductID string   `json:"product_id"`
	MinPrice  *float64 `json:"min_price"`
	MaxPrice  *float64 `json:"max_price"`
	AvgPrice  *float64 `json:"avg_price"`
	Count     int64    `json:"total_records"`
}
