package store

import (
	"github.com/Muditha98/LaptopInsights/internal/product"
)

// Store is the persistence collaborator consumed by the analytics and
// worker layers. Observations are append-only; nothing here mutates or
// deletes a recorded price.
type Store interface {
	// UpsertProduct inserts a catalog entry or refreshes its mutable fields
	UpsertProduct(p product.Product) error

	// AllProducts returns every catalog entry ordered by brand then model
	AllProducts() ([]product.Product, error)

	// AppendObservation records one scrape result
	AppendObservation(obs product.Observation) error

	// LatestObservation returns the most recent observation for a
	// product, or nil when none exists
	LatestObservation(productID string) (*product.Observation, error)

	// History returns observations newest first, bounded by limit
	History(productID string, limit int) ([]product.Observation, error)

	// Statistics summarizes the non-null prices for a product, or nil
	// when no observations exist
	Statistics(productID string) (*product.Statistics, error)
}
