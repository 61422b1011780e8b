package scraper

import (
	"github.com/Muditha98/LaptopInsights/internal/product"
)

// Scraper is the contract for one product's scrape pipeline
type Scraper interface {
	// Scrape loads the product page and extracts one observation
	Scrape() (*product.Observation, error)

	// GetName returns the scraper's name for logging and identification
	GetName() string

	// GetProduct returns the catalog entry this scraper tracks
	GetProduct() product.Product
}

// Selectors contains the brand-specific ordered locator strategies.
// Each list is tried in order and the first plausible match wins; the
// lists for one brand are never mixed with another's.
type Selectors struct {
	// Price selectors, most specific first
	Price []string

	// Availability selectors yielding classifiable stock text
	Availability []string

	// Promo selectors; up to five matches are collected per selector
	Promo []string

	// PurchaseActions are button captions whose mere presence implies
	// the product can be bought. Used as the availability fallback when
	// no selector yields classifiable text.
	PurchaseActions []string
}
