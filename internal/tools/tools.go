// Package tools wraps the analytics and persistence layers as
// self-describing operations consumable by the HTTP API and by an LLM
// agent's tool-calling surface.
package tools

import (
	"time"

	"github.com/Muditha98/LaptopInsights/internal/analytics"
	"github.com/Muditha98/LaptopInsights/internal/product"
	"github.com/Muditha98/LaptopInsights/services/store"
)

// Tools exposes the analytic operations over a Store
type Tools struct {
	store store.Store
}

// New creates the tool surface over a persistence collaborator
func New(s store.Store) *Tools {
	return &Tools{store: s}
}

// guard converts an unexpected panic into the standard failure
// envelope instead of propagating a stack trace to callers
func guard(resp *Response) {
	if r := recover(); r != nil {
		*resp = fail("internal error: %v", r)
	}
}

func validBrand(brand string) bool {
	return brand == "" || product.Brand(brand).Valid()
}

// PriceEntry is one row of the price listing
type PriceEntry struct {
	ProductID    string               `json:"product_id"`
	Brand        product.Brand        `json:"brand"`
	Model        string               `json:"model"`
	ProductURL   string               `json:"product_url"`
	CurrentPrice *float64             `json:"current_price"`
	Currency     string               `json:"currency"`
	Availability product.Availability `json:"availability"`
	Promo        *string              `json:"promo"`
	LastUpdated  time.Time            `json:"last_updated"`
}

// PricesParams are the optional filters for the price listing
type PricesParams struct {
	Brand       string
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly bool
}

// Prices returns current prices for all or filtered laptops, cheapest
// first with unpriced entries last
func (t *Tools) Prices(params PricesParams) (resp Response) {
	defer guard(&resp)

	if !validBrand(params.Brand) {
		return fail("Invalid brand '%s'. Must be 'HP' or 'Lenovo'.", params.Brand)
	}
	if params.MinPrice != nil && *params.MinPrice < 0 {
		return fail("min_price must be a positive number")
	}
	if params.MaxPrice != nil && *params.MaxPrice < 0 {
		return fail("max_price must be a positive number")
	}
	if params.MinPrice != nil && params.MaxPrice != nil && *params.MinPrice > *params.MaxPrice {
		return fail("min_price cannot be greater than max_price")
	}

	products, err := t.store.AllProducts()
	if err != nil {
		return fail("Error fetching laptop prices: %v", err)
	}

	listings := make([]analytics.Listing, 0, len(products))
	for _, p := range products {
		if params.Brand != "" && string(p.Brand) != params.Brand {
			continue
		}

		latest, err := t.store.LatestObservation(p.ProductID)
		if err != nil {
			return fail("Error fetching laptop prices: %v", err)
		}
		if latest == nil {
			continue
		}

		if params.MinPrice != nil && (latest.Price == nil || *latest.Price < *params.MinPrice) {
			continue
		}
		if params.MaxPrice != nil && (latest.Price == nil || *latest.Price > *params.MaxPrice) {
			continue
		}
		if params.InStockOnly && latest.Availability != product.InStock {
			continue
		}

		listings = append(listings, analytics.Listing{Product: p, Latest: latest})
	}

	analytics.SortByPrice(listings)

	entries := make([]PriceEntry, 0, len(listings))
	for _, l := range listings {
		entries = append(entries, PriceEntry{
			ProductID:    l.Product.ProductID,
			Brand:        l.Product.Brand,
			Model:        l.Product.Model,
			ProductURL:   l.Product.URL,
			CurrentPrice: l.Latest.Price,
			Currency:     l.Latest.Currency,
			Availability: l.Latest.Availability,
			Promo:        l.Latest.Promo,
			LastUpdated:  l.Latest.ObservedAt,
		})
	}

	return ok(map[string]interface{}{
		"count":    len(entries),
		"products": entries,
	})
}

// DetailStatistics is the statistics block of the product detail view
type DetailStatistics struct {
	MinPrice     *float64 `json:"min_price"`
	MaxPrice     *float64 `json:"max_price"`
	AvgPrice     *float64 `json:"avg_price"`
	TotalRecords int64    `json:"total_records"`
}

// Details returns detailed information for one laptop including its
// price statistics
func (t *Tools) Details(productID string) (resp Response) {
	defer guard(&resp)

	p, err := t.findProduct(productID)
	if err != nil {
		return fail("Error fetching laptop details: %v", err)
	}
	if p == nil {
		return fail("Product '%s' not found. Use the price listing to see available products.", productID)
	}

	latest, err := t.store.LatestObservation(productID)
	if err != nil {
		return fail("Error fetching laptop details: %v", err)
	}
	if latest == nil {
		return fail("No price data available for '%s'", productID)
	}

	stats, err := t.store.Statistics(productID)
	if err != nil {
		return fail("Error fetching laptop details: %v", err)
	}

	detailStats := DetailStatistics{}
	if stats != nil {
		detailStats = DetailStatistics{
			MinPrice:     stats.MinPrice,
			MaxPrice:     stats.MaxPrice,
			AvgPrice:     stats.AvgPrice,
			TotalRecords: stats.Count,
		}
	}

	return ok(map[string]interface{}{
		"product_id":    p.ProductID,
		"brand":         p.Brand,
		"model":         p.Model,
		"product_url":   p.URL,
		"current_price": latest.Price,
		"currency":      latest.Currency,
		"availability":  latest.Availability,
		"promo":         latest.Promo,
		"last_updated":  latest.ObservedAt,
		"statistics":    detailStats,
	})
}

// historyFetchLimit bounds how many observations the trend fetches
// before windowing by date
const historyFetchLimit = 1000

// visualizationPoints bounds the history points returned for charting
const visualizationPoints = 50

// Trend returns price history and trend analysis for a laptop over a
// time window in days
func (t *Tools) Trend(productID string, days int) (resp Response) {
	defer guard(&resp)

	if days < 1 || days > 365 {
		return fail("days must be between 1 and 365")
	}

	p, err := t.findProduct(productID)
	if err != nil {
		return fail("Error fetching price trend: %v", err)
	}
	if p == nil {
		return fail("Product '%s' not found", productID)
	}

	history, err := t.store.History(productID, historyFetchLimit)
	if err != nil {
		return fail("Error fetching price trend: %v", err)
	}
	if len(history) == 0 {
		return fail("No price history available for '%s'", productID)
	}

	trend, window, err := analytics.ComputeTrend(history, days, time.Now())
	if err != nil {
		return fail("%v", err)
	}

	if len(window) > visualizationPoints {
		window = window[len(window)-visualizationPoints:]
	}

	return ok(map[string]interface{}{
		"product_id":  p.ProductID,
		"brand":       p.Brand,
		"model":       p.Model,
		"period_days": days,
		"trend":       trend,
		"history":     window,
	})
}

// ComparisonEntry is one row of the price comparison
type ComparisonEntry struct {
	ProductID    string               `json:"product_id"`
	Brand        product.Brand        `json:"brand"`
	Model        string               `json:"model"`
	CurrentPrice *float64             `json:"current_price"`
	Currency     string               `json:"currency"`
	Availability product.Availability `json:"availability"`
	MinPrice     *float64             `json:"min_price"`
	MaxPrice     *float64             `json:"max_price"`
	AvgPrice     *float64             `json:"avg_price"`
	LastUpdated  time.Time            `json:"last_updated"`
}

// Compare compares current prices across laptops, cheapest first. With
// no ids it compares the whole catalog.
func (t *Tools) Compare(productIDs []string) (resp Response) {
	defer guard(&resp)

	products, err := t.store.AllProducts()
	if err != nil {
		return fail("Error comparing laptop prices: %v", err)
	}

	if len(productIDs) > 0 {
		wanted := make(map[string]bool, len(productIDs))
		for _, id := range productIDs {
			wanted[id] = true
		}
		filtered := products[:0:0]
		for _, p := range products {
			if wanted[p.ProductID] {
				filtered = append(filtered, p)
			}
		}
		products = filtered

		if len(products) == 0 {
			return fail("None of the specified product_ids were found")
		}
	}

	listings := make([]analytics.Listing, 0, len(products))
	statsByID := make(map[string]*product.Statistics, len(products))
	for _, p := range products {
		latest, err := t.store.LatestObservation(p.ProductID)
		if err != nil {
			return fail("Error comparing laptop prices: %v", err)
		}
		if latest == nil {
			continue
		}

		stats, err := t.store.Statistics(p.ProductID)
		if err != nil {
			return fail("Error comparing laptop prices: %v", err)
		}

		statsByID[p.ProductID] = stats
		listings = append(listings, analytics.Listing{Product: p, Latest: latest})
	}

	analytics.SortByPrice(listings)

	comparison := make([]ComparisonEntry, 0, len(listings))
	for _, l := range listings {
		entry := ComparisonEntry{
			ProductID:    l.Product.ProductID,
			Brand:        l.Product.Brand,
			Model:        l.Product.Model,
			CurrentPrice: l.Latest.Price,
			Currency:     l.Latest.Currency,
			Availability: l.Latest.Availability,
			LastUpdated:  l.Latest.ObservedAt,
		}
		if stats := statsByID[l.Product.ProductID]; stats != nil {
			entry.MinPrice = stats.MinPrice
			entry.MaxPrice = stats.MaxPrice
			entry.AvgPrice = stats.AvgPrice
		}
		comparison = append(comparison, entry)
	}

	return ok(map[string]interface{}{
		"count":      len(comparison),
		"comparison": comparison,
	})
}

// AvailabilityDetail is one row of the availability listing
type AvailabilityDetail struct {
	ProductID    string               `json:"product_id"`
	Brand        product.Brand        `json:"brand"`
	Model        string               `json:"model"`
	Availability product.Availability `json:"availability"`
	Price        *float64             `json:"price"`
	LastUpdated  time.Time            `json:"last_updated"`
}

// Availability returns stock status for all or brand-filtered laptops,
// in-stock products first, then cheapest first within each group
func (t *Tools) Availability(brand string) (resp Response) {
	defer guard(&resp)

	if !validBrand(brand) {
		return fail("Invalid brand '%s'. Must be 'HP' or 'Lenovo'.", brand)
	}

	products, err := t.store.AllProducts()
	if err != nil {
		return fail("Error checking availability: %v", err)
	}

	listings := make([]analytics.Listing, 0, len(products))
	inStockCount := 0
	outOfStockCount := 0

	for _, p := range products {
		if brand != "" && string(p.Brand) != brand {
			continue
		}

		latest, err := t.store.LatestObservation(p.ProductID)
		if err != nil {
			return fail("Error checking availability: %v", err)
		}
		if latest == nil {
			continue
		}

		if latest.Availability == product.InStock {
			inStockCount++
		} else {
			outOfStockCount++
		}
		listings = append(listings, analytics.Listing{Product: p, Latest: latest})
	}

	analytics.SortForAvailability(listings)

	details := make([]AvailabilityDetail, 0, len(listings))
	for _, l := range listings {
		details = append(details, AvailabilityDetail{
			ProductID:    l.Product.ProductID,
			Brand:        l.Product.Brand,
			Model:        l.Product.Model,
			Availability: l.Latest.Availability,
			Price:        l.Latest.Price,
			LastUpdated:  l.Latest.ObservedAt,
		})
	}

	return ok(map[string]interface{}{
		"summary": map[string]interface{}{
			"total_products": len(details),
			"in_stock":       inStockCount,
			"out_of_stock":   outOfStockCount,
		},
		"details": details,
	})
}

// Deals finds laptops priced below their historical average by at
// least thresholdPercent, best deals first
func (t *Tools) Deals(thresholdPercent float64, brand string) (resp Response) {
	defer guard(&resp)

	if thresholdPercent < 0 || thresholdPercent > 100 {
		return fail("threshold_percent must be between 0 and 100")
	}
	if !validBrand(brand) {
		return fail("Invalid brand '%s'. Must be 'HP' or 'Lenovo'.", brand)
	}

	products, err := t.store.AllProducts()
	if err != nil {
		return fail("Error finding deals: %v", err)
	}

	inputs := make([]analytics.DealInput, 0, len(products))
	for _, p := range products {
		if brand != "" && string(p.Brand) != brand {
			continue
		}

		latest, err := t.store.LatestObservation(p.ProductID)
		if err != nil {
			return fail("Error finding deals: %v", err)
		}
		stats, err := t.store.Statistics(p.ProductID)
		if err != nil {
			return fail("Error finding deals: %v", err)
		}

		inputs = append(inputs, analytics.DealInput{Product: p, Latest: latest, Stats: stats})
	}

	deals, err := analytics.FindDeals(inputs, thresholdPercent)
	if err != nil {
		return fail("%v", err)
	}

	return ok(map[string]interface{}{
		"count":             len(deals),
		"threshold_percent": thresholdPercent,
		"deals":             deals,
	})
}

// findProduct returns the catalog entry for productID, or nil when the
// id is unknown
func (t *Tools) findProduct(productID string) (*product.Product, error) {
	products, err := t.store.AllProducts()
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ProductID == productID {
			return &p, nil
		}
	}
	return nil, nil
}
