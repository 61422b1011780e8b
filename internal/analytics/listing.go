package analytics

import (
	"sort"

	"github.com/Muditha98/LaptopInsights/internal/product"
)

// Listing pairs a product with its latest observation for projection
// and sorting. Latest may be nil when a product has never been scraped.
type Listing struct {
	Product product.Product      `json:"product"`
	Latest  *product.Observation `json:"latest"`
}

// listingPrice returns the sort key for a listing's price. Missing
// observations and null prices sort after every real price.
func listingPrice(l Listing) (float64, bool) {
	if l.Latest == nil || l.Latest.Price == nil {
		return 0, false
	}
	return *l.Latest.Price, true
}

// SortByPrice orders listings ascending by current price with
// null/missing prices last. The sort is stable, so repeated calls over
// unchanged data yield identical output.
func SortByPrice(listings []Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		pi, iOK := listingPrice(listings[i])
		pj, jOK := listingPrice(listings[j])
		if iOK != jOK {
			return iOK
		}
		if !iOK {
			return false
		}
		return pi < pj
	})
}

// SortForAvailability orders in-stock listings before everything else,
// then ascending by price within each group.
func SortForAvailability(listings []Listing) {
	inStock := func(l Listing) bool {
		return l.Latest != nil && l.Latest.Availability == product.InStock
	}

	sort.SliceStable(listings, func(i, j int) bool {
		si, sj := inStock(listings[i]), inStock(listings[j])
		if si != sj {
			return si
		}
		pi, iOK := listingPrice(listings[i])
		pj, jOK := listingPrice(listings[j])
		if iOK != jOK {
			return iOK
		}
		if !iOK {
			return false
		}
		return pi < pj
	})
}
