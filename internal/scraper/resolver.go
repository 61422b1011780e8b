package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Muditha98/LaptopInsights/internal/product"
)

var (
	// priceRe matches prices like "$1,234.56" or "1234" in element text
	priceRe = regexp.MustCompile(`\$?\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`)

	// pageScanRe is stricter for the full-page fallback: a dollar sign
	// must be present, otherwise every number on the page would match
	pageScanRe = regexp.MustCompile(`\$\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`)
)

// availability classification terms, checked in this exact order. The
// order matters: "unavailable" contains "available", so the
// out-of-stock list must be probed first.
var (
	outOfStockTerms = []string{"out of stock", "unavailable", "sold out"}
	backorderTerms  = []string{"backorder", "pre-order"}
	inStockTerms    = []string{"in stock", "add to cart", "buy now", "available"}
)

// Resolver extracts observation fields from a rendered document using
// an ordered fallback chain per field. A field that cannot be located
// degrades to null/Unknown; the resolver never fails outright.
type Resolver struct {
	Selectors  Selectors
	PriceFloor float64
}

// NewResolver creates a resolver for one brand's selector configuration
func NewResolver(selectors Selectors, priceFloor float64) *Resolver {
	return &Resolver{
		Selectors:  selectors,
		PriceFloor: priceFloor,
	}
}

// ExtractPrice tries each price selector in order and returns the first
// text that parses to a positive amount. When every selector misses it
// scans the whole document for currency-like substrings and returns the
// first one above the plausibility floor. Returns nil when nothing
// plausible is found.
func (r *Resolver) ExtractPrice(doc *goquery.Document) *float64 {
	for _, selector := range r.Selectors.Price {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := cleanText(sel.Text())
		if text == "" {
			continue
		}
		if price, ok := parsePrice(text); ok {
			return &price
		}
	}

	// Fallback: scan the entire rendered document. Incidental small
	// numbers (shipping fees, review counts) are rejected by the floor.
	for _, match := range pageScanRe.FindAllStringSubmatch(doc.Text(), -1) {
		price, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
		if err != nil {
			continue
		}
		if price > r.PriceFloor {
			return &price
		}
	}

	return nil
}

// parsePrice applies the price pattern to element text and returns the
// parsed amount when positive
func parsePrice(text string) (float64, bool) {
	match := priceRe.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}

// ExtractAvailability classifies stock status from the first selector
// whose text contains a recognized term. Out-of-stock terms are probed
// before backorder and in-stock terms; a string such as "Temporarily
// Out of Stock" classifies as OutOfStock even though it also matches
// nothing else. When no selector yields classifiable text, the
// presence of any purchase-action button implies InStock.
func (r *Resolver) ExtractAvailability(doc *goquery.Document) product.Availability {
	for _, selector := range r.Selectors.Availability {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := strings.ToLower(cleanText(sel.Text()))
		if text == "" {
			continue
		}
		if availability, ok := classifyAvailability(text); ok {
			return availability
		}
	}

	// Presence check, not a visibility check. A greyed-out "Add to
	// cart" would be misclassified here; accepted limitation.
	if r.hasPurchaseAction(doc) {
		return product.InStock
	}

	return product.Unknown
}

// classifyAvailability maps lower-cased stock text to a status
func classifyAvailability(text string) (product.Availability, bool) {
	for _, term := range outOfStockTerms {
		if strings.Contains(text, term) {
			return product.OutOfStock, true
		}
	}
	for _, term := range backorderTerms {
		if strings.Contains(text, term) {
			return product.Backorder, true
		}
	}
	for _, term := range inStockTerms {
		if strings.Contains(text, term) {
			return product.InStock, true
		}
	}
	return product.Unknown, false
}

// hasPurchaseAction reports whether any button on the page carries a
// purchase-action caption
func (r *Resolver) hasPurchaseAction(doc *goquery.Document) bool {
	found := false
	doc.Find("button").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := strings.ToLower(cleanText(s.Text()))
		for _, action := range r.Selectors.PurchaseActions {
			if strings.Contains(text, action) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// ExtractPromo collects up to five matches per promo selector across
// all promo selectors, drops strings shorter than six characters,
// deduplicates exact text and joins the survivors with " | ". Returns
// nil when nothing survives filtering.
func (r *Resolver) ExtractPromo(doc *goquery.Document) *string {
	var promos []string
	seen := make(map[string]bool)

	for _, selector := range r.Selectors.Promo {
		count := 0
		doc.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
			if count >= 5 {
				return false
			}
			count++

			text := cleanText(s.Text())
			if len(text) < 6 || seen[text] {
				return true
			}
			seen[text] = true
			promos = append(promos, text)
			return true
		})
	}

	if len(promos) == 0 {
		return nil
	}

	joined := strings.Join(promos, " | ")
	return &joined
}

// ExtractCurrency returns the currency code. Both supported storefronts
// are US-only, so this is fixed rather than extracted.
func (r *Resolver) ExtractCurrency(doc *goquery.Document) string {
	return "USD"
}

// cleanText collapses runs of whitespace and trims the result
func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
