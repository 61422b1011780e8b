package scraper

import (
	"fmt"

	"github.com/Muditha98/LaptopInsights/internal/product"
)

// hpSelectors covers hp.com/us-en/shop product pages
var hpSelectors = Selectors{
	Price: []string{
		`[data-testid="product-price"]`,
		`.price-value`,
		`[class*="price"]`,
		`span[class*="Price"]`,
		`div[class*="price"]`,
	},
	Availability: []string{
		`[data-testid="availability"]`,
		`.availability`,
		`[class*="stock"]`,
		`[class*="availability"]`,
		`button[class*="add-to-cart"]`,
		`button[class*="AddToCart"]`,
	},
	Promo: []string{
		`[class*="promo"]`,
		`[class*="offer"]`,
		`[class*="badge"]`,
		`[data-testid*="promo"]`,
		`.promotional-message`,
		`div[class*="Promotion"]`,
	},
	PurchaseActions: []string{
		"add to cart",
	},
}

// lenovoSelectors covers lenovo.com/us/en product pages
var lenovoSelectors = Selectors{
	Price: []string{
		`[data-price]`,
		`.price`,
		`[class*="price"]`,
		`[class*="Price"]`,
		`span[class*="saleprice"]`,
		`.pricingSummary-price`,
	},
	Availability: []string{
		`[class*="availability"]`,
		`[class*="stock"]`,
		`button[class*="add-to-cart"]`,
		`button[class*="addToCart"]`,
		`.availability-msg`,
		`[data-track*="add-to-cart"]`,
	},
	Promo: []string{
		`[class*="promo"]`,
		`[class*="offer"]`,
		`[class*="badge"]`,
		`[class*="discount"]`,
		`[class*="sale"]`,
		`.promotional-banner`,
		`[data-track*="promo"]`,
	},
	PurchaseActions: []string{
		"add to cart",
		"buy now",
		"customize",
	},
}

// SelectorsForBrand returns the selector configuration for a brand
func SelectorsForBrand(brand product.Brand) (Selectors, error) {
	switch brand {
	case product.BrandHP:
		return hpSelectors, nil
	case product.BrandLenovo:
		return lenovoSelectors, nil
	default:
		return Selectors{}, fmt.Errorf("unsupported brand: %s", brand)
	}
}
