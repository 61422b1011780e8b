package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"

	"github.com/Muditha98/LaptopInsights/internal/product"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	assert.NoError(t, err)
	return doc
}

func testResolver() *Resolver {
	return NewResolver(Selectors{
		Price:           []string{".sale-price", ".price"},
		Availability:    []string{".stock-status", ".inventory"},
		Promo:           []string{".promo-banner"},
		PurchaseActions: []string{"add to cart", "buy now"},
	}, 100)
}

func TestExtractPriceSelectorChain(t *testing.T) {
	r := testResolver()

	// First selector wins when it yields a parseable price
	doc := docFrom(t, `<div class="sale-price">$1,299.99</div><div class="price">$1,499.99</div>`)
	price := r.ExtractPrice(doc)
	assert.NotNil(t, price)
	assert.Equal(t, 1299.99, *price)

	// Chain falls through an empty first selector
	doc = docFrom(t, `<div class="sale-price"></div><div class="price">$899.00</div>`)
	price = r.ExtractPrice(doc)
	assert.NotNil(t, price)
	assert.Equal(t, 899.0, *price)

	// Chain falls through unparseable text
	doc = docFrom(t, `<div class="sale-price">Call for price</div><div class="price">749</div>`)
	price = r.ExtractPrice(doc)
	assert.NotNil(t, price)
	assert.Equal(t, 749.0, *price)
}

func TestExtractPriceFormats(t *testing.T) {
	r := testResolver()

	cases := map[string]float64{
		"$1,299.99":         1299.99,
		"1299.99":           1299.99,
		"$1299":             1299,
		"1234":              1234,
		"Now only $649.50!": 649.5,
	}

	for text, want := range cases {
		doc := docFrom(t, `<div class="price">`+text+`</div>`)
		price := r.ExtractPrice(doc)
		assert.NotNil(t, price, "text %q", text)
		assert.Equal(t, want, *price, "text %q", text)
	}
}

func TestExtractPricePageScanFallback(t *testing.T) {
	r := testResolver()

	// No configured selector matches; the page scan picks the first
	// dollar amount above the floor
	doc := docFrom(t, `<body><p>Free shipping over $35</p><span>From $1,099.00</span></body>`)
	price := r.ExtractPrice(doc)
	assert.NotNil(t, price)
	assert.Equal(t, 1099.0, *price)

	// Page scan requires a dollar sign
	doc = docFrom(t, `<body><p>Model 1099 in review</p></body>`)
	assert.Nil(t, r.ExtractPrice(doc))

	// Amounts at or below the floor never qualify
	doc = docFrom(t, `<body><p>Save $100 today</p></body>`)
	assert.Nil(t, r.ExtractPrice(doc))
}

func TestExtractPriceMissing(t *testing.T) {
	r := testResolver()
	doc := docFrom(t, `<body><p>Coming soon</p></body>`)
	assert.Nil(t, r.ExtractPrice(doc))
}

func TestExtractAvailabilityClassification(t *testing.T) {
	r := testResolver()

	cases := map[string]product.Availability{
		"In Stock":               product.InStock,
		"Add to cart":            product.InStock,
		"Available for delivery": product.InStock,
		"Out of Stock":           product.OutOfStock,
		"Currently unavailable":  product.OutOfStock,
		"Sold Out":               product.OutOfStock,
		"Ships on backorder":     product.Backorder,
		"Pre-order now":          product.Backorder,
	}

	for text, want := range cases {
		doc := docFrom(t, `<div class="stock-status">`+text+`</div>`)
		assert.Equal(t, want, r.ExtractAvailability(doc), "text %q", text)
	}
}

func TestExtractAvailabilityPrecedence(t *testing.T) {
	r := testResolver()

	// Contains both an out-of-stock term and an in-stock term; the
	// out-of-stock classification must win
	doc := docFrom(t, `<div class="stock-status">Temporarily Out of Stock, will be available soon</div>`)
	assert.Equal(t, product.OutOfStock, r.ExtractAvailability(doc))

	// "unavailable" contains "available" and still means out of stock
	doc = docFrom(t, `<div class="stock-status">This item is unavailable</div>`)
	assert.Equal(t, product.OutOfStock, r.ExtractAvailability(doc))
}

func TestExtractAvailabilityPurchaseActionFallback(t *testing.T) {
	r := testResolver()

	// No availability selector matches but a buy button exists
	doc := docFrom(t, `<body><button>Add To Cart</button></body>`)
	assert.Equal(t, product.InStock, r.ExtractAvailability(doc))

	// Unclassifiable text in the selector also falls through to the
	// button check
	doc = docFrom(t, `<div class="stock-status">Check nearby stores</div><button>Buy Now</button>`)
	assert.Equal(t, product.InStock, r.ExtractAvailability(doc))
}

func TestExtractAvailabilityUnknown(t *testing.T) {
	r := testResolver()
	doc := docFrom(t, `<body><button>Compare</button><p>Details</p></body>`)
	assert.Equal(t, product.Unknown, r.ExtractAvailability(doc))
}

func TestExtractPromoCollection(t *testing.T) {
	r := testResolver()

	doc := docFrom(t, `
		<div class="promo-banner">Save $200 instantly</div>
		<div class="promo-banner">Free shipping on orders</div>`)
	promo := r.ExtractPromo(doc)
	assert.NotNil(t, promo)
	assert.Equal(t, "Save $200 instantly | Free shipping on orders", *promo)
}

func TestExtractPromoFiltersAndDedupes(t *testing.T) {
	r := testResolver()

	// Short strings are dropped, duplicates collapse to one
	doc := docFrom(t, `
		<div class="promo-banner">Sale!</div>
		<div class="promo-banner">Save $200 instantly</div>
		<div class="promo-banner">Save $200 instantly</div>`)
	promo := r.ExtractPromo(doc)
	assert.NotNil(t, promo)
	assert.Equal(t, "Save $200 instantly", *promo)
}

func TestExtractPromoCapsPerSelector(t *testing.T) {
	r := testResolver()

	var b strings.Builder
	for i := 0; i < 8; i++ {
		b.WriteString(`<div class="promo-banner">Promotion number ` + string(rune('A'+i)) + ` here</div>`)
	}
	promo := r.ExtractPromo(docFrom(t, b.String()))
	assert.NotNil(t, promo)
	assert.Len(t, strings.Split(*promo, " | "), 5)
}

func TestExtractPromoEmpty(t *testing.T) {
	r := testResolver()
	doc := docFrom(t, `<body><p>No offers today</p></body>`)
	assert.Nil(t, r.ExtractPromo(doc))
}

func TestExtractCurrency(t *testing.T) {
	r := testResolver()
	doc := docFrom(t, `<body></body>`)
	assert.Equal(t, "USD", r.ExtractCurrency(doc))
}

func TestSelectorsForBrand(t *testing.T) {
	hp, err := SelectorsForBrand(product.BrandHP)
	assert.NoError(t, err)
	assert.NotEmpty(t, hp.Price)
	assert.NotEmpty(t, hp.Availability)

	lenovo, err := SelectorsForBrand(product.BrandLenovo)
	assert.NoError(t, err)
	assert.NotEmpty(t, lenovo.Price)

	// Brand selector sets are disjoint configurations
	assert.NotEqual(t, hp.Price, lenovo.Price)

	_, err = SelectorsForBrand(product.Brand("Dell"))
	assert.Error(t, err)
}
