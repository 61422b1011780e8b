package scraper

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Muditha98/LaptopInsights/config"
	"github.com/Muditha98/LaptopInsights/internal/product"
	apperrors "github.com/Muditha98/LaptopInsights/pkg/errors"
	"github.com/Muditha98/LaptopInsights/services/cache"
)

type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(key string) ([]byte, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, errors.New("cache miss")
}

func (m *mockCache) Set(key string, value []byte, expiration time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func testProduct() product.Product {
	return product.Product{
		ProductID: "hp_probook_450",
		Brand:     product.BrandHP,
		Model:     "ProBook 450 G10",
		URL:       "https://www.hp.com/us-en/shop/probook-450",
	}
}

func testScraper(t *testing.T, html string, fetchErr error, cacheSvc cache.CacheService) *ProductScraper {
	t.Helper()
	s, err := NewProductScraper(testProduct(), config.ScrapeConfig{
		PriceFloor: 100,
		BlockTime:  5 * time.Minute,
	}, nil, cacheSvc)
	assert.NoError(t, err)

	s.fetchFunc = func() (io.Reader, error) {
		if fetchErr != nil {
			return nil, fetchErr
		}
		return strings.NewReader(html), nil
	}
	return s
}

func TestNewProductScraperUnknownBrand(t *testing.T) {
	p := testProduct()
	p.Brand = "Dell"

	_, err := NewProductScraper(p, config.ScrapeConfig{}, nil, nil)
	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConfiguration, apperrors.TypeOf(err))
}

func TestScrapeExtractsObservation(t *testing.T) {
	html := `<html><body>
		<span class="sale-price">$1,149.99</span>
		<div class="stock-status">In Stock</div>
	</body></html>`

	s := testScraper(t, html, nil, nil)
	// Resolver selectors come from the brand config; override with the
	// markup used above
	s.Resolver = NewResolver(Selectors{
		Price:        []string{".sale-price"},
		Availability: []string{".stock-status"},
	}, 100)

	obs, err := s.Scrape()
	assert.NoError(t, err)
	assert.Equal(t, "hp_probook_450", obs.ProductID)
	assert.Equal(t, 1149.99, *obs.Price)
	assert.Equal(t, "USD", obs.Currency)
	assert.Equal(t, product.InStock, obs.Availability)
	assert.Nil(t, obs.Promo)
	assert.WithinDuration(t, time.Now(), obs.ObservedAt, 5*time.Second)
}

func TestScrapeDegradedPage(t *testing.T) {
	// A page with nothing extractable still yields an observation
	s := testScraper(t, `<html><body><p>Maintenance</p></body></html>`, nil, nil)

	obs, err := s.Scrape()
	assert.NoError(t, err)
	assert.Nil(t, obs.Price)
	assert.Equal(t, product.Unknown, obs.Availability)
	assert.Nil(t, obs.Promo)
}

func TestScrapeNavigationFailure(t *testing.T) {
	s := testScraper(t, "", errors.New("connection refused"), nil)

	obs, err := s.Scrape()
	assert.Nil(t, obs)
	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNavigation, apperrors.TypeOf(err))
}

func TestScrapeSkipsBlockedProduct(t *testing.T) {
	cacheSvc := newMockCache()
	cacheSvc.Set(cache.BlockKey("hp_probook_450"), []byte("300"), time.Minute)

	fetched := false
	s := testScraper(t, "", nil, cacheSvc)
	s.fetchFunc = func() (io.Reader, error) {
		fetched = true
		return strings.NewReader("<html></html>"), nil
	}

	obs, err := s.Scrape()
	assert.Nil(t, obs)
	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeRateLimit, apperrors.TypeOf(err))
	assert.False(t, fetched)
}

func TestScrapeRateLimitSetsBlock(t *testing.T) {
	cacheSvc := newMockCache()
	s := testScraper(t, "", errors.New("rate limited; retry after 300s"), cacheSvc)

	_, err := s.Scrape()
	assert.Error(t, err)

	_, cacheErr := cacheSvc.Get(cache.BlockKey("hp_probook_450"))
	assert.NoError(t, cacheErr, "block entry should exist after a rate limit")
}

func TestScrapeIdentity(t *testing.T) {
	s := testScraper(t, "<html></html>", nil, nil)
	assert.Equal(t, "hp_probook_450", s.GetName())
	assert.Equal(t, testProduct(), s.GetProduct())
}
