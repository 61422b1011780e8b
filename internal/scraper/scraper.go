package scraper

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Muditha98/LaptopInsights/config"
	"github.com/Muditha98/LaptopInsights/helpers"
	"github.com/Muditha98/LaptopInsights/internal/product"
	"github.com/Muditha98/LaptopInsights/logger"
	apperrors "github.com/Muditha98/LaptopInsights/pkg/errors"
	"github.com/Muditha98/LaptopInsights/services/cache"
)

// ProductScraper scrapes one catalog entry. The fetch function is set
// at construction: through the Chrome renderer when one is configured,
// otherwise a plain HTTP fetch with browser-like headers.
type ProductScraper struct {
	Product   product.Product
	Resolver  *Resolver
	CacheSvc  cache.CacheService
	BlockTime time.Duration

	fetchFunc func() (io.Reader, error)
	log       *logger.Logger
}

// NewProductScraper creates a scraper for a catalog entry
func NewProductScraper(p product.Product, cfg config.ScrapeConfig, renderer *Renderer, cacheSvc cache.CacheService) (*ProductScraper, error) {
	selectors, err := SelectorsForBrand(p.Brand)
	if err != nil {
		return nil, apperrors.NewConfiguration(fmt.Sprintf("product %s: %v", p.ProductID, err), nil)
	}

	s := &ProductScraper{
		Product:   p,
		Resolver:  NewResolver(selectors, cfg.PriceFloor),
		CacheSvc:  cacheSvc,
		BlockTime: cfg.BlockTime,
		log:       logger.ForScraper(p.ProductID),
	}

	if renderer != nil {
		s.fetchFunc = func() (io.Reader, error) {
			return renderer.FetchRendered(p.URL)
		}
	} else {
		s.fetchFunc = func() (io.Reader, error) {
			return helpers.FetchWithBrowserHeaders(p.URL, cfg.UserAgent)
		}
	}

	return s, nil
}

// GetName returns the scraper's name for logging
func (s *ProductScraper) GetName() string {
	return s.Product.ProductID
}

// GetProduct returns the catalog entry this scraper tracks
func (s *ProductScraper) GetProduct() product.Product {
	return s.Product
}

// Scrape loads the product page and extracts one observation. A page
// that cannot be loaded is a fatal navigation error for this product;
// fields that cannot be located degrade to null/Unknown and never fail
// the scrape.
func (s *ProductScraper) Scrape() (*product.Observation, error) {
	body, err := s.fetchWithBlock()
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, apperrors.NewNavigation(s.Product.ProductID, "failed to parse document", err)
	}

	obs := &product.Observation{
		ProductID:    s.Product.ProductID,
		Price:        s.Resolver.ExtractPrice(doc),
		Currency:     s.Resolver.ExtractCurrency(doc),
		Availability: s.Resolver.ExtractAvailability(doc),
		Promo:        s.Resolver.ExtractPromo(doc),
		ObservedAt:   time.Now(),
	}

	if obs.Price == nil {
		s.log.Warn().Msg("Could not extract price")
	} else {
		s.log.Debug().Float64("price", *obs.Price).Str("availability", string(obs.Availability)).Msg("Scraped observation")
	}

	return obs, nil
}

// fetchWithBlock fetches the product page unless a block entry from an
// earlier rate limit is still active
func (s *ProductScraper) fetchWithBlock() (io.Reader, error) {
	blockKey := cache.BlockKey(s.Product.ProductID)

	if s.CacheSvc != nil {
		_, err := s.CacheSvc.Get(blockKey)
		if err == nil {
			return nil, apperrors.NewRateLimit(s.Product.ProductID, s.BlockTime)
		}
	}

	body, err := s.fetchFunc()
	if err != nil {
		if s.CacheSvc != nil && strings.Contains(err.Error(), "rate limited") {
			// Set a block entry so the next cycle skips this product
			s.CacheSvc.Set(blockKey, []byte(fmt.Sprintf("%d", s.BlockTime/time.Second)), s.BlockTime)
		}
		return nil, apperrors.NewNavigation(s.Product.ProductID, "failed to load page", err)
	}

	return body, nil
}
