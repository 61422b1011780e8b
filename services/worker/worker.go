package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Muditha98/LaptopInsights/internal/scraper"
	"github.com/Muditha98/LaptopInsights/logger"
	apperrors "github.com/Muditha98/LaptopInsights/pkg/errors"
	"github.com/Muditha98/LaptopInsights/services/publisher"
	"github.com/Muditha98/LaptopInsights/services/store"
)

// BatchError records one failed product scrape within a batch
type BatchError struct {
	ProductID string `json:"product_id"`
	Error     string `json:"error"`
}

// Worker runs the scrape batch on an interval, persisting and
// publishing each observation. Products are scraped strictly
// sequentially; one browser session at a time keeps the storefronts
// from rate-limiting the whole catalog.
type Worker struct {
	ctx            context.Context
	scrapers       []scraper.Scraper
	store          store.Store
	publisher      publisher.Publisher
	log            *logger.Logger
	scrapeInterval time.Duration
}

// NewWorker creates a new worker
func NewWorker(
	ctx context.Context,
	scrapers []scraper.Scraper,
	st store.Store,
	pub publisher.Publisher,
	scrapeInterval time.Duration,
) *Worker {
	return &Worker{
		ctx:            ctx,
		scrapers:       scrapers,
		store:          st,
		publisher:      pub,
		log:            logger.ForWorker(),
		scrapeInterval: scrapeInterval,
	}
}

// Start runs scrape batches until the context is cancelled
func (w *Worker) Start() error {
	ticker := time.NewTicker(w.scrapeInterval)
	defer ticker.Stop()

	// Run one batch immediately; the ticker covers the rest
	w.RunBatch()

	for {
		select {
		case <-w.ctx.Done():
			w.log.Info().Msg("Worker stopping")
			return w.ctx.Err()
		case <-ticker.C:
			w.RunBatch()
		}
	}
}

// RunBatch scrapes every product once, in sequence. A failure on one
// product is recorded and the batch moves on; it never aborts sibling
// scrapes. Returns the per-product errors for the batch.
func (w *Worker) RunBatch() []BatchError {
	start := time.Now()
	var batchErrors []BatchError

	for _, s := range w.scrapers {
		select {
		case <-w.ctx.Done():
			return batchErrors
		default:
		}

		if err := w.scrapeAndRecord(s); err != nil {
			batchErrors = append(batchErrors, BatchError{
				ProductID: s.GetName(),
				Error:     err.Error(),
			})
		}
	}

	// Trim the streams after each batch so consumers never lag behind
	// an unbounded backlog
	if w.publisher != nil {
		if err := w.publisher.TrimStreams(); err != nil {
			w.log.Error().Err(err).Msg("Failed to trim streams")
		}
	}

	w.log.Info().
		Int("products", len(w.scrapers)).
		Int("failed", len(batchErrors)).
		Dur("elapsed", time.Since(start)).
		Msg("Scrape batch finished")

	return batchErrors
}

// RunProduct scrapes a single product outside the batch cycle
func (w *Worker) RunProduct(productID string) error {
	for _, s := range w.scrapers {
		if s.GetName() == productID {
			return w.scrapeAndRecord(s)
		}
	}
	return apperrors.NewNotFound(productID, "no scraper configured for product")
}

// scrapeAndRecord scrapes one product, persists the observation and
// publishes it downstream
func (w *Worker) scrapeAndRecord(s scraper.Scraper) error {
	obs, err := s.Scrape()
	if err != nil {
		w.log.Error().Str("product_id", s.GetName()).Err(err).Msg("Scrape failed")
		return err
	}

	if err := w.store.AppendObservation(*obs); err != nil {
		w.log.Error().Str("product_id", s.GetName()).Err(err).Msg("Failed to persist observation")
		return err
	}

	if w.publisher != nil {
		data, err := json.Marshal(obs)
		if err != nil {
			w.log.Error().Str("product_id", s.GetName()).Err(err).Msg("Failed to encode observation")
			return nil
		}
		if err := w.publisher.Publish(obs.ProductID, data); err != nil {
			// Publishing is best effort; the observation is already persisted
			w.log.Error().Str("product_id", s.GetName()).Err(err).Msg("Failed to publish observation")
		}
	}

	return nil
}
