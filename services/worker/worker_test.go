package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Muditha98/LaptopInsights/internal/product"
	"github.com/Muditha98/LaptopInsights/internal/scraper"
	apperrors "github.com/Muditha98/LaptopInsights/pkg/errors"
)

type mockScraper struct {
	name string
	pr   product.Product
	obs  *product.Observation
	err  error

	calls int
}

func (m *mockScraper) Scrape() (*product.Observation, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.obs, nil
}

func (m *mockScraper) GetName() string             { return m.name }
func (m *mockScraper) GetProduct() product.Product { return m.pr }

type mockStore struct {
	observations []product.Observation
	appendErr    error
}

func (m *mockStore) UpsertProduct(p product.Product) error { return nil }
func (m *mockStore) AllProducts() ([]product.Product, error) {
	return nil, nil
}
func (m *mockStore) AppendObservation(obs product.Observation) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.observations = append(m.observations, obs)
	return nil
}
func (m *mockStore) LatestObservation(productID string) (*product.Observation, error) {
	return nil, nil
}
func (m *mockStore) History(productID string, limit int) ([]product.Observation, error) {
	return nil, nil
}
func (m *mockStore) Statistics(productID string) (*product.Statistics, error) {
	return nil, nil
}

type mockPublisher struct {
	published map[string][]byte
	trimmed   int
	pubErr    error
}

func (m *mockPublisher) Publish(productID string, message []byte) error {
	if m.pubErr != nil {
		return m.pubErr
	}
	if m.published == nil {
		m.published = make(map[string][]byte)
	}
	m.published[productID] = message
	return nil
}
func (m *mockPublisher) TrimStreams() error { m.trimmed++; return nil }
func (m *mockPublisher) Close() error       { return nil }

func obsFor(id string, price float64) *product.Observation {
	return &product.Observation{
		ProductID:    id,
		Price:        &price,
		Currency:     "USD",
		Availability: product.InStock,
		ObservedAt:   time.Now(),
	}
}

func TestRunBatchPersistsAndPublishes(t *testing.T) {
	st := &mockStore{}
	pub := &mockPublisher{}
	scrapers := []mockScraper{
		{name: "hp_probook_450", obs: obsFor("hp_probook_450", 899)},
		{name: "lenovo_thinkpad_e14", obs: obsFor("lenovo_thinkpad_e14", 749)},
	}

	w := NewWorker(context.Background(), scraperSlice(scrapers), st, pub, time.Hour)
	batchErrors := w.RunBatch()

	assert.Empty(t, batchErrors)
	assert.Len(t, st.observations, 2)
	assert.Len(t, pub.published, 2)
	assert.Contains(t, pub.published, "hp_probook_450")
	assert.Equal(t, 1, pub.trimmed)
}

func TestRunBatchContinuesAfterFailure(t *testing.T) {
	st := &mockStore{}
	pub := &mockPublisher{}
	scrapers := []mockScraper{
		{name: "hp_probook_450", err: errors.New("navigation timeout")},
		{name: "lenovo_thinkpad_e14", obs: obsFor("lenovo_thinkpad_e14", 749)},
	}

	w := NewWorker(context.Background(), scraperSlice(scrapers), st, pub, time.Hour)
	batchErrors := w.RunBatch()

	// The first failure must not stop the second scrape
	assert.Equal(t, 1, scrapers[1].calls)
	assert.Len(t, st.observations, 1)
	assert.Len(t, batchErrors, 1)
	assert.Equal(t, "hp_probook_450", batchErrors[0].ProductID)
	assert.Contains(t, batchErrors[0].Error, "navigation timeout")
}

func TestRunBatchStoreFailureRecorded(t *testing.T) {
	st := &mockStore{appendErr: errors.New("connection refused")}
	scrapers := []mockScraper{
		{name: "hp_probook_450", obs: obsFor("hp_probook_450", 899)},
	}

	w := NewWorker(context.Background(), scraperSlice(scrapers), st, nil, time.Hour)
	batchErrors := w.RunBatch()

	assert.Len(t, batchErrors, 1)
	assert.Contains(t, batchErrors[0].Error, "connection refused")
}

func TestRunBatchPublishFailureIsBestEffort(t *testing.T) {
	st := &mockStore{}
	pub := &mockPublisher{pubErr: errors.New("redis down")}
	scrapers := []mockScraper{
		{name: "hp_probook_450", obs: obsFor("hp_probook_450", 899)},
	}

	w := NewWorker(context.Background(), scraperSlice(scrapers), st, pub, time.Hour)
	batchErrors := w.RunBatch()

	// Observation is persisted even when publishing fails
	assert.Empty(t, batchErrors)
	assert.Len(t, st.observations, 1)
}

func TestRunBatchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := &mockStore{}
	scrapers := []mockScraper{
		{name: "hp_probook_450", obs: obsFor("hp_probook_450", 899)},
	}

	w := NewWorker(ctx, scraperSlice(scrapers), st, nil, time.Hour)
	w.RunBatch()

	assert.Equal(t, 0, scrapers[0].calls)
}

func TestRunProduct(t *testing.T) {
	st := &mockStore{}
	scrapers := []mockScraper{
		{name: "hp_probook_450", obs: obsFor("hp_probook_450", 899)},
		{name: "lenovo_thinkpad_e14", obs: obsFor("lenovo_thinkpad_e14", 749)},
	}

	w := NewWorker(context.Background(), scraperSlice(scrapers), st, nil, time.Hour)

	assert.NoError(t, w.RunProduct("lenovo_thinkpad_e14"))
	assert.Equal(t, 0, scrapers[0].calls)
	assert.Equal(t, 1, scrapers[1].calls)
	assert.Len(t, st.observations, 1)

	err := w.RunProduct("dell_xps_13")
	assert.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func scraperSlice(ms []mockScraper) []scraper.Scraper {
	out := make([]scraper.Scraper, len(ms))
	for i := range ms {
		out[i] = &ms[i]
	}
	return out
}
