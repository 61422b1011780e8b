package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Muditha98/LaptopInsights/internal/product"
	apperrors "github.com/Muditha98/LaptopInsights/pkg/errors"
)

func dealInput(id string, current, avg float64) DealInput {
	return DealInput{
		Product: product.Product{ProductID: id, Brand: product.BrandHP, Model: "ProBook"},
		Latest: &product.Observation{
			ProductID:    id,
			Price:        &current,
			Currency:     "USD",
			Availability: product.InStock,
			ObservedAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		Stats: &product.Statistics{
			ProductID: id,
			AvgPrice:  &avg,
			Count:     10,
		},
	}
}

func TestFindDealsQualification(t *testing.T) {
	// 850 against a 1000 average is a 15% discount
	inputs := []DealInput{dealInput("hp_probook_450", 850, 1000)}

	deals, err := FindDeals(inputs, 10)
	assert.NoError(t, err)
	assert.Len(t, deals, 1)
	assert.Equal(t, 850.0, deals[0].CurrentPrice)
	assert.Equal(t, 150.0, deals[0].DiscountAmount)
	assert.Equal(t, 15.0, deals[0].DiscountPercent)

	// Exactly at threshold qualifies
	deals, err = FindDeals(inputs, 15)
	assert.NoError(t, err)
	assert.Len(t, deals, 1)

	// Just above threshold does not
	deals, err = FindDeals(inputs, 16)
	assert.NoError(t, err)
	assert.Empty(t, deals)
}

func TestFindDealsCurrentAtAverage(t *testing.T) {
	inputs := []DealInput{dealInput("hp_probook_450", 1000, 1000)}

	// Zero discount never clears a positive threshold
	deals, err := FindDeals(inputs, 5)
	assert.NoError(t, err)
	assert.Empty(t, deals)

	// But it does clear a zero threshold
	deals, err = FindDeals(inputs, 0)
	assert.NoError(t, err)
	assert.Len(t, deals, 1)
	assert.Equal(t, 0.0, deals[0].DiscountPercent)
}

func TestFindDealsSkipsMissingData(t *testing.T) {
	withNilPrice := dealInput("lenovo_thinkpad_e14", 0, 1000)
	withNilPrice.Latest.Price = nil

	withNilAvg := dealInput("lenovo_thinkpad_t14", 800, 0)
	withNilAvg.Stats.AvgPrice = nil

	inputs := []DealInput{
		{Product: product.Product{ProductID: "hp_probook_440"}},
		withNilPrice,
		withNilAvg,
		dealInput("hp_probook_450", 800, 1000),
	}

	deals, err := FindDeals(inputs, 10)
	assert.NoError(t, err)
	assert.Len(t, deals, 1)
	assert.Equal(t, "hp_probook_450", deals[0].Product.ProductID)
}

func TestFindDealsZeroAverageSkipped(t *testing.T) {
	deals, err := FindDeals([]DealInput{dealInput("hp_probook_450", 800, 0)}, 10)
	assert.NoError(t, err)
	assert.Empty(t, deals)
}

func TestFindDealsOrderedByDiscountDescending(t *testing.T) {
	inputs := []DealInput{
		dealInput("hp_probook_450", 900, 1000),      // 10%
		dealInput("lenovo_thinkpad_e14", 750, 1000), // 25%
		dealInput("hp_probook_440", 850, 1000),      // 15%
	}

	deals, err := FindDeals(inputs, 5)
	assert.NoError(t, err)
	assert.Len(t, deals, 3)
	assert.Equal(t, "lenovo_thinkpad_e14", deals[0].Product.ProductID)
	assert.Equal(t, "hp_probook_440", deals[1].Product.ProductID)
	assert.Equal(t, "hp_probook_450", deals[2].Product.ProductID)
}

func TestFindDealsThresholdValidation(t *testing.T) {
	inputs := []DealInput{dealInput("hp_probook_450", 800, 1000)}

	for _, bad := range []float64{-1, 100.5, 200} {
		_, err := FindDeals(inputs, bad)
		assert.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	}

	for _, good := range []float64{0, 50, 100} {
		_, err := FindDeals(inputs, good)
		assert.NoError(t, err)
	}
}

func TestFindDealsCarriesObservationFields(t *testing.T) {
	promo := "Save $200 on select models"
	input := dealInput("hp_probook_450", 800, 1000)
	input.Latest.Promo = &promo
	input.Latest.Availability = product.Backorder

	deals, err := FindDeals([]DealInput{input}, 10)
	assert.NoError(t, err)
	assert.Len(t, deals, 1)
	assert.Equal(t, product.Backorder, deals[0].Availability)
	assert.Equal(t, &promo, deals[0].Promo)
	assert.Equal(t, input.Latest.ObservedAt, deals[0].LastUpdated)
}
