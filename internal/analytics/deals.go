package analytics

import (
	"sort"
	"time"

	"github.com/Muditha98/LaptopInsights/internal/product"
	apperrors "github.com/Muditha98/LaptopInsights/pkg/errors"
)

// DealInput pairs a product with the data deal detection needs
type DealInput struct {
	Product product.Product
	Latest  *product.Observation
	Stats   *product.Statistics
}

// DealCandidate is a product whose latest price undercuts its
// historical average by at least the caller's threshold
type DealCandidate struct {
	Product         product.Product      `json:"product"`
	CurrentPrice    float64              `json:"current_price"`
	AvgPrice        float64              `json:"avg_price"`
	DiscountAmount  float64              `json:"discount_amount"`
	DiscountPercent float64              `json:"discount_percent"`
	Availability    product.Availability `json:"availability"`
	Promo           *string              `json:"promo"`
	LastUpdated     time.Time            `json:"last_updated"`
}

// FindDeals compares each product's current price against its
// historical average. Products lacking a current price or an average
// are skipped, not errored: absence of data is not a deal signal.
// Results are ordered by discount percent descending; the sort is
// stable, so ties keep their input order.
func FindDeals(inputs []DealInput, thresholdPercent float64) ([]DealCandidate, error) {
	if thresholdPercent < 0 || thresholdPercent > 100 {
		return nil, apperrors.NewValidation("threshold_percent must be between 0 and 100")
	}

	deals := make([]DealCandidate, 0)
	for _, input := range inputs {
		if input.Latest == nil || input.Stats == nil {
			continue
		}
		if input.Latest.Price == nil || input.Stats.AvgPrice == nil || *input.Stats.AvgPrice == 0 {
			continue
		}

		current := *input.Latest.Price
		avg := *input.Stats.AvgPrice

		discountPercent := (avg - current) / avg * 100
		if discountPercent < thresholdPercent {
			continue
		}

		deals = append(deals, DealCandidate{
			Product:         input.Product,
			CurrentPrice:    current,
			AvgPrice:        round2(avg),
			DiscountAmount:  round2(avg - current),
			DiscountPercent: round2(discountPercent),
			Availability:    input.Latest.Availability,
			Promo:           input.Latest.Promo,
			LastUpdated:     input.Latest.ObservedAt,
		})
	}

	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].DiscountPercent > deals[j].DiscountPercent
	})

	return deals, nil
}
