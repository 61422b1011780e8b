// Package analytics computes price trends, deal candidates and listing
// orders over in-memory observation series. Everything here is pure
// computation: no I/O, no shared state, safe for concurrent callers.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Muditha98/LaptopInsights/internal/product"
	apperrors "github.com/Muditha98/LaptopInsights/pkg/errors"
)

// stableBandPercent is the change-percent band inside which a trend
// counts as stable. Fixed, not configurable.
const stableBandPercent = 1.0

// Trend directions
const (
	DirectionUp     = "up"
	DirectionDown   = "down"
	DirectionStable = "stable"
)

// TrendResult summarizes price movement over a window. Constructed per
// query and discarded after the response; never persisted.
type TrendResult struct {
	FirstPrice         *float64  `json:"first_price"`
	FirstDate          time.Time `json:"first_date"`
	LatestPrice        *float64  `json:"latest_price"`
	LatestDate         time.Time `json:"latest_date"`
	MinPrice           *float64  `json:"min_price"`
	MaxPrice           *float64  `json:"max_price"`
	AvgPrice           *float64  `json:"avg_price"`
	PriceChange        float64   `json:"price_change"`
	PriceChangePercent float64   `json:"price_change_percent"`
	Direction          string    `json:"trend_direction"`
}

// ComputeTrend filters history to the window (now-days, now], computes
// summary statistics and classifies the direction. The returned window
// is sorted ascending by observation time for visualization. History
// may arrive in any order.
func ComputeTrend(history []product.Observation, days int, now time.Time) (*TrendResult, []product.Observation, error) {
	if days < 1 || days > 365 {
		return nil, nil, apperrors.NewValidation("days must be between 1 and 365")
	}

	cutoff := now.AddDate(0, 0, -days)

	window := make([]product.Observation, 0, len(history))
	for _, obs := range history {
		if !obs.ObservedAt.Before(cutoff) {
			window = append(window, obs)
		}
	}

	if len(window) == 0 {
		return nil, nil, apperrors.NewNotFound("", fmt.Sprintf("no price data found within the last %d days", days))
	}

	sort.SliceStable(window, func(i, j int) bool {
		return window[i].ObservedAt.Before(window[j].ObservedAt)
	})

	first := window[0]
	latest := window[len(window)-1]

	minPrice, maxPrice, avgPrice := summarizePrices(window)

	var change, changePercent float64
	if first.Price != nil && latest.Price != nil {
		change = *latest.Price - *first.Price
	}
	// Guard against a zero or missing first price
	if first.Price != nil && *first.Price != 0 {
		changePercent = change / *first.Price * 100
	}

	direction := DirectionStable
	if math.Abs(changePercent) >= stableBandPercent {
		if change > 0 {
			direction = DirectionUp
		} else {
			direction = DirectionDown
		}
	}

	result := &TrendResult{
		FirstPrice:         first.Price,
		FirstDate:          first.ObservedAt,
		LatestPrice:        latest.Price,
		LatestDate:         latest.ObservedAt,
		MinPrice:           minPrice,
		MaxPrice:           maxPrice,
		AvgPrice:           roundPtr(avgPrice),
		PriceChange:        round2(change),
		PriceChangePercent: round2(changePercent),
		Direction:          direction,
	}

	return result, window, nil
}

// summarizePrices computes min/max/avg over the non-null prices in the
// window. All three are nil when no observation carries a price.
func summarizePrices(window []product.Observation) (minPrice, maxPrice, avgPrice *float64) {
	var sum float64
	var count int

	for _, obs := range window {
		if obs.Price == nil {
			continue
		}
		p := *obs.Price
		if minPrice == nil || p < *minPrice {
			minPrice = ptr(p)
		}
		if maxPrice == nil || p > *maxPrice {
			maxPrice = ptr(p)
		}
		sum += p
		count++
	}

	if count > 0 {
		avgPrice = ptr(sum / float64(count))
	}
	return minPrice, maxPrice, avgPrice
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return ptr(round2(*v))
}

func ptr(v float64) *float64 {
	return &v
}
