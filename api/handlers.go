package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Muditha98/LaptopInsights/internal/analytics"
	"github.com/Muditha98/LaptopInsights/internal/tools"
	"github.com/Muditha98/LaptopInsights/llm"
	apperrors "github.com/Muditha98/LaptopInsights/pkg/errors"
)

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	params := tools.PricesParams{
		Brand:       r.URL.Query().Get("brand"),
		MinPrice:    getFloatParamPtr(r, "min_price"),
		MaxPrice:    getFloatParamPtr(r, "max_price"),
		InStockOnly: getBoolParam(r, "in_stock_only", false),
	}

	writeResponse(w, s.tools.Prices(params))
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, s.tools.Details(r.PathValue("id")))
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	days := getIntParam(r, "days", 30)
	writeResponse(w, s.tools.Trend(r.PathValue("id"), days))
}

// handleHistory returns raw observations newest first, bounded by the
// limit parameter
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")
	limit := getIntParam(r, "limit", 100)
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	history, err := s.store.History(productID, limit)
	if err != nil {
		s.log.Error().Err(err).Str("product_id", productID).Msg("Failed to load history")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "failed to load history",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"product_id": productID,
		"count":      len(history),
		"history":    history,
	})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, s.tools.Compare(getListParam(r, "ids")))
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, s.tools.Availability(r.URL.Query().Get("brand")))
}

func (s *Server) handleDeals(w http.ResponseWriter, r *http.Request) {
	threshold := getFloatParam(r, "threshold_percent", 10)
	writeResponse(w, s.tools.Deals(threshold, r.URL.Query().Get("brand")))
}

// handleInsights builds a prompt from the current catalog state and
// asks the LLM for a buyer-facing summary
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if !s.llmEnabled || s.llmClient == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"error": "LLM insights are not enabled",
		})
		return
	}

	products, err := s.store.AllProducts()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load catalog for insights")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "failed to load catalog",
		})
		return
	}

	listings := make([]analytics.Listing, 0, len(products))
	inputs := make([]analytics.DealInput, 0, len(products))
	for _, p := range products {
		latest, err := s.store.LatestObservation(p.ProductID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"error": "failed to load observations",
			})
			return
		}
		stats, err := s.store.Statistics(p.ProductID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"error": "failed to load statistics",
			})
			return
		}

		listings = append(listings, analytics.Listing{Product: p, Latest: latest})
		inputs = append(inputs, analytics.DealInput{Product: p, Latest: latest, Stats: stats})
	}

	deals, err := analytics.FindDeals(inputs, 5)
	if err != nil {
		deals = nil
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	insight, err := s.llmClient.Analyze(ctx, llm.BuildInsightsPrompt(listings, deals))
	if err != nil {
		s.log.Error().Err(err).Msg("LLM analysis failed")
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error": "analysis failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"insight":      insight,
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleScrape triggers a scrape synchronously: a single product when
// product_id is given, the whole batch otherwise
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	if s.runner == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"error": "scraping is not enabled",
		})
		return
	}

	start := time.Now()

	if productID := r.URL.Query().Get("product_id"); productID != "" {
		if err := s.runner.RunProduct(productID); err != nil {
			code := http.StatusInternalServerError
			if apperrors.IsNotFound(err) {
				code = http.StatusNotFound
			}
			writeJSON(w, code, map[string]interface{}{
				"product_id": productID,
				"error":      err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":     "completed",
			"product_id": productID,
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return
	}

	batchErrors := s.runner.RunBatch()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "completed",
		"elapsed_ms": time.Since(start).Milliseconds(),
		"errors":     batchErrors,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if pinger, ok := s.store.(interface{ Ping() error }); ok {
		if err := pinger.Ping(); err != nil {
			status = "degraded"
			dbStatus = "unreachable"
			code = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, map[string]interface{}{
		"status":   status,
		"database": dbStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
