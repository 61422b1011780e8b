package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Muditha98/LaptopInsights/internal/tools"
)

// getIntParam retrieves an integer query parameter, falling back to the
// default when missing or unparseable
func getIntParam(r *http.Request, key string, defaultVal int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// getFloatParamPtr retrieves an optional float query parameter. Returns
// nil when the parameter is absent or unparseable.
func getFloatParamPtr(r *http.Request, key string) *float64 {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return nil
	}

	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return nil
	}
	return &val
}

// getFloatParam retrieves a float query parameter with a default
func getFloatParam(r *http.Request, key string, defaultVal float64) float64 {
	if v := getFloatParamPtr(r, key); v != nil {
		return *v
	}
	return defaultVal
}

// getBoolParam retrieves a boolean query parameter with a default
func getBoolParam(r *http.Request, key string, defaultVal bool) bool {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// getListParam retrieves a comma-separated query parameter as a slice.
// Empty segments are dropped.
func getListParam(r *http.Request, key string) []string {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(valStr, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// writeResponse serializes a tool response. Tool failures are client
// errors: the envelope already carries the message, so the status code
// is the only thing that changes.
func writeResponse(w http.ResponseWriter, resp tools.Response) {
	w.Header().Set("Content-Type", "application/json")
	if !resp.Success {
		w.WriteHeader(http.StatusBadRequest)
	}
	json.NewEncoder(w).Encode(resp)
}

// writeJSON serializes an arbitrary payload with a status code
func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
