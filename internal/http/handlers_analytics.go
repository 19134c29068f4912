package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"spendlens/internal/ai"
	"spendlens/internal/analytics"
	"spendlens/internal/core"
	"spendlens/internal/vendors"
)

const summaryCacheKey = "summary"

// chronological reverses the store's newest-first read order into the
// oldest-first order the recent-window analyses are defined over.
func chronological(records []core.Expense) []core.Expense {
	out := make([]core.Expense, len(records))
	for i, e := range records {
		out[len(records)-1-i] = e
	}
	return out
}

// handleSummary serves the dashboard aggregate.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if summary, found := s.summaryCache.Get(summaryCacheKey); found {
		writeJSON(w, http.StatusOK, summary)
		return
	}

	records, err := s.api.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses error", "error", err)
		writeServiceError(w, err)
		return
	}

	summary := analytics.Summary(records, time.Now())
	s.summaryCache.Set(summaryCacheKey, summary)
	writeJSON(w, http.StatusOK, summary)
}

// handleVendors serves the ranked vendor aggregation. The optional limit
// parameter caps the list; limit=-1 returns everything.
func (s *Server) handleVendors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := vendors.DefaultLimit
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || (n < 1 && n != vendors.All) {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	cacheKey := "vendors:" + strconv.Itoa(limit)
	if stats, found := s.vendorsCache.Get(cacheKey); found {
		writeJSON(w, http.StatusOK, stats)
		return
	}

	records, err := s.api.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses error", "error", err)
		writeServiceError(w, err)
		return
	}

	stats := vendors.TopVendors(records, limit)
	if stats == nil {
		stats = []core.VendorStats{}
	}
	s.vendorsCache.Set(cacheKey, stats)
	writeJSON(w, http.StatusOK, stats)
}

// handleVendorStats serves the aggregate for one vendor name.
func (s *Server) handleVendorStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing vendor name")
		return
	}

	records, err := s.api.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses error", "error", err)
		writeServiceError(w, err)
		return
	}

	stats, ok := vendors.Stats(records, name)
	if !ok {
		writeError(w, http.StatusNotFound, "vendor not found")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleCategorySuggestion classifies a free-text description.
func (s *Server) handleCategorySuggestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Description string `json:"description"`
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode request body: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ai.SuggestCategory(req.Description))
}

// handlePredictions serves upcoming-expense predictions.
func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, err := s.api.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses error", "error", err)
		writeServiceError(w, err)
		return
	}

	predictions := ai.PredictUpcomingExpenses(chronological(records), time.Now())
	if predictions == nil {
		predictions = []core.Prediction{}
	}
	writeJSON(w, http.StatusOK, predictions)
}

// handleInsights serves behavioral insights.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, err := s.api.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses error", "error", err)
		writeServiceError(w, err)
		return
	}

	insights := ai.AnalyzeSpendingBehavior(chronological(records))
	if insights == nil {
		insights = []core.BehaviorInsight{}
	}
	writeJSON(w, http.StatusOK, insights)
}

// handleSuggestions serves context-aware spending suggestions.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, err := s.api.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses error", "error", err)
		writeServiceError(w, err)
		return
	}

	suggestions := ai.GenerateSmartSuggestions(chronological(records), time.Now())
	if suggestions == nil {
		suggestions = []core.SmartSuggestion{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}
