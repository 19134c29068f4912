package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"spendlens/internal/analytics"
	"spendlens/internal/core"
	"spendlens/internal/export"
)

// handleExpenses serves the collection: GET lists (with optional filters),
// POST creates.
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listExpenses(w, r)
	case http.MethodPost:
		s.createExpense(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	records, err := s.api.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses error", "error", err)
		writeServiceError(w, err)
		return
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	records = filter.Apply(records)

	if records == nil {
		records = []core.Expense{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := decodeExpenseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.api.Create(r.Context(), expense)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create expense error", "error", err)
		writeServiceError(w, err)
		return
	}

	s.invalidateAggregates()
	writeJSON(w, http.StatusCreated, created)
}

// handleExpenseByID serves a single record: GET, PUT, DELETE.
func (s *Server) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/expenses/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		expense, err := s.api.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, expense)

	case http.MethodPut:
		expense, err := decodeExpenseRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		expense.ID = id

		updated, err := s.api.Update(r.Context(), expense)
		if err != nil {
			slog.ErrorContext(r.Context(), "Update expense error", "error", err, "id", id)
			writeServiceError(w, err)
			return
		}
		s.invalidateAggregates()
		writeJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.api.Delete(r.Context(), id); err != nil {
			slog.ErrorContext(r.Context(), "Delete expense error", "error", err, "id", id)
			writeServiceError(w, err)
			return
		}
		s.invalidateAggregates()
		w.WriteHeader(http.StatusNoContent)

	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleExportCSV streams the (optionally filtered) expense list as CSV.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
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

	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	records = filter.Apply(records)

	filename := export.Filename(time.Now().Format(core.DateLayout))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteCSV(w, records); err != nil {
		slog.ErrorContext(r.Context(), "CSV export error", "error", err)
	}
}

func filterFromQuery(r *http.Request) (analytics.Filter, error) {
	var f analytics.Filter

	if v := strings.TrimSpace(r.URL.Query().Get("category")); v != "" {
		category, err := core.ParseCategory(v)
		if err != nil {
			return analytics.Filter{}, err
		}
		f.Category = category
	}

	start, err := parseDateParam(r, "start_date")
	if err != nil {
		return analytics.Filter{}, err
	}
	end, err := parseDateParam(r, "end_date")
	if err != nil {
		return analytics.Filter{}, err
	}
	f.StartDate = start
	f.EndDate = end
	f.Search = r.URL.Query().Get("search")

	return f, nil
}
