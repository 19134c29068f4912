package analytics

import (
	"strconv"
	"strings"
	"time"

	"spendlens/internal/core"
)

// Filter narrows a record list for list views and exports. Zero values mean
// "no constraint". Category filtering is exact; the date range is inclusive
// on both ends; the search query matches description, category name or the
// amount's decimal rendering, case-insensitively.
type Filter struct {
	Category  core.Category
	StartDate time.Time
	EndDate   time.Time
	Search    string
}

// Apply returns the records passing every set constraint, in input order.
func (f Filter) Apply(records []core.Expense) []core.Expense {
	query := strings.ToLower(strings.TrimSpace(f.Search))

	var out []core.Expense
	for _, e := range records {
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if !f.StartDate.IsZero() && e.Date.Before(f.StartDate) {
			continue
		}
		if !f.EndDate.IsZero() && e.Date.After(f.EndDate) {
			continue
		}
		if query != "" && !matchesQuery(e, query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesQuery(e core.Expense, query string) bool {
	if strings.Contains(strings.ToLower(e.Description), query) {
		return true
	}
	if strings.Contains(strings.ToLower(string(e.Category)), query) {
		return true
	}
	return strings.Contains(strconv.FormatFloat(e.Amount, 'f', -1, 64), query)
}
