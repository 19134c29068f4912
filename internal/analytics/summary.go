// Package analytics computes the dashboard aggregates over the full record
// list: grand totals, the current-month window, the per-category breakdown
// and the top category. Pure functions; callers re-supply the record list
// after every mutation.
package analytics

import (
	"time"

	"spendlens/internal/core"
)

// Summary aggregates the records as of the supplied current time. The
// monthly window runs from the first to the last calendar day of now's
// month, inclusive; it is anchored in UTC because record dates parse to
// midnight UTC, so the comparison happens in a single zone regardless of
// the server's. The breakdown always carries all six categories, zero
// for categories with no records. TopCategory is nil when the record list
// is empty or every breakdown total is zero.
func Summary(records []core.Expense, now time.Time) core.Summary {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	breakdown := make(map[core.Category]float64, len(core.Categories))
	for _, c := range core.Categories {
		breakdown[c] = 0
	}

	total := 0.0
	monthly := 0.0
	for _, e := range records {
		total += e.Amount
		breakdown[e.Category] += e.Amount
		if !e.Date.Before(monthStart) && e.Date.Before(monthEnd) {
			monthly += e.Amount
		}
	}

	// Fixed iteration order makes the tie-break deterministic: the first
	// category with the maximal total wins.
	var top *core.Category
	for _, c := range core.Categories {
		if breakdown[c] <= 0 {
			continue
		}
		if top == nil || breakdown[c] > breakdown[*top] {
			cat := c
			top = &cat
		}
	}

	return core.Summary{
		TotalSpending:     total,
		MonthlySpending:   monthly,
		CategoryBreakdown: breakdown,
		TopCategory:       top,
		ExpenseCount:      len(records),
	}
}
