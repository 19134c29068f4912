// Package vendors groups expense records by a vendor name heuristically
// extracted from the description text and computes per-vendor spending
// statistics. Aggregates are recomputed from the full record list on every
// call; nothing is cached or persisted here.
package vendors

import (
	"sort"
	"strings"

	"spendlens/internal/core"
)

// DefaultLimit is the ranking size used when the caller does not ask for a
// specific one.
const DefaultLimit = 10

// All requests an unlimited ranking.
const All = -1

// nameSeparators is the fixed priority order for splitting a description
// into vendor and detail. The first separator present anywhere in the text
// wins, so "Starbucks - Coffee" and "Amazon, Books" both yield the leading
// part.
var nameSeparators = []string{",", "-", ":", "|", "("}

const (
	maxNameLength      = 50
	fallbackNameLength = 20
)

// ExtractName pulls a vendor name out of a free-text description. Matching
// elsewhere is by exact string equality of this value; no case folding or
// normalization is applied.
func ExtractName(description string) string {
	description = strings.TrimSpace(description)

	name := description
	for _, sep := range nameSeparators {
		if strings.Contains(description, sep) {
			name = strings.TrimSpace(strings.SplitN(description, sep, 2)[0])
			break
		}
	}

	name = truncate(name, maxNameLength)
	if name == "" {
		return truncate(description, fallbackNameLength)
	}
	return name
}

// TopVendors groups the records by extracted vendor name and returns the
// groups ordered by total spent, descending; ties keep first-encounter
// order. All returns every group; any other non-positive limit applies
// DefaultLimit. An empty record list short-circuits to an empty result.
func TopVendors(records []core.Expense, limit int) []core.VendorStats {
	if len(records) == 0 {
		return nil
	}
	if limit != All && limit <= 0 {
		limit = DefaultLimit
	}

	groups := make(map[string]*core.VendorStats)
	var order []string
	grandTotal := 0.0

	for _, e := range records {
		name := ExtractName(e.Description)
		grandTotal += e.Amount

		v, seen := groups[name]
		if !seen {
			v = &core.VendorStats{
				Name:       name,
				Categories: make(map[core.Category]float64),
			}
			groups[name] = v
			order = append(order, name)
		}
		v.TotalSpent += e.Amount
		v.TransactionCount++
		v.Categories[e.Category] += e.Amount
		if e.Date.After(v.LastTransaction) {
			v.LastTransaction = e.Date
		}
	}

	result := make([]core.VendorStats, 0, len(order))
	for _, name := range order {
		v := *groups[name]
		if grandTotal > 0 {
			v.Percentage = v.TotalSpent / grandTotal * 100
		}
		v.AverageTransaction = v.TotalSpent / float64(v.TransactionCount)
		result = append(result, v)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalSpent > result[j].TotalSpent
	})
	if limit != All && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// Stats computes the aggregate for a single vendor by exact name match.
// The percentage is relative to the full record set. The second return is
// false when no record maps to the vendor.
func Stats(records []core.Expense, vendorName string) (core.VendorStats, bool) {
	var matched []core.Expense
	grandTotal := 0.0
	for _, e := range records {
		grandTotal += e.Amount
		if ExtractName(e.Description) == vendorName {
			matched = append(matched, e)
		}
	}
	if len(matched) == 0 {
		return core.VendorStats{}, false
	}

	v := core.VendorStats{
		Name:       vendorName,
		Categories: make(map[core.Category]float64),
	}
	for _, e := range matched {
		v.TotalSpent += e.Amount
		v.TransactionCount++
		v.Categories[e.Category] += e.Amount
		if e.Date.After(v.LastTransaction) {
			v.LastTransaction = e.Date
		}
	}
	if grandTotal > 0 {
		v.Percentage = v.TotalSpent / grandTotal * 100
	}
	v.AverageTransaction = v.TotalSpent / float64(v.TransactionCount)
	return v, true
}

// truncate limits s to n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
