package ai

import (
	"time"

	"spendlens/internal/core"
)

const maxSuggestions = 4

// Fallback estimates used when no history exists for a category.
const (
	fallbackMorningFood   = 8
	fallbackLunch         = 12
	fallbackEntertainment = 25
)

// GenerateSmartSuggestions proposes expense entries fitting the supplied
// moment: a morning food suggestion between 7 and 10, a lunch suggestion
// between 12 and 14, and a weekend-evening entertainment suggestion from
// 19:00. Estimated amounts come from the historical mean for the category,
// falling back to fixed constants. Output keeps emission order and is
// capped at 4 entries.
func GenerateSmartSuggestions(records []core.Expense, now time.Time) []core.SmartSuggestion {
	var suggestions []core.SmartSuggestion
	hour := now.Hour()
	weekend := now.Weekday() == time.Saturday || now.Weekday() == time.Sunday

	if hour >= 7 && hour <= 10 {
		suggestions = append(suggestions, core.SmartSuggestion{
			Type:            core.SuggestionTimeBased,
			Description:     "Morning coffee or breakfast",
			EstimatedAmount: categoryAverage(records, core.Food, fallbackMorningFood),
			Category:        core.Food,
			Confidence:      0.7,
			Reasoning:       "Common morning expense pattern detected",
		})
	}

	if hour >= 12 && hour <= 14 {
		suggestions = append(suggestions, core.SmartSuggestion{
			Type:            core.SuggestionTimeBased,
			Description:     "Lunch expense",
			EstimatedAmount: categoryAverage(records, core.Food, fallbackLunch),
			Category:        core.Food,
			Confidence:      0.8,
			Reasoning:       "Typical lunch time spending",
		})
	}

	if weekend && hour >= 19 {
		suggestions = append(suggestions, core.SmartSuggestion{
			Type:            core.SuggestionContextual,
			Description:     "Weekend dinner or entertainment",
			EstimatedAmount: categoryAverage(records, core.Entertainment, fallbackEntertainment),
			Category:        core.Entertainment,
			Confidence:      0.6,
			Reasoning:       "Weekend evening activity pattern",
		})
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// categoryAverage returns the historical mean for one category, or the
// fallback when no records of that category exist.
func categoryAverage(records []core.Expense, cat core.Category, fallback float64) float64 {
	var matched []core.Expense
	for _, e := range records {
		if e.Category == cat {
			matched = append(matched, e)
		}
	}
	if len(matched) == 0 {
		return fallback
	}
	return averageAmount(matched)
}
