package ai

import (
	"sort"
	"strings"
	"time"

	"spendlens/internal/core"
)

const (
	maxPredictions = 8
	// coldStartMinimum is the record count below which pattern logic is
	// bypassed in favor of fixed default predictions.
	coldStartMinimum = 5
	// defaultIntervalDays is assumed when fewer than two records exist to
	// measure a cycle from.
	defaultIntervalDays = 7.0
)

// billKeywords marks descriptions as monthly recurring (substring match,
// case-insensitive).
var billKeywords = []string{"rent", "insurance", "subscription", "bill", "utility"}

// PredictUpcomingExpenses produces a ranked list of predicted near-future
// expenses. All sub-predictors run unconditionally; their outputs are
// concatenated, sorted by confidence descending (stable, so emission order
// breaks ties) and truncated to the top 8. With fewer than five records the
// pattern logic is bypassed entirely and fixed cold-start defaults are
// returned.
func PredictUpcomingExpenses(records []core.Expense, now time.Time) []core.Prediction {
	if len(records) < coldStartMinimum {
		return defaultPredictions()
	}

	var predictions []core.Prediction
	predictions = append(predictions, predictDailyRoutine(records, now)...)
	predictions = append(predictions, predictWeeklyPatterns(records, now)...)
	predictions = append(predictions, predictMonthlyRecurring(records)...)
	predictions = append(predictions, predictContextual(records, now)...)

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Confidence > predictions[j].Confidence
	})
	if len(predictions) > maxPredictions {
		predictions = predictions[:maxPredictions]
	}
	return predictions
}

// predictDailyRoutine fires only during morning hours (6-10). It matches
// records whose date's hour component also falls in that window. Record
// dates carry no time of day, so the parsed hour is always midnight and
// this filter matches nothing against real data; the behavior is kept
// as-is pending a decision on true timestamps.
func predictDailyRoutine(records []core.Expense, now time.Time) []core.Prediction {
	hour := now.Hour()
	if hour < 6 || hour > 10 {
		return nil
	}

	var morning []core.Expense
	for _, e := range records {
		if h := e.Date.Hour(); h >= 6 && h <= 10 {
			morning = append(morning, e)
		}
	}
	if len(morning) == 0 {
		return nil
	}

	return []core.Prediction{{
		Description:     "Morning coffee/breakfast",
		EstimatedAmount: averageAmount(morning),
		Category:        core.Food,
		Confidence:      0.8,
		Reasoning:       "Based on your morning routine pattern",
		Timeframe:       "today",
		Type:            core.PredictionRoutine,
	}}
}

// predictWeeklyPatterns fires on Friday and Saturday, looking at historical
// records that fall on Friday, Saturday or Sunday.
func predictWeeklyPatterns(records []core.Expense, now time.Time) []core.Prediction {
	day := now.Weekday()
	if day != time.Friday && day != time.Saturday {
		return nil
	}

	var weekend []core.Expense
	for _, e := range records {
		switch e.Date.Weekday() {
		case time.Friday, time.Saturday, time.Sunday:
			weekend = append(weekend, e)
		}
	}
	if len(weekend) == 0 {
		return nil
	}

	return []core.Prediction{{
		Description:     "Weekend entertainment or dining",
		EstimatedAmount: averageAmount(weekend),
		Category:        core.Entertainment,
		Confidence:      0.6,
		Reasoning:       "Weekend spending pattern detected",
		Timeframe:       "this weekend",
		Type:            core.PredictionWeekly,
	}}
}

// predictMonthlyRecurring matches bill-related keywords anywhere in the
// description.
func predictMonthlyRecurring(records []core.Expense) []core.Prediction {
	var recurring []core.Expense
	for _, e := range records {
		desc := strings.ToLower(e.Description)
		for _, kw := range billKeywords {
			if strings.Contains(desc, kw) {
				recurring = append(recurring, e)
				break
			}
		}
	}
	if len(recurring) == 0 {
		return nil
	}

	return []core.Prediction{{
		Description:     "Monthly bills and subscriptions",
		EstimatedAmount: averageAmount(recurring),
		Category:        core.Bills,
		Confidence:      0.9,
		Reasoning:       "Recurring monthly expense pattern",
		Timeframe:       "this month",
		Type:            core.PredictionRecurring,
	}}
}

// predictContextual watches the transportation refuel cycle: if the time
// since the last transportation record has reached 80% of the mean gap
// between consecutive transportation records, another one is likely soon.
func predictContextual(records []core.Expense, now time.Time) []core.Prediction {
	var transport []core.Expense
	for _, e := range records {
		if e.Category == core.Transportation {
			transport = append(transport, e)
		}
	}
	if len(transport) == 0 {
		return nil
	}

	sort.SliceStable(transport, func(i, j int) bool {
		return transport[i].Date.Before(transport[j].Date)
	})
	avgGap := averageIntervalDays(transport)
	last := transport[len(transport)-1]
	daysSince := float64(daysBetween(last.Date, now))

	if daysSince < avgGap*0.8 {
		return nil
	}

	return []core.Prediction{{
		Description:     "Fuel or transportation expense",
		EstimatedAmount: averageAmount(transport),
		Category:        core.Transportation,
		Confidence:      0.7,
		Reasoning:       "Based on your transportation expense cycle",
		Timeframe:       "soon",
		Type:            core.PredictionContextual,
	}}
}

// defaultPredictions is the fixed cold-start fallback, not a computed
// result. Order and confidences are part of the contract.
func defaultPredictions() []core.Prediction {
	return []core.Prediction{
		{
			Description:     "Morning coffee",
			EstimatedAmount: 5,
			Category:        core.Food,
			Confidence:      0.5,
			Reasoning:       "Common daily expense",
			Timeframe:       "today",
			Type:            core.PredictionDefault,
		},
		{
			Description:     "Lunch",
			EstimatedAmount: 12,
			Category:        core.Food,
			Confidence:      0.6,
			Reasoning:       "Typical midday expense",
			Timeframe:       "today",
			Type:            core.PredictionDefault,
		},
		{
			Description:     "Gas/Transportation",
			EstimatedAmount: 35,
			Category:        core.Transportation,
			Confidence:      0.4,
			Reasoning:       "Weekly transportation need",
			Timeframe:       "this week",
			Type:            core.PredictionDefault,
		},
	}
}

// averageAmount returns the arithmetic mean of the records' amounts,
// 0 for an empty slice.
func averageAmount(records []core.Expense) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range records {
		sum += e.Amount
	}
	return sum / float64(len(records))
}

// averageIntervalDays returns the mean day-gap between consecutive records,
// which must already be sorted by date. Falls back to a weekly interval
// when there are fewer than two records to measure.
func averageIntervalDays(sorted []core.Expense) float64 {
	if len(sorted) < 2 {
		return defaultIntervalDays
	}
	total := 0
	for i := 1; i < len(sorted); i++ {
		total += daysBetween(sorted[i-1].Date, sorted[i].Date)
	}
	return float64(total) / float64(len(sorted)-1)
}

// daysBetween counts whole days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
