package ai

import (
	"testing"
	"time"

	"spendlens/internal/core"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := core.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func exp(t *testing.T, date string, amount float64, cat core.Category, desc string) core.Expense {
	t.Helper()
	return core.Expense{
		ID:          desc,
		Date:        mustDate(t, date),
		Amount:      amount,
		Category:    cat,
		Description: desc,
	}
}

func TestPredictColdStart(t *testing.T) {
	records := []core.Expense{
		exp(t, "2026-01-05", 10, core.Food, "lunch"),
		exp(t, "2026-01-06", 20, core.Bills, "rent"),
	}
	now := time.Date(2026, 1, 7, 15, 0, 0, 0, time.UTC)

	got := PredictUpcomingExpenses(records, now)
	if len(got) != 3 {
		t.Fatalf("expected 3 default predictions, got %d", len(got))
	}
	wantConf := []float64{0.5, 0.6, 0.4}
	wantDesc := []string{"Morning coffee", "Lunch", "Gas/Transportation"}
	for i := range got {
		if got[i].Confidence != wantConf[i] {
			t.Fatalf("prediction %d confidence %v, want %v", i, got[i].Confidence, wantConf[i])
		}
		if got[i].Description != wantDesc[i] {
			t.Fatalf("prediction %d description %q, want %q", i, got[i].Description, wantDesc[i])
		}
		if got[i].Type != core.PredictionDefault {
			t.Fatalf("prediction %d type %s, want default", i, got[i].Type)
		}
	}
}

func TestPredictMonthlyRecurring(t *testing.T) {
	records := []core.Expense{
		exp(t, "2026-01-01", 800, core.Bills, "Monthly rent"),
		exp(t, "2026-01-03", 40, core.Bills, "Car insurance"),
		exp(t, "2026-01-05", 12, core.Entertainment, "Netflix subscription"),
		exp(t, "2026-01-08", 25, core.Food, "groceries"),
		exp(t, "2026-01-09", 30, core.Food, "dinner out"),
	}
	// Wednesday afternoon: daily and weekly predictors stay quiet.
	now := time.Date(2026, 1, 14, 15, 0, 0, 0, time.UTC)

	got := PredictUpcomingExpenses(records, now)
	if len(got) != 1 {
		t.Fatalf("expected 1 prediction, got %d: %+v", len(got), got)
	}
	p := got[0]
	if p.Type != core.PredictionRecurring || p.Category != core.Bills {
		t.Fatalf("unexpected prediction %+v", p)
	}
	if p.Confidence != 0.9 {
		t.Fatalf("confidence %v, want 0.9", p.Confidence)
	}
	wantAmount := (800.0 + 40.0 + 12.0) / 3.0
	if p.EstimatedAmount != wantAmount {
		t.Fatalf("estimated amount %v, want %v", p.EstimatedAmount, wantAmount)
	}
}

func TestPredictTransportationCycle(t *testing.T) {
	records := []core.Expense{
		exp(t, "2026-01-01", 40, core.Transportation, "gas"),
		exp(t, "2026-01-08", 42, core.Transportation, "gas"),
		exp(t, "2026-01-15", 38, core.Transportation, "gas"),
		exp(t, "2026-01-10", 15, core.Food, "lunch"),
		exp(t, "2026-01-11", 18, core.Food, "lunch"),
	}
	// Six days after the last fill-up, mean gap is seven days: 80% of the
	// cycle has elapsed, the predictor should fire.
	now := time.Date(2026, 1, 21, 15, 0, 0, 0, time.UTC)

	got := PredictUpcomingExpenses(records, now)
	var cycle *core.Prediction
	for i := range got {
		if got[i].Type == core.PredictionContextual {
			cycle = &got[i]
		}
	}
	if cycle == nil {
		t.Fatalf("expected a contextual transportation prediction, got %+v", got)
	}
	if cycle.Confidence != 0.7 || cycle.Category != core.Transportation {
		t.Fatalf("unexpected prediction %+v", cycle)
	}
	wantAmount := (40.0 + 42.0 + 38.0) / 3.0
	if cycle.EstimatedAmount != wantAmount {
		t.Fatalf("estimated amount %v, want %v", cycle.EstimatedAmount, wantAmount)
	}

	// Right after a fill-up the cycle predictor stays quiet.
	early := time.Date(2026, 1, 16, 15, 0, 0, 0, time.UTC)
	for _, p := range PredictUpcomingExpenses(records, early) {
		if p.Type == core.PredictionContextual {
			t.Fatalf("cycle predictor fired too early: %+v", p)
		}
	}
}

func TestPredictWeekendPattern(t *testing.T) {
	records := []core.Expense{
		exp(t, "2026-01-02", 50, core.Entertainment, "friday movie"), // Friday
		exp(t, "2026-01-03", 60, core.Food, "saturday dinner"),       // Saturday
		exp(t, "2026-01-05", 10, core.Food, "monday lunch"),
		exp(t, "2026-01-06", 10, core.Food, "tuesday lunch"),
		exp(t, "2026-01-07", 10, core.Food, "wednesday lunch"),
	}
	// A Friday evening.
	now := time.Date(2026, 1, 16, 20, 0, 0, 0, time.UTC)

	got := PredictUpcomingExpenses(records, now)
	var weekly *core.Prediction
	for i := range got {
		if got[i].Type == core.PredictionWeekly {
			weekly = &got[i]
		}
	}
	if weekly == nil {
		t.Fatalf("expected a weekly prediction on Friday, got %+v", got)
	}
	if weekly.Confidence != 0.6 {
		t.Fatalf("confidence %v, want 0.6", weekly.Confidence)
	}
	if weekly.EstimatedAmount != 55 {
		t.Fatalf("estimated amount %v, want mean of weekend records 55", weekly.EstimatedAmount)
	}
}

func TestPredictionsRankedAndCapped(t *testing.T) {
	var records []core.Expense
	for i := 0; i < 6; i++ {
		records = append(records, exp(t, "2026-01-02", 40, core.Transportation, "weekly gas bill"))
	}
	now := time.Date(2026, 1, 16, 20, 0, 0, 0, time.UTC) // Friday evening

	got := PredictUpcomingExpenses(records, now)
	if len(got) > 8 {
		t.Fatalf("prediction list exceeds cap: %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Confidence > got[i-1].Confidence {
			t.Fatalf("predictions not sorted by confidence: %+v", got)
		}
	}
}
