package ai

import (
	"strings"
	"testing"

	"spendlens/internal/core"
)

func TestAnalyzeColdStart(t *testing.T) {
	records := []core.Expense{
		exp(t, "2026-01-05", 10, core.Food, "lunch"),
		exp(t, "2026-01-06", 20, core.Bills, "rent"),
	}
	got := AnalyzeSpendingBehavior(records)
	if len(got) != 1 {
		t.Fatalf("expected exactly one insight, got %d", len(got))
	}
	if got[0].Title != "Building Your Profile" || got[0].Confidence != 1.0 {
		t.Fatalf("unexpected cold-start insight %+v", got[0])
	}
}

func TestAnalyzeVelocityTrend(t *testing.T) {
	// Seven older records of 10 followed by seven recent records of 20:
	// spending doubled, which must surface as an actionable warning.
	var records []core.Expense
	for i := 0; i < 7; i++ {
		records = append(records, exp(t, "2026-01-01", 10, core.Food, "older"))
	}
	for i := 0; i < 7; i++ {
		records = append(records, exp(t, "2026-01-08", 20, core.Food, "recent"))
	}

	got := AnalyzeSpendingBehavior(records)
	var trend *core.BehaviorInsight
	for i := range got {
		if got[i].Title == "Spending Trend" {
			trend = &got[i]
		}
	}
	if trend == nil {
		t.Fatalf("expected a trend insight, got %+v", got)
	}
	if trend.Type != core.InsightWarning || !trend.Actionable {
		t.Fatalf("expected actionable warning, got %+v", trend)
	}
	if !strings.Contains(trend.Message, "increased by 100%") {
		t.Fatalf("unexpected trend message %q", trend.Message)
	}
}

func TestAnalyzeVelocityDecrease(t *testing.T) {
	var records []core.Expense
	for i := 0; i < 7; i++ {
		records = append(records, exp(t, "2026-01-01", 40, core.Food, "older"))
	}
	for i := 0; i < 7; i++ {
		records = append(records, exp(t, "2026-01-08", 10, core.Food, "recent"))
	}

	got := AnalyzeSpendingBehavior(records)
	for _, in := range got {
		if in.Title == "Spending Trend" {
			if in.Type != core.InsightSuccess || in.Actionable {
				t.Fatalf("decrease should be non-actionable success, got %+v", in)
			}
			return
		}
	}
	t.Fatalf("expected a trend insight, got %+v", got)
}

func TestAnomaliesAbsentForUniformAmounts(t *testing.T) {
	// Identical amounts give zero standard deviation, so nothing can
	// exceed two of them.
	var records []core.Expense
	for i := 0; i < 10; i++ {
		records = append(records, exp(t, "2026-01-02", 15, core.Food, "same lunch"))
	}
	for _, in := range AnalyzeSpendingBehavior(records) {
		if in.Title == "Unusual Spending Detected" {
			t.Fatalf("unexpected anomaly insight %+v", in)
		}
	}
}

func TestAnomalyDetected(t *testing.T) {
	var records []core.Expense
	for i := 0; i < 11; i++ {
		records = append(records, exp(t, "2026-01-02", 10, core.Food, "lunch"))
	}
	records = append(records, exp(t, "2026-01-20", 500, core.Shopping, "new laptop"))

	got := AnalyzeSpendingBehavior(records)
	for _, in := range got {
		if in.Title == "Unusual Spending Detected" {
			if in.Type != core.InsightInfo || in.Actionable {
				t.Fatalf("anomaly insight should be non-actionable info, got %+v", in)
			}
			return
		}
	}
	t.Fatalf("expected an anomaly insight, got %+v", got)
}

func TestCategoryConcentration(t *testing.T) {
	records := []core.Expense{
		exp(t, "2026-01-02", 90, core.Food, "groceries"),
		exp(t, "2026-01-03", 5, core.Bills, "water"),
		exp(t, "2026-01-04", 5, core.Shopping, "socks"),
	}
	got := AnalyzeSpendingBehavior(records)
	for _, in := range got {
		if in.Title == "Top Spending Category" {
			if in.Type != core.InsightWarning || !in.Actionable {
				t.Fatalf("expected actionable warning above 50%%, got %+v", in)
			}
			if !strings.Contains(in.Message, "90% of your spending goes to Food") {
				t.Fatalf("unexpected message %q", in.Message)
			}
			return
		}
	}
	t.Fatalf("expected a concentration insight, got %+v", got)
}

func TestInsightsRankedAndCapped(t *testing.T) {
	var records []core.Expense
	for i := 0; i < 14; i++ {
		amount := 10.0
		if i >= 7 {
			amount = 30
		}
		records = append(records, exp(t, "2026-01-02", amount, core.Food, "lunch"))
	}
	got := AnalyzeSpendingBehavior(records)
	if len(got) > 6 {
		t.Fatalf("insight list exceeds cap: %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Confidence > got[i-1].Confidence {
			t.Fatalf("insights not sorted by confidence: %+v", got)
		}
	}
}
