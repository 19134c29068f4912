package ai

import (
	"fmt"
	"math"
	"sort"
	"time"

	"spendlens/internal/core"
)

const (
	maxInsights = 6
	// insightMinimum is the record count below which behavior analysis is
	// replaced by a single profile-building notice.
	insightMinimum = 3
	// velocityWindow compares the most recent N records against the N
	// immediately preceding them (list order).
	velocityWindow = 7
	// anomalyMinimum is the smallest record count worth a deviation check.
	anomalyMinimum = 10
	// anomalyRecentWindow limits anomaly flagging to the newest records.
	anomalyRecentWindow = 5
)

// AnalyzeSpendingBehavior produces a ranked list of behavior insights:
// time-of-day distribution, category concentration, velocity trend and
// anomaly detection, concatenated, sorted by confidence descending (stable)
// and truncated to 6. Records must be in chronological order: the velocity
// and anomaly windows read the slice tail as most recent.
func AnalyzeSpendingBehavior(records []core.Expense) []core.BehaviorInsight {
	if len(records) < insightMinimum {
		return []core.BehaviorInsight{{
			Type:       core.InsightInfo,
			Title:      "Building Your Profile",
			Message:    "Add more expenses to unlock AI-powered insights and predictions!",
			Confidence: 1.0,
			Actionable: true,
		}}
	}

	var insights []core.BehaviorInsight
	insights = append(insights, analyzeTimePatterns(records)...)
	insights = append(insights, analyzeCategoryDistribution(records)...)
	insights = append(insights, analyzeSpendingVelocity(records)...)
	insights = append(insights, detectSpendingAnomalies(records)...)

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Confidence > insights[j].Confidence
	})
	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

// analyzeTimePatterns buckets amounts into morning/afternoon/evening by the
// hour component of the record date (always midnight for calendar dates,
// same caveat as predictDailyRoutine) and reports the heaviest bucket.
// The message presents the bucket's raw summed amount as a percentage;
// the wording predates the computation and is kept until the display copy
// is revisited.
func analyzeTimePatterns(records []core.Expense) []core.BehaviorInsight {
	totals := make(map[string]float64)
	var order []string
	for _, e := range records {
		period := periodOfDay(e.Date)
		if _, seen := totals[period]; !seen {
			order = append(order, period)
		}
		totals[period] += e.Amount
	}
	if len(order) == 0 {
		return nil
	}

	top := order[0]
	for _, p := range order[1:] {
		if totals[p] > totals[top] {
			top = p
		}
	}

	return []core.BehaviorInsight{{
		Type:       core.InsightNeutral,
		Title:      "Peak Spending Time",
		Message:    fmt.Sprintf("You spend most during the %s (%d%% of total)", top, int(math.Round(totals[top]))),
		Confidence: 0.8,
		Actionable: true,
	}}
}

func periodOfDay(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "morning"
	case h < 17:
		return "afternoon"
	default:
		return "evening"
	}
}

// analyzeCategoryDistribution reports the share of total spending taken by
// the single heaviest category, actionable once it crosses half of all
// spending. Ties go to the category encountered first.
func analyzeCategoryDistribution(records []core.Expense) []core.BehaviorInsight {
	totals := make(map[core.Category]float64)
	var order []core.Category
	for _, e := range records {
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount
	}
	if len(order) == 0 {
		return nil
	}

	top := order[0]
	grand := 0.0
	for _, c := range order {
		grand += totals[c]
		if totals[c] > totals[top] {
			top = c
		}
	}
	if grand == 0 {
		return nil
	}
	percentage := int(math.Round(totals[top] / grand * 100))

	return []core.BehaviorInsight{{
		Type:       core.InsightWarning,
		Title:      "Top Spending Category",
		Message:    fmt.Sprintf("%d%% of your spending goes to %s", percentage, top),
		Confidence: 0.9,
		Actionable: percentage > 50,
	}}
}

// analyzeSpendingVelocity compares the sum of the most recent seven records
// against the seven immediately preceding them, by list order. A relative
// change above 20% in either direction is reported. With no prior window to
// compare against the change is undefined and the insight is skipped.
func analyzeSpendingVelocity(records []core.Expense) []core.BehaviorInsight {
	n := len(records)
	if n < velocityWindow {
		return nil
	}

	recent := records[n-velocityWindow:]
	olderStart := n - 2*velocityWindow
	if olderStart < 0 {
		olderStart = 0
	}
	older := records[olderStart : n-velocityWindow]

	recentTotal := sumAmounts(recent)
	olderTotal := sumAmounts(older)
	if olderTotal == 0 {
		return nil
	}

	change := (recentTotal - olderTotal) / olderTotal * 100
	if math.Abs(change) <= 20 {
		return nil
	}

	direction := "decreased"
	insightType := core.InsightSuccess
	if change > 0 {
		direction = "increased"
		insightType = core.InsightWarning
	}

	return []core.BehaviorInsight{{
		Type:       insightType,
		Title:      "Spending Trend",
		Message:    fmt.Sprintf("Your spending %s by %d%% this week", direction, int(math.Round(math.Abs(change)))),
		Confidence: 0.7,
		Actionable: change > 0,
	}}
}

// detectSpendingAnomalies flags recent records whose amounts deviate from
// the historical mean by more than two population standard deviations.
func detectSpendingAnomalies(records []core.Expense) []core.BehaviorInsight {
	n := len(records)
	if n < anomalyMinimum {
		return nil
	}

	mean := averageAmount(records)
	variance := 0.0
	for _, e := range records {
		variance += (e.Amount - mean) * (e.Amount - mean)
	}
	stdDev := math.Sqrt(variance / float64(n))

	recent := records[n-anomalyRecentWindow:]
	anomalies := 0
	for _, e := range recent {
		if math.Abs(e.Amount-mean) > 2*stdDev {
			anomalies++
		}
	}
	if anomalies == 0 {
		return nil
	}

	return []core.BehaviorInsight{{
		Type:       core.InsightInfo,
		Title:      "Unusual Spending Detected",
		Message:    fmt.Sprintf("%d recent expense(s) significantly differ from your usual pattern", anomalies),
		Confidence: 0.8,
		Actionable: false,
	}}
}

func sumAmounts(records []core.Expense) float64 {
	sum := 0.0
	for _, e := range records {
		sum += e.Amount
	}
	return sum
}
