package core

import "time"

// Derived entities. All of these are pure functions of the record list at
// call time: recomputed on demand, never persisted, no teardown.

// Summary is the dashboard aggregate over the full record set.
type Summary struct {
	TotalSpending     float64              `json:"totalSpending"`
	MonthlySpending   float64              `json:"monthlySpending"`
	CategoryBreakdown map[Category]float64 `json:"categoryBreakdown"`
	TopCategory       *Category            `json:"topCategory"`
	ExpenseCount      int                  `json:"expenseCount"`
}

// VendorStats aggregates the records grouped under one extracted vendor name.
type VendorStats struct {
	Name               string               `json:"name"`
	TotalSpent         float64              `json:"totalSpent"`
	TransactionCount   int                  `json:"transactionCount"`
	Percentage         float64              `json:"percentage"`
	AverageTransaction float64              `json:"averageTransaction"`
	Categories         map[Category]float64 `json:"categories"`
	LastTransaction    time.Time            `json:"lastTransaction"`
}

// CategorySuggestion is the classifier output for one description.
// Alternatives is a static complement of the winner, not a ranked
// runner-up list.
type CategorySuggestion struct {
	Category     Category   `json:"category"`
	Confidence   float64    `json:"confidence"`
	Alternatives []Category `json:"alternatives"`
}

// PredictionType tags which sub-predictor emitted a prediction.
type PredictionType string

const (
	PredictionRoutine    PredictionType = "routine"
	PredictionWeekly     PredictionType = "weekly"
	PredictionRecurring  PredictionType = "recurring"
	PredictionContextual PredictionType = "contextual"
	PredictionDefault    PredictionType = "default"
)

// Prediction is one predicted near-future expense.
type Prediction struct {
	Description     string         `json:"description"`
	EstimatedAmount float64        `json:"estimatedAmount"`
	Category        Category       `json:"category"`
	Confidence      float64        `json:"confidence"`
	Reasoning       string         `json:"reasoning"`
	Timeframe       string         `json:"timeframe"`
	Type            PredictionType `json:"type"`
}

// InsightType tags the tone of a behavior insight.
type InsightType string

const (
	InsightInfo    InsightType = "info"
	InsightWarning InsightType = "warning"
	InsightSuccess InsightType = "success"
	InsightNeutral InsightType = "insight"
)

// BehaviorInsight is one observation about spending behavior.
type BehaviorInsight struct {
	Type       InsightType `json:"type"`
	Title      string      `json:"title"`
	Message    string      `json:"message"`
	Confidence float64     `json:"confidence"`
	Actionable bool        `json:"actionable"`
}

// SuggestionType tags how a smart suggestion was derived.
type SuggestionType string

const (
	SuggestionTimeBased  SuggestionType = "time-based"
	SuggestionContextual SuggestionType = "contextual"
)

// SmartSuggestion is a context-aware entry prompt for the current moment.
type SmartSuggestion struct {
	Type            SuggestionType `json:"type"`
	Description     string         `json:"description"`
	EstimatedAmount float64        `json:"estimatedAmount"`
	Category        Category       `json:"category"`
	Confidence      float64        `json:"confidence"`
	Reasoning       string         `json:"reasoning"`
}
