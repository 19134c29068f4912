// Package ai implements the heuristic analytics engine: keyword-based
// category classification, pattern-derived expense predictions, behavior
// insights and contextual suggestions. Everything here is a stateless
// function of the record list (and, where relevant, the current time);
// confidence values are heuristic scores in [0,1], not probabilities.
package ai

import (
	"regexp"
	"strings"

	"spendlens/internal/core"
)

// categoryRules holds the fixed keyword list and word-boundary patterns for
// one category. The tables are static; classification is deterministic and
// independent of record history.
type categoryRules struct {
	keywords []string
	patterns []*regexp.Regexp
}

var classifierRules = map[core.Category]categoryRules{
	core.Food: {
		keywords: []string{"restaurant", "cafe", "pizza", "burger", "lunch", "dinner", "breakfast", "grocery", "starbucks", "mcdonalds", "food", "eat", "meal", "snack", "coffee"},
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(eat|food|meal|restaurant|cafe|pizza|burger|lunch|dinner|breakfast|grocery|coffee)\b`)},
	},
	core.Transportation: {
		keywords: []string{"gas", "fuel", "uber", "lyft", "taxi", "bus", "train", "parking", "metro", "transit", "car", "vehicle", "transport"},
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(gas|fuel|uber|lyft|taxi|bus|train|parking|metro|transit)\b`)},
	},
	core.Entertainment: {
		keywords: []string{"movie", "cinema", "netflix", "spotify", "game", "concert", "show", "theater", "entertainment", "fun", "hobby"},
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(movie|cinema|netflix|spotify|game|concert|show|theater|entertainment)\b`)},
	},
	core.Shopping: {
		keywords: []string{"amazon", "store", "shop", "buy", "purchase", "retail", "clothing", "shoes", "electronics", "book"},
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(amazon|store|shop|buy|purchase|retail|clothing|shoes|electronics|book)\b`)},
	},
	core.Bills: {
		keywords: []string{"electric", "water", "internet", "phone", "rent", "insurance", "bill", "utility", "subscription", "payment"},
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(electric|water|internet|phone|rent|insurance|bill|utility|subscription|payment)\b`)},
	},
	core.Other: {
		keywords: []string{"misc", "other", "various", "unknown"},
		patterns: []*regexp.Regexp{regexp.MustCompile(`(?i)\b(misc|other|various|unknown)\b`)},
	},
}

const (
	// floorConfidence is returned when no category scores above it.
	floorConfidence = 0.1
	// maxConfidence caps any single category score.
	maxConfidence = 0.95
	// patternBonus is added per matching word-boundary pattern.
	patternBonus = 0.3
)

// SuggestCategory maps a free-text description to the best-guess category.
//
// Per-category score: for each keyword literally contained in the normalized
// description, len(keyword)/len(description) — longer, more specific hits
// weigh more against the overall text length — plus a flat bonus per
// matching pattern. Categories are evaluated in core.Categories order and a
// later category must strictly beat the running best, so earlier categories
// keep priority on equal scores. Anything below the floor falls back to
// Other at the floor confidence.
func SuggestCategory(description string) core.CategorySuggestion {
	desc := strings.ToLower(strings.TrimSpace(description))

	best := core.Other
	bestConfidence := floorConfidence

	if desc != "" {
		for _, cat := range core.Categories {
			rules := classifierRules[cat]
			score := 0.0
			for _, kw := range rules.keywords {
				if strings.Contains(desc, kw) {
					score += float64(len(kw)) / float64(len(desc))
				}
			}
			for _, p := range rules.patterns {
				if p.MatchString(desc) {
					score += patternBonus
				}
			}
			if score > bestConfidence {
				best = cat
				bestConfidence = min(score, maxConfidence)
			}
		}
	}

	return core.CategorySuggestion{
		Category:     best,
		Confidence:   bestConfidence,
		Alternatives: alternativeCategories(best),
	}
}

// alternativeCategories returns the first two categories, in enumeration
// order, other than the winner. A static complement rather than a true
// second/third-best ranking.
func alternativeCategories(primary core.Category) []core.Category {
	alternatives := make([]core.Category, 0, 2)
	for _, c := range core.Categories {
		if c == primary {
			continue
		}
		alternatives = append(alternatives, c)
		if len(alternatives) == 2 {
			break
		}
	}
	return alternatives
}
