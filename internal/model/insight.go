// Package model defines the core data types shared across the proposal
// pipeline: analysis insights, recommendations, requests, and captured pages.
package model

// Category identifies which analyzer produced an insight or recommendation.
type Category string

const (
	CategoryTechnicalSEO Category = "technical_seo"
	CategoryContentSEO   Category = "content_seo"
	CategoryBacklinks    Category = "backlinks"
	CategoryVisual       Category = "visual"
	CategoryMarket       Category = "market"
	CategoryContent      Category = "content"
)

// Priority classifies how urgently a finding should be addressed.
// PriorityUnknown is the designated fallback when analysis fails or
// input data is missing.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
	PriorityUnknown  Priority = "unknown"
)

// Rank returns the sort rank for a priority. Lower rank sorts first.
// Unrecognized values (including PriorityUnknown) rank last.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Finding is a single issue surfaced by an analyzer.
type Finding struct {
	Issue    string `json:"issue"`
	Severity string `json:"severity"`
}

// Insight is the scored, prioritized result of one analysis category.
// Insights are immutable after creation; the aggregator only reads them.
type Insight struct {
	Category        Category       `json:"category"`
	Score           float64        `json:"score"` // 0.0-1.0
	Findings        []Finding      `json:"findings"`
	Recommendations []string       `json:"recommendations"`
	Priority        Priority       `json:"priority"`
	Metadata        map[string]any `json:"metadata"`
}

// EmptyInsight is the shared zero-value factory used by every analyzer when
// extracted data is empty or an analysis fails: score 0.0, unknown priority,
// no findings or recommendations.
func EmptyInsight(category Category) Insight {
	return Insight{
		Category:        category,
		Score:           0.0,
		Findings:        []Finding{},
		Recommendations: []string{},
		Priority:        PriorityUnknown,
		Metadata:        map[string]any{},
	}
}

// Recommendation is an aggregated, source-tagged improvement suggestion.
type Recommendation struct {
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
	Category    string   `json:"category"` // visual, market, seo, content
	Source      string   `json:"source"`   // producing analysis, e.g. "market_analysis"
	Type        string   `json:"type,omitempty"`
}
