package pipeline

import (
	"sort"

	"github.com/sells-group/proposal-cli/internal/model"
)

// Recommendation sources, recorded on every aggregated entry.
const (
	SourceVisual  = "visual_analysis"
	SourceMarket  = "market_analysis"
	SourceSEO     = "seo_analysis"
	SourceContent = "content_strategy"
)

// AggregateRecommendations tags each group with its category and source,
// concatenates them in visual, market, seo, content order, and stable-sorts
// by priority rank. Duplicates are kept; ties keep source order.
func AggregateRecommendations(visual, market, seo, content []model.Recommendation) []model.Recommendation {
	out := make([]model.Recommendation, 0, len(visual)+len(market)+len(seo)+len(content))
	out = append(out, tag(visual, "visual", SourceVisual)...)
	out = append(out, tag(market, "market", SourceMarket)...)
	out = append(out, tag(seo, "seo", SourceSEO)...)
	out = append(out, tag(content, "content", SourceContent)...)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}

func tag(recs []model.Recommendation, category, source string) []model.Recommendation {
	out := make([]model.Recommendation, len(recs))
	for i, r := range recs {
		r.Category = category
		r.Source = source
		out[i] = r
	}
	return out
}

// InsightRecommendations converts an insight's recommendation strings into
// aggregated entries carrying the insight's priority.
func InsightRecommendations(insights ...model.Insight) []model.Recommendation {
	var out []model.Recommendation
	for _, ins := range insights {
		for _, desc := range ins.Recommendations {
			out = append(out, model.Recommendation{
				Priority:    ins.Priority,
				Description: desc,
			})
		}
	}
	return out
}
