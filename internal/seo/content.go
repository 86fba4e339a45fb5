package seo

import (
	"go.uber.org/zap"

	"github.com/sells-group/proposal-cli/internal/model"
)

// ContentAgent scores keyword usage, document structure, and content quality.
type ContentAgent struct{}

// NewContentAgent returns a content SEO agent.
func NewContentAgent() *ContentAgent {
	return &ContentAgent{}
}

// Analyze scores the page and returns a content_seo insight. The overall
// score is the mean of the three sub-scores. Content findings never reach
// the critical tier.
func (a *ContentAgent) Analyze(url string, data PageData) model.Insight {
	if data.Empty() {
		zap.L().Warn("content seo: no page data", zap.String("url", url))
		return model.EmptyInsight(model.CategoryContentSEO)
	}

	recommendations := []string{}

	keyword := 1.0
	if !data.Keywords.PrimaryPresent {
		keyword *= 0.7
		recommendations = append(recommendations, "Add primary keyword to content")
	}

	structure := 1.0
	if data.Structure.MultipleH1 {
		structure *= 0.8
		recommendations = append(recommendations, "Use only one H1 tag per page")
	}

	quality := 1.0
	if data.Quality.ReadabilityScore < 60 {
		quality *= 0.8
		recommendations = append(recommendations, "Improve content readability")
	}

	score := (keyword + structure + quality) / 3

	insight := model.Insight{
		Category:        model.CategoryContentSEO,
		Score:           score,
		Findings:        []model.Finding{},
		Recommendations: recommendations,
		Priority:        contentPriority(score),
		Metadata: map[string]any{
			"url":             url,
			"keyword_score":   keyword,
			"structure_score": structure,
			"quality_score":   quality,
		},
	}

	zap.L().Debug("content seo scored",
		zap.String("url", url),
		zap.Float64("score", score),
		zap.String("priority", string(insight.Priority)))

	return insight
}

func contentPriority(score float64) model.Priority {
	switch {
	case score < 0.7:
		return model.PriorityHigh
	case score < 0.9:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}
