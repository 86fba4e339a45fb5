// Package content builds the content marketing strategy section of a
// proposal: topic pillars with keyword variants and content-type guidance.
package content

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/proposal-cli/internal/market"
	"github.com/sells-group/proposal-cli/internal/model"
)

// keywordModifiers expand a pillar topic into long-tail keyword variants.
var keywordModifiers = []string{"guide", "tutorial", "tips", "best practices"}

// pillarContentTypes are the formats recommended for every pillar.
var pillarContentTypes = []string{"blog posts", "videos", "infographics", "case studies"}

// Pillar is one content topic with its keyword variants and formats.
type Pillar struct {
	Topic        string   `json:"topic"`
	Keywords     []string `json:"keywords"`
	ContentTypes []string `json:"content_types"`
}

// SEOInput carries the SEO signals the strategy draws on.
type SEOInput struct {
	KeywordOpportunities []string
}

// Input is the generator's input, drawn from the request and the upstream
// analyses.
type Input struct {
	Market         market.Analysis
	SEO            SEOInput
	TargetAudience []string
	KeyServices    []string
}

// Strategy is the generator's output.
type Strategy struct {
	Pillars         []Pillar               `json:"pillars"`
	Recommendations []model.Recommendation `json:"recommendations"`
}

// Generator derives a content strategy from market and SEO analysis.
type Generator struct{}

// NewGenerator returns a content strategy generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateStrategy builds one pillar per key service and per market trend,
// plus fixed and keyword-driven recommendations. Failures degrade to an
// empty strategy with a single error note.
func (g *Generator) GenerateStrategy(ctx context.Context, input Input) Strategy {
	if err := ctx.Err(); err != nil {
		zap.L().Warn("content strategy degraded", zap.Error(err))
		return Strategy{
			Pillars: []Pillar{},
			Recommendations: []model.Recommendation{{
				Priority:    model.PriorityHigh,
				Description: "Content strategy incomplete: " + err.Error(),
				Type:        "error",
			}},
		}
	}

	strategy := Strategy{Pillars: []Pillar{}}

	for _, service := range input.KeyServices {
		if service != "" {
			strategy.Pillars = append(strategy.Pillars, buildPillar(service))
		}
	}
	for _, trend := range input.Market.Trends {
		strategy.Pillars = append(strategy.Pillars, buildPillar(trend.Name))
	}

	strategy.Recommendations = []model.Recommendation{
		{
			Priority:    model.PriorityHigh,
			Description: "Create in-depth blog posts about industry topics",
			Type:        "content_type",
		},
		{
			Priority:    model.PriorityMedium,
			Description: "Develop video content for product demonstrations",
			Type:        "content_type",
		},
	}
	for _, kw := range input.SEO.KeywordOpportunities {
		if kw == "" {
			continue
		}
		strategy.Recommendations = append(strategy.Recommendations, model.Recommendation{
			Priority:    model.PriorityHigh,
			Description: "Target keyword: " + kw,
			Type:        "keyword",
		})
	}

	zap.L().Debug("content strategy generated",
		zap.Int("pillars", len(strategy.Pillars)),
		zap.Int("recommendations", len(strategy.Recommendations)))

	return strategy
}

func buildPillar(topic string) Pillar {
	keywords := make([]string, 0, len(keywordModifiers))
	for _, mod := range keywordModifiers {
		keywords = append(keywords, topic+" "+mod)
	}
	return Pillar{
		Topic:        topic,
		Keywords:     keywords,
		ContentTypes: append([]string(nil), pillarContentTypes...),
	}
}
