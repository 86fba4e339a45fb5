package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/proposal-cli/internal/market"
	"github.com/sells-group/proposal-cli/internal/model"
)

func TestGenerateStrategyPillars(t *testing.T) {
	input := Input{
		KeyServices: []string{"Drain Repair", "Pipe Installation"},
		Market: market.Analysis{
			Trends: []market.Trend{{Name: "Digital Transformation"}},
		},
	}

	strategy := NewGenerator().GenerateStrategy(context.Background(), input)

	require.Len(t, strategy.Pillars, 3)
	assert.Equal(t, "Drain Repair", strategy.Pillars[0].Topic)
	assert.Equal(t, []string{
		"Drain Repair guide",
		"Drain Repair tutorial",
		"Drain Repair tips",
		"Drain Repair best practices",
	}, strategy.Pillars[0].Keywords)
	assert.Equal(t, []string{"blog posts", "videos", "infographics", "case studies"},
		strategy.Pillars[0].ContentTypes)
	assert.Equal(t, "Digital Transformation", strategy.Pillars[2].Topic)
}

func TestGenerateStrategyRecommendations(t *testing.T) {
	input := Input{
		SEO: SEOInput{KeywordOpportunities: []string{"emergency plumber", ""}},
	}

	strategy := NewGenerator().GenerateStrategy(context.Background(), input)

	require.Len(t, strategy.Recommendations, 3)
	assert.Equal(t, model.PriorityHigh, strategy.Recommendations[0].Priority)
	assert.Equal(t, "Create in-depth blog posts about industry topics", strategy.Recommendations[0].Description)
	assert.Equal(t, model.PriorityMedium, strategy.Recommendations[1].Priority)
	assert.Equal(t, "Develop video content for product demonstrations", strategy.Recommendations[1].Description)
	assert.Equal(t, "Target keyword: emergency plumber", strategy.Recommendations[2].Description)
	assert.Equal(t, model.PriorityHigh, strategy.Recommendations[2].Priority)
}

func TestGenerateStrategyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	strategy := NewGenerator().GenerateStrategy(ctx, Input{KeyServices: []string{"x"}})

	assert.Empty(t, strategy.Pillars)
	require.Len(t, strategy.Recommendations, 1)
	assert.Contains(t, strategy.Recommendations[0].Description, "Content strategy incomplete")
}
