package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/proposal-cli/internal/model"
)

func rec(priority model.Priority, desc string) model.Recommendation {
	return model.Recommendation{Priority: priority, Description: desc}
}

func TestAggregateRecommendationsSortsByPriority(t *testing.T) {
	out := AggregateRecommendations(
		[]model.Recommendation{rec(model.PriorityMedium, "m")},
		[]model.Recommendation{rec(model.PriorityCritical, "c")},
		[]model.Recommendation{rec(model.PriorityLow, "l")},
		[]model.Recommendation{rec(model.PriorityHigh, "h")},
	)

	descs := make([]string, len(out))
	for i, r := range out {
		descs[i] = r.Description
	}
	assert.Equal(t, []string{"c", "h", "m", "l"}, descs)
}

func TestAggregateRecommendationsTagsSourceAndCategory(t *testing.T) {
	out := AggregateRecommendations(
		[]model.Recommendation{rec(model.PriorityHigh, "v")},
		[]model.Recommendation{rec(model.PriorityHigh, "m")},
		[]model.Recommendation{rec(model.PriorityHigh, "s")},
		[]model.Recommendation{rec(model.PriorityHigh, "c")},
	)

	require.Len(t, out, 4)
	assert.Equal(t, "visual", out[0].Category)
	assert.Equal(t, SourceVisual, out[0].Source)
	assert.Equal(t, "market", out[1].Category)
	assert.Equal(t, SourceMarket, out[1].Source)
	assert.Equal(t, "seo", out[2].Category)
	assert.Equal(t, SourceSEO, out[2].Source)
	assert.Equal(t, "content", out[3].Category)
	assert.Equal(t, SourceContent, out[3].Source)
}

func TestAggregateRecommendationsStableWithinPriority(t *testing.T) {
	// Equal priorities keep visual, market, seo, content order.
	out := AggregateRecommendations(
		[]model.Recommendation{rec(model.PriorityHigh, "v1"), rec(model.PriorityHigh, "v2")},
		[]model.Recommendation{rec(model.PriorityHigh, "m1")},
		nil,
		[]model.Recommendation{rec(model.PriorityHigh, "c1")},
	)

	descs := make([]string, len(out))
	for i, r := range out {
		descs[i] = r.Description
	}
	assert.Equal(t, []string{"v1", "v2", "m1", "c1"}, descs)
}

func TestAggregateRecommendationsKeepsDuplicates(t *testing.T) {
	out := AggregateRecommendations(
		[]model.Recommendation{rec(model.PriorityHigh, "same")},
		[]model.Recommendation{rec(model.PriorityHigh, "same")},
		nil, nil,
	)
	assert.Len(t, out, 2)
}

func TestAggregateRecommendationsUnknownPriorityLast(t *testing.T) {
	out := AggregateRecommendations(
		[]model.Recommendation{rec(model.PriorityUnknown, "u")},
		[]model.Recommendation{rec(model.PriorityLow, "l")},
		nil, nil,
	)
	assert.Equal(t, "l", out[0].Description)
	assert.Equal(t, "u", out[1].Description)
}

func TestInsightRecommendations(t *testing.T) {
	a := model.Insight{
		Priority:        model.PriorityHigh,
		Recommendations: []string{"one", "two"},
	}
	b := model.Insight{
		Priority:        model.PriorityLow,
		Recommendations: []string{"three"},
	}

	out := InsightRecommendations(a, b)
	require.Len(t, out, 3)
	assert.Equal(t, model.PriorityHigh, out[0].Priority)
	assert.Equal(t, "one", out[0].Description)
	assert.Equal(t, model.PriorityLow, out[2].Priority)
}
