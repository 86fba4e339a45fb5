package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 0, PriorityCritical.Rank())
	assert.Equal(t, 1, PriorityHigh.Rank())
	assert.Equal(t, 2, PriorityMedium.Rank())
	assert.Equal(t, 3, PriorityLow.Rank())
	assert.Equal(t, 4, PriorityUnknown.Rank())
	assert.Equal(t, 4, Priority("nonsense").Rank())
}

func TestEmptyInsight(t *testing.T) {
	ins := EmptyInsight(CategoryVisual)

	assert.Equal(t, CategoryVisual, ins.Category)
	assert.Zero(t, ins.Score)
	assert.Equal(t, PriorityUnknown, ins.Priority)
	assert.NotNil(t, ins.Findings)
	assert.Empty(t, ins.Findings)
	assert.NotNil(t, ins.Recommendations)
	assert.Empty(t, ins.Recommendations)
}

func TestCapturedPageEmpty(t *testing.T) {
	var page *CapturedPage
	assert.True(t, page.Empty())
	assert.True(t, (&CapturedPage{URL: "https://x.example"}).Empty())
	assert.False(t, (&CapturedPage{HTML: "<html></html>"}).Empty())
	assert.False(t, (&CapturedPage{Text: "hello"}).Empty())
}
