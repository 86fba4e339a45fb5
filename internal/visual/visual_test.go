package visual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/proposal-cli/internal/model"
)

func samplePage() *model.CapturedPage {
	return &model.CapturedPage{
		URL: "https://acme.example/",
		HTML: `<html><body>
<nav><a href="/a">A</a><a href="/b">B</a><a href="/c">C</a></nav>
<div class="site-logo"><img src="logo.png" alt="Acme"></div>
<h1>Acme</h1><h2>Trusted plumbing expertise</h2>
<p>One</p><p>Two</p><p>Three</p><p>Four</p>
<form><input type="email" required></form>
<button aria-label="Open menu">Menu</button>
</body></html>`,
		Text: "Acme delivers trusted professional plumbing expertise for the industry.",
		Styles: []model.StyleRecord{
			{"color": "#333333", "background-color": "#ffffff", "font-family": "Inter, sans-serif", "font-size": "16px"},
			{"color": "rgb(51,51,51)", "background-color": "#ffffff", "font-family": "Inter", "font-size": "14px"},
			{"color": "#0055aa", "font-family": "Inter", "font-size": "24px", "class": "brand-heading"},
		},
	}
}

func TestBuildProfile(t *testing.T) {
	p := BuildProfile(samplePage())
	require.False(t, p.Empty())

	// rgb(51,51,51) normalizes into the #333333 bucket.
	assert.Equal(t, 2, p.Colors["#333333"])
	assert.Equal(t, 2, p.Colors["#ffffff"])
	assert.Equal(t, 3, p.Fonts["inter"])
	assert.True(t, p.HasLogo)
	assert.Equal(t, 3, p.NavLinkCount)
	assert.Equal(t, 1, p.FormCount)
	assert.Equal(t, 1, p.FormsWithValidation)
	assert.Equal(t, 1, p.ImagesWithAlt)
	assert.Equal(t, 1, p.AriaLabelCount)
	assert.Equal(t, []int{1, 2}, p.HeadingLevels)
	assert.Equal(t, 4, p.ParagraphCount)
	assert.Positive(t, p.ToneTallies["professional"])

	dominant, share := p.DominantFont()
	assert.Equal(t, "inter", dominant)
	assert.InDelta(t, 1.0, share, 1e-9)
}

func TestBuildProfileEmpty(t *testing.T) {
	assert.True(t, BuildProfile(nil).Empty())
	assert.True(t, BuildProfile(&model.CapturedPage{URL: "https://x.example"}).Empty())
}

func TestTopColorsDeterministic(t *testing.T) {
	p := Profile{Colors: map[string]int{"#aaaaaa": 2, "#bbbbbb": 2, "#cccccc": 5}}
	assert.Equal(t, []string{"#cccccc", "#aaaaaa", "#bbbbbb"}, p.TopColors(3))
	assert.Equal(t, []string{"#cccccc"}, p.TopColors(1))
}

func TestDesignAgent(t *testing.T) {
	insight := NewDesignAgent().Analyze("https://acme.example", BuildProfile(samplePage()))

	assert.Equal(t, model.CategoryVisual, insight.Category)
	assert.Greater(t, insight.Score, 0.0)
	assert.LessOrEqual(t, insight.Score, 1.0)
	assert.Contains(t, insight.Metadata, "harmony_score")
	assert.Contains(t, insight.Metadata, "typography_score")
	assert.Contains(t, insight.Metadata, "contrast_score")
}

func TestDesignAgentEmptyProfile(t *testing.T) {
	insight := NewDesignAgent().Analyze("https://acme.example", Profile{})
	assert.Equal(t, model.EmptyInsight(model.CategoryVisual), insight)
}

func TestDesignPriorityTiers(t *testing.T) {
	assert.Equal(t, model.PriorityCritical, designPriority(0.4))
	assert.Equal(t, model.PriorityHigh, designPriority(0.6))
	assert.Equal(t, model.PriorityMedium, designPriority(0.8))
	assert.Equal(t, model.PriorityLow, designPriority(0.95))
}

func TestUXAgentScoring(t *testing.T) {
	p := BuildProfile(samplePage())
	insight := NewUXAgent().Analyze("https://acme.example", p)

	// nav=1.0 (3 links), forms=1.0 (validated), access blends alt/aria/order.
	assert.InDelta(t, 1.0, insight.Metadata["navigation_score"].(float64), 1e-9)
	assert.InDelta(t, 1.0, insight.Metadata["form_score"].(float64), 1e-9)
	assert.InDelta(t, 1.0, insight.Metadata["accessibility_score"].(float64), 1e-9)

	// Thin copy drags the content score down.
	assert.Less(t, insight.Metadata["content_score"].(float64), 0.1)
}

func TestUXAgentNoNavigation(t *testing.T) {
	p := Profile{populated: true, WordCount: 500}
	insight := NewUXAgent().Analyze("https://acme.example", p)

	require.NotEmpty(t, insight.Findings)
	assert.Equal(t, "No navigation links detected", insight.Findings[0].Issue)
	assert.Contains(t, insight.Recommendations, "Add a clear primary navigation")
}

func TestBrandAgentFullAlignment(t *testing.T) {
	p := BuildProfile(samplePage())
	identity := Identity{
		PrimaryColors: []string{"#333333"},
		PrimaryFont:   "Inter",
		KeyPhrases:    []string{"Acme", "plumbing"},
	}

	insight := NewBrandAgent().Analyze("https://acme.example", p, identity)

	// 0.3 palette + 0.2 font + 0.2 logo + 0.3 full phrase coverage.
	assert.InDelta(t, 1.0, insight.Score, 1e-9)
	assert.Equal(t, model.PriorityLow, insight.Priority)
	assert.Empty(t, insight.Findings)
}

func TestBrandAgentNothingAligned(t *testing.T) {
	p := Profile{
		populated:   true,
		Colors:      map[string]int{"#111111": 1, "#222222": 1, "#444444": 1, "#555555": 1},
		Fonts:       map[string]int{"arial": 1, "georgia": 1},
		ToneTallies: map[string]int{},
	}
	identity := Identity{
		PrimaryColors: []string{"#ff0000"},
		PrimaryFont:   "Inter",
		KeyPhrases:    []string{"quality"},
	}

	insight := NewBrandAgent().Analyze("https://acme.example", p, identity)

	assert.InDelta(t, 0.0, insight.Score, 1e-9)
	assert.Equal(t, model.PriorityCritical, insight.Priority)
	assert.Contains(t, insight.Recommendations, "Display the logo prominently in the header")
}

func TestBrandPriorityTiers(t *testing.T) {
	assert.Equal(t, model.PriorityCritical, brandPriority(0.3))
	assert.Equal(t, model.PriorityHigh, brandPriority(0.5))
	assert.Equal(t, model.PriorityMedium, brandPriority(0.7))
	assert.Equal(t, model.PriorityLow, brandPriority(0.9))
}

func TestCompetitiveAgentIdenticalCompetitor(t *testing.T) {
	client := BuildProfile(samplePage())
	twin := BuildProfile(samplePage())
	twin.URL = "https://rival.example/"

	insight := NewCompetitiveAgent().Analyze("https://acme.example", client, []Profile{twin})

	// Identical profiles mean zero differentiation.
	assert.InDelta(t, 0.0, insight.Score, 1e-9)
	assert.Equal(t, model.PriorityCritical, insight.Priority)
	assert.Equal(t, "https://rival.example/", insight.Metadata["closest_competitor"])
	assert.Contains(t, insight.Recommendations, "Develop a more distinctive visual identity")
}

func TestCompetitiveAgentNoCompetitors(t *testing.T) {
	client := BuildProfile(samplePage())
	insight := NewCompetitiveAgent().Analyze("https://acme.example", client, nil)

	assert.InDelta(t, 1.0, insight.Score, 1e-9)
	assert.Equal(t, model.PriorityLow, insight.Priority)
	assert.Empty(t, insight.Findings)
}

func TestJaccard(t *testing.T) {
	a := map[string]struct{}{"x": {}, "y": {}}
	b := map[string]struct{}{"y": {}, "z": {}}
	assert.InDelta(t, 1.0/3.0, jaccard(a, b), 1e-9)
	assert.InDelta(t, 0.0, jaccard(nil, nil), 1e-9)
}
