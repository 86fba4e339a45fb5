package visual

import (
	"go.uber.org/zap"

	"github.com/sells-group/proposal-cli/internal/model"
)

// UXAgent scores navigation, accessibility, forms, and content structure
// from a page's visual profile.
type UXAgent struct{}

// NewUXAgent returns a UX agent.
func NewUXAgent() *UXAgent {
	return &UXAgent{}
}

// Analyze scores the profile and returns a visual insight weighted 0.3
// navigation, 0.3 accessibility, 0.2 forms, 0.2 content. Empty profiles
// yield the shared empty insight.
func (a *UXAgent) Analyze(url string, profile Profile) model.Insight {
	if profile.Empty() {
		zap.L().Warn("ux: no visual profile", zap.String("url", url))
		return model.EmptyInsight(model.CategoryVisual)
	}

	findings := []model.Finding{}
	recommendations := []string{}

	nav := navigationScore(profile)
	if nav == 0 {
		findings = append(findings, model.Finding{
			Issue:    "No navigation links detected",
			Severity: "high",
		})
		recommendations = append(recommendations, "Add a clear primary navigation")
	}

	access := accessibilityScore(profile)
	if access < 0.7 {
		findings = append(findings, model.Finding{
			Issue:    "Accessibility gaps in images, labels, or heading order",
			Severity: "high",
		})
		recommendations = append(recommendations, "Add alt text, ARIA labels, and an ordered heading hierarchy")
	}

	forms := formScore(profile)
	if forms < 1 {
		recommendations = append(recommendations, "Add client-side validation to forms")
	}

	content := contentScore(profile)
	if content < 0.7 {
		recommendations = append(recommendations, "Expand page content to better explain the offering")
	}

	score := 0.3*nav + 0.3*access + 0.2*forms + 0.2*content

	insight := model.Insight{
		Category:        model.CategoryVisual,
		Score:           score,
		Findings:        findings,
		Recommendations: recommendations,
		Priority:        designPriority(score),
		Metadata: map[string]any{
			"url":                 url,
			"navigation_score":    nav,
			"accessibility_score": access,
			"form_score":          forms,
			"content_score":       content,
		},
	}

	zap.L().Debug("ux scored", zap.String("url", url), zap.Float64("score", score))

	return insight
}

// navigationScore favors a focused nav of three to nine links.
func navigationScore(profile Profile) float64 {
	switch {
	case profile.NavLinkCount == 0:
		return 0.0
	case profile.NavLinkCount >= 3 && profile.NavLinkCount <= 9:
		return 1.0
	default:
		return 0.7
	}
}

// accessibilityScore averages alt-text coverage, ARIA label presence, and
// heading hierarchy order.
func accessibilityScore(profile Profile) float64 {
	alt := 1.0
	if profile.ImageCount > 0 {
		alt = float64(profile.ImagesWithAlt) / float64(profile.ImageCount)
	}

	aria := 0.5
	if profile.AriaLabelCount > 0 {
		aria = 1.0
	}

	hierarchy := 1.0
	for i := 1; i < len(profile.HeadingLevels); i++ {
		if profile.HeadingLevels[i] > profile.HeadingLevels[i-1]+1 {
			hierarchy = 0.7
			break
		}
	}
	if len(profile.HeadingLevels) == 0 {
		hierarchy = 0.5
	}

	return (alt + aria + hierarchy) / 3
}

// formScore is the share of forms carrying validation. Pages without forms
// have nothing to fix.
func formScore(profile Profile) float64 {
	if profile.FormCount == 0 {
		return 1.0
	}
	return float64(profile.FormsWithValidation) / float64(profile.FormCount)
}

// contentScore ramps up to 1.0 at 300 words.
func contentScore(profile Profile) float64 {
	if profile.WordCount >= 300 {
		return 1.0
	}
	return float64(profile.WordCount) / 300
}
