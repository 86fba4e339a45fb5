package seo

import (
	"go.uber.org/zap"

	"github.com/sells-group/proposal-cli/internal/model"
)

// TechnicalAgent scores page speed, mobile friendliness, and technical
// hygiene for a single page.
type TechnicalAgent struct{}

// NewTechnicalAgent returns a technical SEO agent.
func NewTechnicalAgent() *TechnicalAgent {
	return &TechnicalAgent{}
}

// Analyze scores the page and returns a technical_seo insight. Empty data
// yields the shared empty insight. Each sub-analysis degrades to 0.0 on its
// own rather than failing the whole agent.
func (a *TechnicalAgent) Analyze(url string, data PageData) model.Insight {
	if data.Empty() {
		zap.L().Warn("technical seo: no page data", zap.String("url", url))
		return model.EmptyInsight(model.CategoryTechnicalSEO)
	}

	speed, speedFindings := a.speedScore(data)
	mobile, mobileFindings := a.mobileScore(data)
	technical, techFindings := a.technicalScore(data)

	findings := append(speedFindings, mobileFindings...)
	findings = append(findings, techFindings...)

	insight := model.Insight{
		Category: model.CategoryTechnicalSEO,
		Score:    0.4*speed + 0.4*mobile + 0.2*technical,
		Findings: findings,
		Priority: priorityFromAverage((speed + mobile + technical) / 3),
		Metadata: map[string]any{
			"url":             url,
			"speed_score":     speed,
			"mobile_score":    mobile,
			"technical_score": technical,
		},
	}

	// Only urgent findings become recommendations.
	insight.Recommendations = []string{}
	for _, f := range findings {
		if f.Severity == "critical" || f.Severity == "high" {
			insight.Recommendations = append(insight.Recommendations, recommendationFor(f.Issue))
		}
	}

	zap.L().Debug("technical seo scored",
		zap.String("url", url),
		zap.Float64("score", insight.Score),
		zap.String("priority", string(insight.Priority)))

	return insight
}

// speedScore averages FCP and LCP checks. Each metric contributes 1.0 when
// within its threshold and 0.5 otherwise.
func (a *TechnicalAgent) speedScore(data PageData) (float64, []model.Finding) {
	var findings []model.Finding

	fcp := 0.5
	if data.Performance.FirstContentfulPaint > 0 && data.Performance.FirstContentfulPaint < 1800 {
		fcp = 1.0
	} else {
		findings = append(findings, model.Finding{
			Issue:    "Slow First Contentful Paint",
			Severity: "high",
		})
	}

	lcp := 0.5
	if data.Performance.LargestContentfulPaint > 0 && data.Performance.LargestContentfulPaint < 2500 {
		lcp = 1.0
	}

	return (fcp + lcp) / 2, findings
}

// mobileScore starts at 1.0 and applies multiplicative penalties per signal.
func (a *TechnicalAgent) mobileScore(data PageData) (float64, []model.Finding) {
	var findings []model.Finding
	score := 1.0

	if !data.Mobile.HasViewportMeta {
		score *= 0.5
		findings = append(findings, model.Finding{
			Issue:    "Missing viewport meta tag",
			Severity: "critical",
		})
	}
	if data.Mobile.TextTooSmall {
		score *= 0.8
		findings = append(findings, model.Finding{
			Issue:    "Text too small for mobile reading",
			Severity: "medium",
		})
	}
	if data.Mobile.TapTargetsTooClose {
		score *= 0.8
		findings = append(findings, model.Finding{
			Issue:    "Tap targets too close together",
			Severity: "medium",
		})
	}

	return score, findings
}

func (a *TechnicalAgent) technicalScore(data PageData) (float64, []model.Finding) {
	var findings []model.Finding
	score := 1.0

	if !data.Meta.Title.Present {
		score *= 0.8
		findings = append(findings, model.Finding{
			Issue:    "Missing title tag",
			Severity: "high",
		})
	}
	if !data.Meta.Description.Present {
		score *= 0.9
		findings = append(findings, model.Finding{
			Issue:    "Missing meta description",
			Severity: "medium",
		})
	}

	return score, findings
}

// priorityFromAverage maps the mean sub-score to a priority tier.
func priorityFromAverage(avg float64) model.Priority {
	switch {
	case avg < 0.5:
		return model.PriorityCritical
	case avg < 0.7:
		return model.PriorityHigh
	case avg < 0.9:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// recommendationFor phrases a remediation for an urgent finding.
func recommendationFor(issue string) string {
	switch issue {
	case "Slow First Contentful Paint":
		return "Optimize critical rendering path to improve First Contentful Paint"
	case "Missing viewport meta tag":
		return "Add a responsive viewport meta tag"
	case "Missing title tag":
		return "Add a descriptive title tag"
	default:
		return "Fix: " + issue
	}
}
