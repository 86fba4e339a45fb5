package visual

import (
	"go.uber.org/zap"

	"github.com/sells-group/proposal-cli/internal/colormath"
	"github.com/sells-group/proposal-cli/internal/model"
)

// DesignAgent scores color harmony, typography consistency, and text
// contrast from a page's visual profile.
type DesignAgent struct{}

// NewDesignAgent returns a design agent.
func NewDesignAgent() *DesignAgent {
	return &DesignAgent{}
}

// Analyze scores the profile and returns a visual insight weighted 0.5
// harmony, 0.3 typography, 0.2 contrast. Empty profiles yield the shared
// empty insight.
func (a *DesignAgent) Analyze(url string, profile Profile) model.Insight {
	if profile.Empty() {
		zap.L().Warn("design: no visual profile", zap.String("url", url))
		return model.EmptyInsight(model.CategoryVisual)
	}

	palette := profile.TopColors(5)
	harmony := colormath.Harmony(palette)
	typography := typographyConsistency(profile)
	contrast := contrastScore(profile)

	score := 0.5*harmony.Score + 0.3*typography + 0.2*contrast

	findings := []model.Finding{}
	recommendations := []string{}
	if harmony.Score < 0.7 {
		findings = append(findings, model.Finding{
			Issue:    "Color palette lacks harmony",
			Severity: "medium",
		})
		recommendations = append(recommendations, "Refine the color palette around a coherent harmony scheme")
	}
	if typography < 0.7 {
		findings = append(findings, model.Finding{
			Issue:    "Inconsistent typography",
			Severity: "medium",
		})
		recommendations = append(recommendations, "Reduce the number of font families and sizes in use")
	}
	if contrast < 0.8 {
		findings = append(findings, model.Finding{
			Issue:    "Insufficient text contrast",
			Severity: "high",
		})
		recommendations = append(recommendations, "Increase text contrast to meet accessibility guidelines")
	}

	insight := model.Insight{
		Category:        model.CategoryVisual,
		Score:           score,
		Findings:        findings,
		Recommendations: recommendations,
		Priority:        designPriority(score),
		Metadata: map[string]any{
			"url":              url,
			"palette":          palette,
			"harmony_type":     harmony.Type,
			"harmony_score":    harmony.Score,
			"typography_score": typography,
			"contrast_score":   contrast,
		},
	}

	zap.L().Debug("design scored",
		zap.String("url", url),
		zap.Float64("score", score),
		zap.String("harmony", harmony.Type))

	return insight
}

// typographyConsistency averages a family-count score and a size-count
// score. Two or fewer families is ideal, then a step down per extra family;
// six or fewer sizes is ideal.
func typographyConsistency(profile Profile) float64 {
	return (countScore(len(profile.Fonts), 2) + countScore(len(profile.FontSizes), 6)) / 2
}

func countScore(count, ideal int) float64 {
	switch {
	case count == 0:
		return 0.5
	case count <= ideal:
		return 1.0
	case count <= ideal+1:
		return 0.8
	case count <= ideal+2:
		return 0.6
	default:
		return 0.4
	}
}

// contrastScore grades the WCAG ratio between the two dominant colors,
// treating them as foreground and background.
func contrastScore(profile Profile) float64 {
	top := profile.TopColors(2)
	if len(top) < 2 {
		return 0.5
	}
	ratio := colormath.ContrastRatio(top[0], top[1])
	switch {
	case ratio >= 7:
		return 1.0
	case ratio >= 4.5:
		return 0.8
	case ratio >= 3:
		return 0.5
	default:
		return 0.2
	}
}

func designPriority(score float64) model.Priority {
	switch {
	case score < 0.5:
		return model.PriorityCritical
	case score < 0.7:
		return model.PriorityHigh
	case score < 0.9:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}
