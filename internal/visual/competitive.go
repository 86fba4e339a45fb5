package visual

import (
	"go.uber.org/zap"

	"github.com/sells-group/proposal-cli/internal/model"
)

// CompetitiveAgent scores how visually distinct a client page is from its
// competitors.
type CompetitiveAgent struct{}

// NewCompetitiveAgent returns a competitive agent.
func NewCompetitiveAgent() *CompetitiveAgent {
	return &CompetitiveAgent{}
}

// Analyze compares the client profile against each competitor and returns a
// visual insight whose score is 1 minus the highest similarity. An empty
// client profile yields the shared empty insight; no competitors means
// nothing to blend in with, so differentiation is full.
func (a *CompetitiveAgent) Analyze(url string, client Profile, competitors []Profile) model.Insight {
	if client.Empty() {
		zap.L().Warn("competitive: no client profile", zap.String("url", url))
		return model.EmptyInsight(model.CategoryVisual)
	}

	maxSimilarity := 0.0
	closest := ""
	for _, comp := range competitors {
		if comp.Empty() {
			continue
		}
		s := similarity(client, comp)
		if s > maxSimilarity {
			maxSimilarity = s
			closest = comp.URL
		}
	}

	differentiation := 1 - maxSimilarity

	findings := []model.Finding{}
	recommendations := []string{}
	if differentiation < 0.5 {
		findings = append(findings, model.Finding{
			Issue:    "Visual identity closely resembles a competitor",
			Severity: "high",
		})
		recommendations = append(recommendations, "Develop a more distinctive visual identity")
	}

	insight := model.Insight{
		Category:        model.CategoryVisual,
		Score:           differentiation,
		Findings:        findings,
		Recommendations: recommendations,
		Priority:        competitivePriority(differentiation),
		Metadata: map[string]any{
			"url":                url,
			"competitors":        len(competitors),
			"max_similarity":     maxSimilarity,
			"closest_competitor": closest,
		},
	}

	zap.L().Debug("competitive scored",
		zap.String("url", url),
		zap.Float64("differentiation", differentiation),
		zap.String("closest", closest))

	return insight
}

// similarity blends color overlap (0.5), font overlap (0.3), and layout
// pattern overlap (0.2), each as a Jaccard index.
func similarity(a, b Profile) float64 {
	colors := jaccard(keys(a.Colors), keys(b.Colors))
	fonts := jaccard(keys(a.Fonts), keys(b.Fonts))
	layout := jaccard(layoutPatterns(a), layoutPatterns(b))
	return 0.5*colors + 0.3*fonts + 0.2*layout
}

// layoutPatterns reduces a profile to its coarse structural signals.
func layoutPatterns(p Profile) map[string]struct{} {
	patterns := map[string]struct{}{}
	if p.NavLinkCount > 0 {
		patterns["nav"] = struct{}{}
	}
	if p.FormCount > 0 {
		patterns["forms"] = struct{}{}
	}
	if p.ImageCount > 0 {
		patterns["imagery"] = struct{}{}
	}
	if len(p.HeadingLevels) > 0 && p.HeadingLevels[0] == 1 {
		patterns["hero-heading"] = struct{}{}
	}
	if p.ParagraphCount > 3 {
		patterns["long-form"] = struct{}{}
	}
	return patterns
}

func keys[V any](m map[string]V) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

func competitivePriority(differentiation float64) model.Priority {
	switch {
	case differentiation < 0.3:
		return model.PriorityCritical
	case differentiation < 0.5:
		return model.PriorityHigh
	case differentiation < 0.7:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}
