package visual

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/proposal-cli/internal/colormath"
	"github.com/sells-group/proposal-cli/internal/model"
)

// Identity describes the brand a page is expected to express. Fields may be
// empty when the client has no formal guidelines; the agent then falls back
// to internal-consistency checks.
type Identity struct {
	PrimaryColors []string
	PrimaryFont   string
	KeyPhrases    []string
}

// BrandAgent scores how consistently a page expresses a brand identity.
type BrandAgent struct{}

// NewBrandAgent returns a brand agent.
func NewBrandAgent() *BrandAgent {
	return &BrandAgent{}
}

// Analyze returns a visual insight with an additive brand strength score:
// 0.3 for palette alignment, 0.2 for the primary font, 0.2 for a detected
// logo, and up to 0.3 for key phrase coverage, capped at 1.0. Empty
// profiles yield the shared empty insight.
func (a *BrandAgent) Analyze(url string, profile Profile, identity Identity) model.Insight {
	if profile.Empty() {
		zap.L().Warn("brand: no visual profile", zap.String("url", url))
		return model.EmptyInsight(model.CategoryVisual)
	}

	findings := []model.Finding{}
	recommendations := []string{}
	score := 0.0

	if paletteAligned(profile, identity.PrimaryColors) {
		score += 0.3
	} else {
		findings = append(findings, model.Finding{
			Issue:    "Page palette does not express the brand colors",
			Severity: "medium",
		})
		recommendations = append(recommendations, "Apply the brand's primary colors consistently")
	}

	if fontAligned(profile, identity.PrimaryFont) {
		score += 0.2
	} else {
		recommendations = append(recommendations, "Standardize on the brand's primary typeface")
	}

	if profile.HasLogo {
		score += 0.2
	} else {
		findings = append(findings, model.Finding{
			Issue:    "No logo element detected",
			Severity: "high",
		})
		recommendations = append(recommendations, "Display the logo prominently in the header")
	}

	phraseCoverage := phraseCoverage(profile, identity.KeyPhrases)
	score += 0.3 * phraseCoverage
	if phraseCoverage < 0.5 {
		recommendations = append(recommendations, "Reinforce key brand messaging in page copy")
	}

	if score > 1.0 {
		score = 1.0
	}

	dominantTone := ""
	best := 0
	for tone, count := range profile.ToneTallies {
		if count > best || (count == best && count > 0 && tone < dominantTone) {
			dominantTone, best = tone, count
		}
	}

	insight := model.Insight{
		Category:        model.CategoryVisual,
		Score:           score,
		Findings:        findings,
		Recommendations: recommendations,
		Priority:        brandPriority(score),
		Metadata: map[string]any{
			"url":             url,
			"has_logo":        profile.HasLogo,
			"dominant_tone":   dominantTone,
			"phrase_coverage": phraseCoverage,
		},
	}

	zap.L().Debug("brand scored",
		zap.String("url", url),
		zap.Float64("score", score),
		zap.String("tone", dominantTone))

	return insight
}

// paletteAligned reports whether any declared brand color appears on the
// page. Without declared colors it falls back to checking for a dominant
// color carrying at least 30% of the census.
func paletteAligned(profile Profile, primaryColors []string) bool {
	if len(primaryColors) > 0 {
		for _, c := range primaryColors {
			hex, ok := colormath.Normalize(c)
			if !ok {
				continue
			}
			if _, found := profile.Colors[hex]; found {
				return true
			}
		}
		return false
	}

	total := 0
	for _, count := range profile.Colors {
		total += count
	}
	if total == 0 {
		return false
	}
	for _, count := range profile.Colors {
		if float64(count)/float64(total) >= 0.3 {
			return true
		}
	}
	return false
}

// fontAligned reports whether the dominant family matches the declared
// primary font, or without one, whether a single family carries the page.
func fontAligned(profile Profile, primaryFont string) bool {
	dominant, share := profile.DominantFont()
	if dominant == "" {
		return false
	}
	if primaryFont != "" {
		return strings.Contains(dominant, strings.ToLower(primaryFont))
	}
	return share >= 0.5
}

// phraseCoverage is the share of key phrases found in page text, 0 when no
// phrases are declared.
func phraseCoverage(profile Profile, phrases []string) float64 {
	if len(phrases) == 0 {
		return 0
	}
	lower := strings.ToLower(profile.Text)
	found := 0
	for _, phrase := range phrases {
		if phrase != "" && strings.Contains(lower, strings.ToLower(phrase)) {
			found++
		}
	}
	return float64(found) / float64(len(phrases))
}

func brandPriority(score float64) model.Priority {
	switch {
	case score < 0.4:
		return model.PriorityCritical
	case score < 0.6:
		return model.PriorityHigh
	case score < 0.8:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}
