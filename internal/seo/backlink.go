package seo

import (
	"go.uber.org/zap"

	"github.com/sells-group/proposal-cli/internal/model"
)

// BacklinkProfile summarizes a site's inbound link footprint. In the absence
// of a link index, DeriveBacklinkProfile approximates it from on-page signals.
type BacklinkProfile struct {
	TotalBacklinks   int     `json:"total_backlinks"`
	ReferringDomains int     `json:"referring_domains"`
	AuthorityScore   float64 `json:"authority_score"` // 0-1, share of high-authority sources
	SpamScore        float64 `json:"spam_score"`      // 0-100, higher is worse
	CompetitorGap    int     `json:"competitor_gap"`  // backlinks behind the strongest competitor
}

// Empty reports whether the profile carries no link data.
func (p BacklinkProfile) Empty() bool {
	return p.TotalBacklinks == 0 && p.ReferringDomains == 0 && p.AuthorityScore == 0
}

// DeriveBacklinkProfile approximates a profile from a page's outbound link
// census. Outbound diversity is used as a weak proxy for link-graph standing.
func DeriveBacklinkProfile(data PageData) BacklinkProfile {
	if data.Empty() {
		return BacklinkProfile{}
	}
	hosts := map[string]struct{}{}
	for _, h := range data.Structure.ExternalHosts {
		hosts[h] = struct{}{}
	}
	total := len(data.Structure.ExternalHosts)
	authority := 0.5
	if total == 0 {
		authority = 0.0
	}
	return BacklinkProfile{
		TotalBacklinks:   total,
		ReferringDomains: len(hosts),
		AuthorityScore:   authority,
	}
}

// BacklinkAgent scores a backlink profile.
type BacklinkAgent struct{}

// NewBacklinkAgent returns a backlink agent.
func NewBacklinkAgent() *BacklinkAgent {
	return &BacklinkAgent{}
}

// Analyze scores the profile and returns a backlinks insight. The score
// blends authority (0.4), spam penalty (0.3), and referring-domain diversity
// (0.3). Empty profiles yield the shared empty insight.
func (a *BacklinkAgent) Analyze(url string, profile BacklinkProfile) model.Insight {
	if profile.Empty() {
		zap.L().Warn("backlinks: no profile data", zap.String("url", url))
		return model.EmptyInsight(model.CategoryBacklinks)
	}

	spamPenalty := 1 - profile.SpamScore/100
	if spamPenalty < 0 {
		spamPenalty = 0
	}

	total := profile.TotalBacklinks
	if total < 1 {
		total = 1
	}
	diversity := float64(profile.ReferringDomains) / float64(total)
	if diversity > 1 {
		diversity = 1
	}

	score := 0.4*profile.AuthorityScore + 0.3*spamPenalty + 0.3*diversity

	findings := []model.Finding{}
	recommendations := []string{}

	if profile.SpamScore > 20 {
		findings = append(findings, model.Finding{
			Issue:    "High spam score in backlink profile",
			Severity: "high",
		})
		recommendations = append(recommendations, "Audit and disavow spammy backlinks")
	}
	if profile.AuthorityScore < 0.3 {
		recommendations = append(recommendations, "Focus on acquiring high-authority backlinks")
	}
	if profile.CompetitorGap > 1000 {
		recommendations = append(recommendations, "Analyze and target competitor backlink sources")
	}

	insight := model.Insight{
		Category:        model.CategoryBacklinks,
		Score:           score,
		Findings:        findings,
		Recommendations: recommendations,
		Priority:        backlinkPriority(score),
		Metadata: map[string]any{
			"url":               url,
			"total_backlinks":   profile.TotalBacklinks,
			"referring_domains": profile.ReferringDomains,
			"spam_score":        profile.SpamScore,
		},
	}

	zap.L().Debug("backlinks scored",
		zap.String("url", url),
		zap.Float64("score", score),
		zap.String("priority", string(insight.Priority)))

	return insight
}

func backlinkPriority(score float64) model.Priority {
	switch {
	case score < 0.6:
		return model.PriorityHigh
	case score < 0.8:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}
