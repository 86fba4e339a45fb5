// Package market produces industry trend and competitor landscape analysis
// for a proposal.
package market

import (
	"context"
	_ "embed"
	"fmt"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/proposal-cli/internal/model"
)

//go:embed trends.yaml
var trendTable []byte

// Trend is one industry trend from the trend table.
type Trend struct {
	Name         string  `json:"name" yaml:"name"`
	Description  string  `json:"description" yaml:"description"`
	AdoptionRate float64 `json:"adoption_rate" yaml:"adoption_rate"`
	Impact       string  `json:"impact" yaml:"impact"`
}

// CompetitorProfile is the landscape entry for one competitor site.
type CompetitorProfile struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	MarketShare float64  `json:"market_share"`
	Strengths   []string `json:"strengths"`
}

// Data is the analyzer's input, drawn from the analysis request.
type Data struct {
	Industry       string
	TargetAudience []string
	Competitors    []string
	KeyServices    []string
}

// Analysis is the analyzer's output.
type Analysis struct {
	Industry        string                 `json:"industry"`
	Trends          []Trend                `json:"trends"`
	Competitors     []CompetitorProfile    `json:"competitors"`
	Recommendations []model.Recommendation `json:"recommendations"`
}

type trendConfig struct {
	Trends             []Trend `yaml:"trends"`
	CompetitorDefaults struct {
		MarketShare float64  `yaml:"market_share"`
		Strengths   []string `yaml:"strengths"`
	} `yaml:"competitor_defaults"`
}

// Analyzer derives trends, competitor profiles, and recommendations from an
// embedded trend table.
type Analyzer struct {
	cfg trendConfig
}

// NewAnalyzer loads the embedded trend table.
func NewAnalyzer() (*Analyzer, error) {
	var cfg trendConfig
	if err := yaml.Unmarshal(trendTable, &cfg); err != nil {
		return nil, eris.Wrap(err, "market: parse trend table")
	}
	return &Analyzer{cfg: cfg}, nil
}

// AnalyzeMarket runs the market analysis. Internal failures never propagate:
// the caller always receives an analysis, degraded to empty sections with a
// single high-priority error note when something went wrong.
func (a *Analyzer) AnalyzeMarket(ctx context.Context, data Data) Analysis {
	if err := ctx.Err(); err != nil {
		return errorAnalysis(data.Industry, err)
	}

	analysis := Analysis{
		Industry:        data.Industry,
		Trends:          append([]Trend(nil), a.cfg.Trends...),
		Competitors:     []CompetitorProfile{},
		Recommendations: []model.Recommendation{},
	}

	for _, raw := range data.Competitors {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		analysis.Competitors = append(analysis.Competitors, CompetitorProfile{
			Name:        hostName(raw),
			URL:         raw,
			MarketShare: a.cfg.CompetitorDefaults.MarketShare,
			Strengths:   append([]string(nil), a.cfg.CompetitorDefaults.Strengths...),
		})
	}

	for _, trend := range analysis.Trends {
		priority := model.PriorityMedium
		if trend.AdoptionRate > 0.8 {
			priority = model.PriorityHigh
		}
		analysis.Recommendations = append(analysis.Recommendations, model.Recommendation{
			Priority:    priority,
			Description: fmt.Sprintf("Capitalize on %s trend: %s", trend.Name, trend.Description),
			Type:        "trend",
		})
	}

	if len(analysis.Competitors) > 0 {
		analysis.Recommendations = append(analysis.Recommendations, model.Recommendation{
			Priority:    model.PriorityHigh,
			Description: "Differentiate from competitors through unique value proposition",
			Type:        "competitive",
		})
	}

	zap.L().Debug("market analyzed",
		zap.String("industry", data.Industry),
		zap.Int("trends", len(analysis.Trends)),
		zap.Int("competitors", len(analysis.Competitors)))

	return analysis
}

// hostName extracts the host segment of a competitor URL for display. A raw
// value that does not parse as a URL is returned as given.
func hostName(raw string) string {
	u, err := url.Parse(raw)
	if err == nil && u.Host != "" {
		return u.Host
	}
	return raw
}

func errorAnalysis(industry string, err error) Analysis {
	zap.L().Warn("market analysis degraded", zap.Error(err))
	return Analysis{
		Industry:    industry,
		Trends:      []Trend{},
		Competitors: []CompetitorProfile{},
		Recommendations: []model.Recommendation{{
			Priority:    model.PriorityHigh,
			Description: "Market analysis incomplete: " + err.Error(),
			Type:        "error",
		}},
	}
}
