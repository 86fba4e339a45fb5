package pipeline

import (
	"context"
	_ "embed"
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/proposal-cli/internal/content"
	"github.com/sells-group/proposal-cli/internal/market"
	"github.com/sells-group/proposal-cli/internal/model"
	"github.com/sells-group/proposal-cli/pkg/anthropic"
)

//go:embed plan.yaml
var planTable []byte

// staticExecutiveSummary is the document's default summary text, used
// whenever no language model is configured or the polish call fails.
const staticExecutiveSummary = "Based on our comprehensive analysis of your digital presence, market position, " +
	"and competitive landscape, we have identified significant opportunities for growth " +
	"and improvement. This proposal outlines our findings and recommendations across " +
	"multiple dimensions including visual design, user experience, SEO, market positioning, " +
	"and content strategy."

// Assembly carries everything the assembler renders into the proposal.
type Assembly struct {
	ClientName   string
	ProjectGoals []string

	Design              model.Insight
	LayoutEffectiveness string

	Market market.Analysis

	TechnicalSEO         model.Insight
	ContentSEO           model.Insight
	KeywordOpportunities []string

	Strategy content.Strategy

	Mockups         MockupSet
	Recommendations []model.Recommendation

	Budget                string
	Timeline              string
	TechnicalRequirements string
	PainPoints            string
}

type planPhase struct {
	Name  string   `yaml:"name"`
	Weeks string   `yaml:"weeks"`
	Items []string `yaml:"items"`
}

type planStep struct {
	Title  string `yaml:"title"`
	Detail string `yaml:"detail"`
}

type planConfig struct {
	Phases    []planPhase `yaml:"phases"`
	Outcomes  []string    `yaml:"outcomes"`
	NextSteps []planStep  `yaml:"next_steps"`
}

type sectionFunc func(ctx context.Context, d *doc, a *Assembly)

// sectionOrder is the document's section sequence. Appendix sections render
// only when their source field is set.
var sectionOrder = []string{
	"title",
	"executive_summary",
	"project_goals",
	"market_analysis",
	"seo_analysis",
	"visual_analysis",
	"content_strategy",
	"proposed_solutions",
	"implementation_plan",
	"investment",
	"next_steps",
	"appendix_budget",
	"appendix_timeline",
	"appendix_technical",
	"appendix_pain_points",
}

// doc accumulates proposal lines.
type doc struct {
	lines []string
}

func (d *doc) add(format string, args ...any) {
	d.lines = append(d.lines, fmt.Sprintf(format, args...))
}

func (d *doc) String() string {
	return strings.Join(d.lines, "\n")
}

// Assembler renders the proposal document from an explicit section registry
// resolved at construction. An optional language model polishes the
// executive summary; every failure falls back to the static text.
type Assembler struct {
	llm       anthropic.Client
	model     string
	maxTokens int64
	plan      planConfig
	order     []string
	handlers  map[string]sectionFunc
	title     cases.Caser
}

// NewAssembler builds the section registry and loads the embedded
// implementation plan table. llm may be nil.
func NewAssembler(llm anthropic.Client, modelID string, maxTokens int64) (*Assembler, error) {
	var plan planConfig
	if err := yaml.Unmarshal(planTable, &plan); err != nil {
		return nil, eris.Wrap(err, "pipeline: parse plan table")
	}

	a := &Assembler{
		llm:       llm,
		model:     modelID,
		maxTokens: maxTokens,
		plan:      plan,
		order:     sectionOrder,
		title:     cases.Title(language.English),
	}
	a.handlers = map[string]sectionFunc{
		"title":                a.renderTitle,
		"executive_summary":    a.renderExecutiveSummary,
		"project_goals":        a.renderProjectGoals,
		"market_analysis":      a.renderMarketAnalysis,
		"seo_analysis":         a.renderSEOAnalysis,
		"visual_analysis":      a.renderVisualAnalysis,
		"content_strategy":     a.renderContentStrategy,
		"proposed_solutions":   a.renderProposedSolutions,
		"implementation_plan":  a.renderImplementationPlan,
		"investment":           a.renderInvestment,
		"next_steps":           a.renderNextSteps,
		"appendix_budget":      a.renderBudget,
		"appendix_timeline":    a.renderTimeline,
		"appendix_technical":   a.renderTechnicalRequirements,
		"appendix_pain_points": a.renderPainPoints,
	}
	return a, nil
}

// Assemble renders the full proposal document.
func (a *Assembler) Assemble(ctx context.Context, assembly *Assembly) string {
	d := &doc{}
	for _, id := range a.order {
		handler, ok := a.handlers[id]
		if !ok {
			zap.L().Warn("unknown proposal section, skipping", zap.String("section", id))
			continue
		}
		handler(ctx, d, assembly)
	}
	return d.String()
}

func (a *Assembler) renderTitle(_ context.Context, d *doc, assembly *Assembly) {
	d.add("# Digital Enhancement Proposal")
	d.add("\nPrepared for: %s", assembly.ClientName)
}

func (a *Assembler) renderExecutiveSummary(ctx context.Context, d *doc, assembly *Assembly) {
	d.add("\n## Executive Summary")
	d.add("\n%s", a.executiveSummary(ctx, assembly))
}

// executiveSummary returns the polished narrative when a model is available
// and responding, the static text otherwise.
func (a *Assembler) executiveSummary(ctx context.Context, assembly *Assembly) string {
	if a.llm == nil {
		return staticExecutiveSummary
	}

	prompt := fmt.Sprintf(
		"Rewrite this proposal executive summary for %s in a confident, specific voice. "+
			"Keep it to one paragraph of plain prose with no headings or lists.\n\n%s",
		assembly.ClientName, staticExecutiveSummary)

	resp, err := a.llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		zap.L().Warn("executive summary polish failed, using static text", zap.Error(err))
		return staticExecutiveSummary
	}
	resp.Usage.LogCost(a.model, "executive_summary")

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return staticExecutiveSummary
	}
	return text
}

func (a *Assembler) renderProjectGoals(_ context.Context, d *doc, assembly *Assembly) {
	d.add("\n## Project Goals")
	for i, goal := range assembly.ProjectGoals {
		d.add("\n%d. %s", i+1, goal)
	}
}

func (a *Assembler) renderMarketAnalysis(_ context.Context, d *doc, assembly *Assembly) {
	d.add("\n## Market Analysis")
	d.add("\n### Industry Trends")
	for _, trend := range assembly.Market.Trends {
		d.add("\n- **%s**: %s", trend.Name, trend.Description)
		d.add("  - Adoption Rate: %.1f%%", trend.AdoptionRate*100)
		d.add("  - Impact: %s", trend.Impact)
	}

	d.add("\n### Competitive Landscape")
	d.add("\nAnalyzed %d competitors:", len(assembly.Market.Competitors))
	for _, comp := range assembly.Market.Competitors {
		d.add("\n- %s", comp.Name)
		d.add("  - Market Share: %.1f%%", comp.MarketShare*100)
		d.add("  - Key Strengths: %s", strings.Join(comp.Strengths, ", "))
	}
}

func (a *Assembler) renderSEOAnalysis(_ context.Context, d *doc, assembly *Assembly) {
	d.add("\n## SEO Analysis")
	d.add("\n### Technical SEO")
	d.add("\n- Mobile Friendliness: %d/100", hundredScale(assembly.TechnicalSEO.Metadata, "mobile_score"))
	d.add("- Page Speed: %d/100", hundredScale(assembly.TechnicalSEO.Metadata, "speed_score"))
	d.add("- Technical Issues Found: %d", len(assembly.TechnicalSEO.Findings))

	d.add("\n### Content SEO")
	d.add("\n- Content Quality Score: %d/100", hundredScale(assembly.ContentSEO.Metadata, "quality_score"))
	d.add("- Keyword Opportunities: %d", len(assembly.KeywordOpportunities))
}

func (a *Assembler) renderVisualAnalysis(_ context.Context, d *doc, assembly *Assembly) {
	d.add("\n## Visual Analysis")
	d.add("\n### Design Elements")
	d.add("\n- Color Harmony: %.1f%%", metadataFloat(assembly.Design.Metadata, "harmony_score")*100)
	d.add("- Typography Consistency: %.1f%%", metadataFloat(assembly.Design.Metadata, "typography_score")*100)
	effectiveness := assembly.LayoutEffectiveness
	if effectiveness == "" {
		effectiveness = "Not analyzed"
	}
	d.add("- Layout Effectiveness: %s", effectiveness)
}

func (a *Assembler) renderContentStrategy(_ context.Context, d *doc, assembly *Assembly) {
	d.add("\n## Content Strategy")
	d.add("\n### Content Pillars")
	for _, pillar := range assembly.Strategy.Pillars {
		d.add("\n- **%s**", pillar.Topic)
		d.add("  - Target Keywords: %s", strings.Join(pillar.Keywords, ", "))
		d.add("  - Content Types: %s", strings.Join(pillar.ContentTypes, ", "))
	}
}

func (a *Assembler) renderProposedSolutions(_ context.Context, d *doc, assembly *Assembly) {
	d.add("\n## Proposed Solutions")

	d.add("\n### Design Mockups")
	d.add("\nWe have created initial design mockups incorporating our recommendations:")
	d.add("\n- Desktop Version: %s", orNotAvailable(assembly.Mockups.Desktop))
	d.add("- Mobile Version: %s", orNotAvailable(assembly.Mockups.Mobile))

	d.add("\n### Prioritized Recommendations")
	currentCategory := ""
	for _, rec := range assembly.Recommendations {
		if rec.Category != currentCategory {
			currentCategory = rec.Category
			d.add("\n#### %s Improvements", a.title.String(currentCategory))
		}
		d.add("\n- **%s**: %s", strings.ToUpper(string(rec.Priority)), rec.Description)
	}
}

func (a *Assembler) renderImplementationPlan(_ context.Context, d *doc, assembly *Assembly) {
	d.add("\n## Implementation Plan")
	for i, phase := range a.plan.Phases {
		d.add("\n### Phase %d: %s (%s)", i+1, phase.Name, phase.Weeks)
		for j, item := range phase.Items {
			d.add("%d. %s", j+1, item)
		}
	}
}

func (a *Assembler) renderInvestment(_ context.Context, d *doc, assembly *Assembly) {
	d.add("\n## Investment and Expected Returns")
	d.add("\n### Projected Outcomes")
	for _, outcome := range a.plan.Outcomes {
		d.add("- %s", outcome)
	}
}

func (a *Assembler) renderNextSteps(_ context.Context, d *doc, assembly *Assembly) {
	d.add("\n## Next Steps")
	for i, step := range a.plan.NextSteps {
		if i == 0 {
			d.add("\n%d. **%s**: %s", i+1, step.Title, step.Detail)
			continue
		}
		d.add("%d. **%s**: %s", i+1, step.Title, step.Detail)
	}
}

func (a *Assembler) renderBudget(_ context.Context, d *doc, assembly *Assembly) {
	if assembly.Budget == "" {
		return
	}
	d.add("\n## Investment Details")
	d.add("\nProject Budget Range: %s", assembly.Budget)
}

func (a *Assembler) renderTimeline(_ context.Context, d *doc, assembly *Assembly) {
	if assembly.Timeline == "" {
		return
	}
	d.add("\n## Project Timeline")
	d.add("\nEstimated Duration: %s", assembly.Timeline)
}

func (a *Assembler) renderTechnicalRequirements(_ context.Context, d *doc, assembly *Assembly) {
	if assembly.TechnicalRequirements == "" {
		return
	}
	d.add("\n## Technical Specifications")
	d.add("\nSpecific technical requirements:")
	for _, req := range strings.Split(assembly.TechnicalRequirements, "\n") {
		if req = strings.TrimSpace(req); req != "" {
			d.add("- %s", req)
		}
	}
}

func (a *Assembler) renderPainPoints(_ context.Context, d *doc, assembly *Assembly) {
	if assembly.PainPoints == "" {
		return
	}
	d.add("\n## Current Challenges")
	d.add("\nIdentified pain points to address:")
	for _, point := range strings.Split(assembly.PainPoints, "\n") {
		if point = strings.TrimSpace(point); point != "" {
			d.add("- %s", point)
		}
	}
}

func metadataFloat(meta map[string]any, key string) float64 {
	if v, ok := meta[key].(float64); ok {
		return v
	}
	return 0
}

func hundredScale(meta map[string]any, key string) int {
	return int(math.Round(metadataFloat(meta, key) * 100))
}

func orNotAvailable(path string) string {
	if path == "" {
		return "Not available"
	}
	return path
}
