package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/proposal-cli/internal/config"
	"github.com/sells-group/proposal-cli/internal/content"
	"github.com/sells-group/proposal-cli/internal/market"
	"github.com/sells-group/proposal-cli/internal/model"
	"github.com/sells-group/proposal-cli/internal/seo"
	"github.com/sells-group/proposal-cli/internal/visual"
)

// Inspector is the page capture dependency.
type Inspector interface {
	Inspect(ctx context.Context, url string) (*model.CapturedPage, error)
	InspectAll(ctx context.Context, urls []string) []*model.CapturedPage
}

// Result is a completed proposal run.
type Result struct {
	RunID           string
	Document        string
	Insights        []model.Insight
	Recommendations []model.Recommendation
	Snapshot        model.ProgressSnapshot
}

// Pipeline runs one proposal request end to end.
type Pipeline struct {
	cfg         *config.Config
	inspector   Inspector
	technical   *seo.TechnicalAgent
	contentSEO  *seo.ContentAgent
	backlinks   *seo.BacklinkAgent
	design      *visual.DesignAgent
	ux          *visual.UXAgent
	brand       *visual.BrandAgent
	competitive *visual.CompetitiveAgent
	market      *market.Analyzer
	strategy    *content.Generator
	assembler   *Assembler
	monitor     *Monitor
}

// New wires the pipeline's agents around the given inspector and assembler.
func New(cfg *config.Config, insp Inspector, analyzer *market.Analyzer, assembler *Assembler, monitor *Monitor) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		inspector:   insp,
		technical:   seo.NewTechnicalAgent(),
		contentSEO:  seo.NewContentAgent(),
		backlinks:   seo.NewBacklinkAgent(),
		design:      visual.NewDesignAgent(),
		ux:          visual.NewUXAgent(),
		brand:       visual.NewBrandAgent(),
		competitive: visual.NewCompetitiveAgent(),
		market:      analyzer,
		strategy:    content.NewGenerator(),
		assembler:   assembler,
		monitor:     monitor,
	}
}

// Monitor exposes the run's progress monitor.
func (p *Pipeline) Monitor() *Monitor {
	return p.monitor
}

// workflowPhases is the run's phase sequence. Inspection and analysis fan
// out; strategy depends on analysis order.
var workflowPhases = []Phase{
	{Name: "inspection", Tasks: []string{TaskInspectClient, TaskInspectCompetitors}, Parallel: true},
	{Name: "analysis", Tasks: []string{TaskSEOAnalysis, TaskVisualAnalysis, TaskMarketAnalysis}, Parallel: true},
	{Name: "strategy", Tasks: []string{TaskContentStrategy}},
	{Name: "assembly", Tasks: []string{TaskAssembleProposal}},
}

// Run executes the four workflow phases for one request. The client page
// failing to capture is a hard error; competitor failures only shrink the
// comparison set. Analysis failures degrade to empty insights.
func (p *Pipeline) Run(ctx context.Context, req *model.AnalysisRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID), zap.String("website", req.Website))
	log.Info("proposal run started",
		zap.String("client", req.ClientName),
		zap.Int("competitors", len(req.CompetitorURLs)))

	allTasks := []string{}
	for _, phase := range workflowPhases {
		allTasks = append(allTasks, phase.Tasks...)
	}
	p.monitor.StartWorkflow(len(workflowPhases), allTasks)
	coord := NewCoordinator()

	var (
		clientPage      *model.CapturedPage
		competitorPages []*model.CapturedPage

		pageData      seo.PageData
		technical     model.Insight
		contentSEO    model.Insight
		backlinks     model.Insight
		designInsight model.Insight
		uxInsight     model.Insight
		brandInsight  model.Insight
		compInsight   model.Insight
		marketOut     market.Analysis
		strategyOut   content.Strategy
	)

	runners := map[string]Runner{
		TaskInspectClient: func(ctx context.Context) error {
			page, err := p.inspector.Inspect(ctx, req.Website)
			if err != nil {
				return eris.Wrap(err, "pipeline: inspect client site")
			}
			clientPage = page
			p.monitor.CompleteTask(TaskInspectClient)
			return nil
		},
		TaskInspectCompetitors: func(ctx context.Context) error {
			competitorPages = p.inspector.InspectAll(ctx, req.CompetitorURLs)
			if len(competitorPages) < len(req.CompetitorURLs) {
				p.monitor.AddWarning("some competitor sites could not be captured")
			}
			p.monitor.CompleteTask(TaskInspectCompetitors)
			return nil
		},
		TaskSEOAnalysis: func(ctx context.Context) error {
			pageData = seo.BuildPageData(clientPage)
			technical = p.technical.Analyze(req.Website, pageData)
			contentSEO = p.contentSEO.Analyze(req.Website, pageData)
			backlinks = p.backlinks.Analyze(req.Website, seo.DeriveBacklinkProfile(pageData))
			p.monitor.CompleteTask(TaskSEOAnalysis)
			return nil
		},
		TaskVisualAnalysis: func(ctx context.Context) error {
			profile := visual.BuildProfile(clientPage)
			designInsight = p.design.Analyze(req.Website, profile)
			uxInsight = p.ux.Analyze(req.Website, profile)
			brandInsight = p.brand.Analyze(req.Website, profile, visual.Identity{
				KeyPhrases: []string{req.BusinessName},
			})

			compProfiles := make([]visual.Profile, 0, len(competitorPages))
			for _, page := range competitorPages {
				compProfiles = append(compProfiles, visual.BuildProfile(page))
			}
			compInsight = p.competitive.Analyze(req.Website, profile, compProfiles)
			p.monitor.CompleteTask(TaskVisualAnalysis)
			return nil
		},
		TaskMarketAnalysis: func(ctx context.Context) error {
			marketOut = p.market.AnalyzeMarket(ctx, market.Data{
				Industry:       req.Industry,
				TargetAudience: req.TargetAudience,
				Competitors:    req.CompetitorURLs,
				KeyServices:    req.KeyServices,
			})
			p.monitor.CompleteTask(TaskMarketAnalysis)
			return nil
		},
		TaskContentStrategy: func(ctx context.Context) error {
			strategyOut = p.strategy.GenerateStrategy(ctx, content.Input{
				Market:         marketOut,
				SEO:            content.SEOInput{KeywordOpportunities: pageData.Keywords.Secondary},
				TargetAudience: req.TargetAudience,
				KeyServices:    req.KeyServices,
			})
			p.monitor.CompleteTask(TaskContentStrategy)
			return nil
		},
	}
	runners[TaskAssembleProposal] = func(ctx context.Context) error {
		p.monitor.CompleteTask(TaskAssembleProposal)
		return nil
	}

	for _, phase := range workflowPhases[:3] {
		p.monitor.StartPhase(phase.Name)
		if err := coord.ExecutePhase(ctx, phase, runners); err != nil {
			p.monitor.AddError(err.Error())
			return nil, err
		}
		p.monitor.CompletePhase()
	}

	// Assembly phase.
	p.monitor.StartPhase(workflowPhases[3].Name)

	requirements := ExtractMockupRequirements(designInsight, marketOut, technical)
	mockups, err := GenerateMockups(p.cfg.Proposal.MockupDir, runID, req.BusinessName, requirements)
	if err != nil {
		log.Warn("mockup generation failed", zap.Error(err))
		p.monitor.AddWarning("mockup generation failed: " + err.Error())
		mockups = MockupSet{}
	}

	recommendations := AggregateRecommendations(
		InsightRecommendations(designInsight, uxInsight, brandInsight, compInsight),
		marketOut.Recommendations,
		InsightRecommendations(technical, contentSEO, backlinks),
		strategyOut.Recommendations,
	)

	document := p.assembler.Assemble(ctx, &Assembly{
		ClientName:           req.ClientName,
		ProjectGoals:         req.ProjectGoals,
		Design:               designInsight,
		LayoutEffectiveness:  layoutEffectiveness(uxInsight),
		Market:               marketOut,
		TechnicalSEO:         technical,
		ContentSEO:           contentSEO,
		KeywordOpportunities: pageData.Keywords.Secondary,
		Strategy:             strategyOut,
		Mockups:              mockups,
		Recommendations:      recommendations,
		Budget:               req.Budget,
		Timeline:             req.Timeline,
		TechnicalRequirements: req.TechnicalRequirements,
		PainPoints:           req.PainPoints,
	})

	if err := coord.ExecutePhase(ctx, workflowPhases[3], runners); err != nil {
		p.monitor.AddError(err.Error())
		return nil, err
	}
	p.monitor.CompletePhase()
	p.monitor.UpdateStatus(StatusCompleted, "proposal generated")

	log.Info("proposal run finished",
		zap.Int("recommendations", len(recommendations)),
		zap.Int("document_bytes", len(document)))

	return &Result{
		RunID:    runID,
		Document: document,
		Insights: []model.Insight{
			technical, contentSEO, backlinks,
			designInsight, uxInsight, brandInsight, compInsight,
		},
		Recommendations: recommendations,
		Snapshot:        p.monitor.Snapshot(),
	}, nil
}

// layoutEffectiveness folds the UX score into the label the proposal prints.
func layoutEffectiveness(ux model.Insight) string {
	if ux.Priority == model.PriorityUnknown {
		return ""
	}
	switch {
	case ux.Score >= 0.8:
		return "effective"
	case ux.Score >= 0.5:
		return "moderate"
	default:
		return "limited"
	}
}
