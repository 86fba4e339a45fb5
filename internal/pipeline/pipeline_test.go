package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/proposal-cli/internal/config"
	"github.com/sells-group/proposal-cli/internal/market"
	"github.com/sells-group/proposal-cli/internal/model"
)

const clientHTML = `<html><head>
<title>Acme Plumbing</title>
<meta name="viewport" content="width=device-width">
<meta name="description" content="Plumbing done right.">
<meta name="keywords" content="plumbing, repairs">
</head><body>
<nav><a href="/a">A</a><a href="/b">B</a><a href="/c">C</a></nav>
<div class="logo"></div>
<h1>Acme Plumbing</h1>
<p>We fix plumbing. Fast and friendly.</p>
<a href="https://partner.example">Partner</a>
</body></html>`

// fakeInspector serves canned pages and records requested URLs.
type fakeInspector struct {
	pages     map[string]*model.CapturedPage
	clientErr error
	requested []string
}

func (f *fakeInspector) Inspect(ctx context.Context, url string) (*model.CapturedPage, error) {
	f.requested = append(f.requested, url)
	if f.clientErr != nil {
		return nil, f.clientErr
	}
	return f.pages[url], nil
}

func (f *fakeInspector) InspectAll(ctx context.Context, urls []string) []*model.CapturedPage {
	var out []*model.CapturedPage
	for _, u := range urls {
		if page, ok := f.pages[u]; ok {
			out = append(out, page)
		}
	}
	return out
}

func capturedPage(url string) *model.CapturedPage {
	return &model.CapturedPage{
		URL:  url,
		HTML: clientHTML,
		Text: "Acme Plumbing. We fix plumbing. Fast and friendly. Trusted professional service.",
		Styles: []model.StyleRecord{
			{"color": "#333333", "background-color": "#ffffff", "font-family": "Inter", "font-size": "16px"},
		},
		Performance: model.PerformanceTimings{
			FirstContentfulPaint:   900,
			LargestContentfulPaint: 1500,
		},
	}
}

func sampleRequest() *model.AnalysisRequest {
	return &model.AnalysisRequest{
		ClientName:     "Acme Corp",
		BusinessName:   "Acme Plumbing",
		Industry:       "plumbing",
		TargetAudience: []string{"homeowners"},
		KeyServices:    []string{"Drain Repair"},
		Website:        "https://acme.example",
		CompetitorURLs: []string{"https://rival.example"},
		ProjectGoals:   []string{"Primary Goal: Modernize the website"},
		Budget:         "$10,000",
	}
}

func newTestPipeline(t *testing.T, insp Inspector) *Pipeline {
	t.Helper()
	analyzer, err := market.NewAnalyzer()
	require.NoError(t, err)
	assembler, err := NewAssembler(nil, "claude-haiku-4-5-20251001", 1024)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Proposal.MockupDir = t.TempDir()
	return New(cfg, insp, analyzer, assembler, NewMonitor())
}

func TestPipelineRun(t *testing.T) {
	insp := &fakeInspector{pages: map[string]*model.CapturedPage{
		"https://acme.example":  capturedPage("https://acme.example"),
		"https://rival.example": capturedPage("https://rival.example"),
	}}
	p := newTestPipeline(t, insp)

	result, err := p.Run(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.True(t, strings.HasPrefix(result.Document, "# Digital Enhancement Proposal"))
	assert.Contains(t, result.Document, "## Executive Summary")
	assert.Contains(t, result.Document, "Prepared for: Acme Corp")
	assert.Contains(t, result.Document, "## Investment Details")

	// One insight per agent.
	assert.Len(t, result.Insights, 7)
	assert.NotEmpty(t, result.Recommendations)

	snap := result.Snapshot
	assert.Equal(t, StatusCompleted, snap.Status)
	assert.InDelta(t, 100, snap.OverallProgress, 1e-9)
	assert.Empty(t, snap.RemainingTasks)
}

func TestPipelineClientFailureIsHard(t *testing.T) {
	insp := &fakeInspector{clientErr: eris.New("connection refused")}
	p := newTestPipeline(t, insp)

	_, err := p.Run(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inspect client site")
	assert.Equal(t, StatusError, p.Monitor().Snapshot().Status)
}

func TestPipelineCompetitorFailureIsSkipped(t *testing.T) {
	// Only the client page is available; the competitor capture fails.
	insp := &fakeInspector{pages: map[string]*model.CapturedPage{
		"https://acme.example": capturedPage("https://acme.example"),
	}}
	p := newTestPipeline(t, insp)

	result, err := p.Run(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Contains(t, result.Snapshot.Warnings, "some competitor sites could not be captured")

	// With no comparable competitor, differentiation is full.
	var competitive model.Insight
	for _, ins := range result.Insights {
		if _, ok := ins.Metadata["max_similarity"]; ok {
			competitive = ins
		}
	}
	assert.InDelta(t, 1.0, competitive.Score, 1e-9)
}

func TestPipelineValidatesRequest(t *testing.T) {
	p := newTestPipeline(t, &fakeInspector{})
	req := sampleRequest()
	req.Website = ""

	_, err := p.Run(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required fields")
	assert.Empty(t, (&fakeInspector{}).requested)
}

func TestLayoutEffectiveness(t *testing.T) {
	assert.Equal(t, "", layoutEffectiveness(model.Insight{Priority: model.PriorityUnknown}))
	assert.Equal(t, "effective", layoutEffectiveness(model.Insight{Priority: model.PriorityLow, Score: 0.9}))
	assert.Equal(t, "moderate", layoutEffectiveness(model.Insight{Priority: model.PriorityMedium, Score: 0.6}))
	assert.Equal(t, "limited", layoutEffectiveness(model.Insight{Priority: model.PriorityCritical, Score: 0.2}))
}
