package main

import (
	"github.com/sells-group/proposal-cli/internal/config"
	"github.com/sells-group/proposal-cli/internal/inspector"
	"github.com/sells-group/proposal-cli/internal/market"
	"github.com/sells-group/proposal-cli/internal/pipeline"
	"github.com/sells-group/proposal-cli/pkg/anthropic"
)

// pipelineEnv holds the shared dependencies for proposal runs.
type pipelineEnv struct {
	cfg       *config.Config
	browser   *inspector.Chrome
	inspector *inspector.Inspector
	analyzer  *market.Analyzer
	assembler *pipeline.Assembler
}

// initPipeline builds the browser, analyzers, and assembler from config.
// Callers own Close.
func initPipeline(cfg *config.Config) (*pipelineEnv, error) {
	browser := inspector.NewChrome(cfg.Browser)

	analyzer, err := market.NewAnalyzer()
	if err != nil {
		browser.Close()
		return nil, err
	}

	var llm anthropic.Client
	if cfg.Anthropic.Key != "" {
		llm = anthropic.NewClient(cfg.Anthropic.Key)
	}
	assembler, err := pipeline.NewAssembler(llm, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
	if err != nil {
		browser.Close()
		return nil, err
	}

	return &pipelineEnv{
		cfg:       cfg,
		browser:   browser,
		inspector: inspector.New(browser, cfg.Inspect),
		analyzer:  analyzer,
		assembler: assembler,
	}, nil
}

// newRun returns a pipeline with a fresh monitor for one proposal run.
func (env *pipelineEnv) newRun() *pipeline.Pipeline {
	return pipeline.New(env.cfg, env.inspector, env.analyzer, env.assembler, pipeline.NewMonitor())
}

func (env *pipelineEnv) Close() {
	env.browser.Close()
}
