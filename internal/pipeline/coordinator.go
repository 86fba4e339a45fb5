package pipeline

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Task names used across the workflow.
const (
	TaskInspectClient      = "inspect_client"
	TaskInspectCompetitors = "inspect_competitors"
	TaskSEOAnalysis        = "seo_analysis"
	TaskVisualAnalysis     = "visual_analysis"
	TaskMarketAnalysis     = "market_analysis"
	TaskContentStrategy    = "content_strategy"
	TaskAssembleProposal   = "assemble_proposal"
)

// Phase is a named group of tasks executed together.
type Phase struct {
	Name     string
	Tasks    []string
	Parallel bool
}

// Runner executes one task.
type Runner func(ctx context.Context) error

// taskDependencies is the static prerequisite map for workflow tasks.
var taskDependencies = map[string][]string{
	TaskInspectClient:      {},
	TaskInspectCompetitors: {},
	TaskSEOAnalysis:        {TaskInspectClient},
	TaskVisualAnalysis:     {TaskInspectClient},
	TaskMarketAnalysis:     {},
	TaskContentStrategy:    {TaskMarketAnalysis, TaskSEOAnalysis},
	TaskAssembleProposal:   {TaskSEOAnalysis, TaskVisualAnalysis, TaskMarketAnalysis, TaskContentStrategy},
}

// Coordinator gates task execution on declared dependencies and runs phases
// either in parallel or in declared order.
type Coordinator struct {
	mu        sync.Mutex
	deps      map[string][]string
	completed map[string]struct{}
}

// NewCoordinator returns a coordinator over the static dependency map.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		deps:      taskDependencies,
		completed: map[string]struct{}{},
	}
}

// CanExecute reports whether every prerequisite of a task has completed.
// Unknown tasks have no prerequisites.
func (c *Coordinator) CanExecute(task string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canExecuteLocked(task)
}

func (c *Coordinator) canExecuteLocked(task string) bool {
	for _, dep := range c.deps[task] {
		if _, done := c.completed[dep]; !done {
			return false
		}
	}
	return true
}

// MarkComplete records a task as done.
func (c *Coordinator) MarkComplete(task string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completed[task] = struct{}{}
}

// ExecutePhase runs every task of the phase via its runner. Parallel phases
// fan out on an errgroup and the phase completes only after all runners
// return; sequential phases run in declared order and stop at the first
// failure. A task is marked complete only after its runner returns nil.
func (c *Coordinator) ExecutePhase(ctx context.Context, phase Phase, runners map[string]Runner) error {
	for _, task := range phase.Tasks {
		if !c.CanExecute(task) {
			return eris.Errorf("pipeline: task %s has incomplete dependencies", task)
		}
		if _, ok := runners[task]; !ok {
			return eris.Errorf("pipeline: no runner for task %s", task)
		}
	}

	zap.L().Debug("executing phase",
		zap.String("phase", phase.Name),
		zap.Int("tasks", len(phase.Tasks)),
		zap.Bool("parallel", phase.Parallel))

	if !phase.Parallel {
		for _, task := range phase.Tasks {
			if err := runners[task](ctx); err != nil {
				return eris.Wrapf(err, "pipeline: task %s", task)
			}
			c.MarkComplete(task)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, task := range phase.Tasks {
		g.Go(func() error {
			if err := runners[task](gctx); err != nil {
				return eris.Wrapf(err, "pipeline: task %s", task)
			}
			c.MarkComplete(task)
			return nil
		})
	}
	return g.Wait()
}
