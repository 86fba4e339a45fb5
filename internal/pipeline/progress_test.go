package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorStartWorkflow(t *testing.T) {
	m := NewMonitor()
	m.StartWorkflow(3, []string{"a", "b", "c"})

	snap := m.Snapshot()
	assert.Equal(t, 1, snap.CurrentPhase)
	assert.Equal(t, 3, snap.TotalPhases)
	assert.Equal(t, StatusRunning, snap.Status)
	assert.Equal(t, []string{"a", "b", "c"}, snap.RemainingTasks)
	assert.Empty(t, snap.CompletedTasks)
	assert.Zero(t, snap.OverallProgress)
}

func TestMonitorCompleteTask(t *testing.T) {
	m := NewMonitor()
	m.StartWorkflow(3, []string{"a", "b", "c"})
	m.CompleteTask("a")

	snap := m.Snapshot()
	assert.InDelta(t, 100.0/3.0, snap.OverallProgress, 1e-9)
	assert.Equal(t, []string{"a"}, snap.CompletedTasks)
	assert.Equal(t, []string{"b", "c"}, snap.RemainingTasks)

	// Unknown tasks are ignored.
	m.CompleteTask("zz")
	assert.Equal(t, []string{"b", "c"}, m.Snapshot().RemainingTasks)
}

func TestMonitorOverallNeverRegresses(t *testing.T) {
	m := NewMonitor()
	m.StartWorkflow(2, []string{"a", "b"})

	last := 0.0
	for _, task := range []string{"a", "b"} {
		m.CompleteTask(task)
		snap := m.Snapshot()
		require.GreaterOrEqual(t, snap.OverallProgress, last)
		last = snap.OverallProgress
	}
	assert.InDelta(t, 100, last, 1e-9)
}

func TestMonitorPhaseLifecycle(t *testing.T) {
	m := NewMonitor()
	m.StartWorkflow(2, []string{"a", "b"})

	m.StartPhase("inspection")
	m.UpdatePhaseProgress(50)
	snap := m.Snapshot()
	assert.Equal(t, "inspection", snap.PhaseName)
	assert.InDelta(t, 50, snap.PhaseProgress, 1e-9)

	m.CompletePhase()
	snap = m.Snapshot()
	assert.Equal(t, 2, snap.CurrentPhase)
	assert.Zero(t, snap.PhaseProgress)
	assert.InDelta(t, 100, snap.PhaseDetails[1].Progress, 1e-9)
	assert.Equal(t, StatusCompleted, snap.PhaseDetails[1].Status)

	m.StartPhase("analysis")
	m.CompletePhase()
	snap = m.Snapshot()
	assert.Equal(t, StatusCompleted, snap.Status)
	assert.InDelta(t, 100, snap.OverallProgress, 1e-9)
}

func TestMonitorErrorsAndWarnings(t *testing.T) {
	m := NewMonitor()
	m.StartWorkflow(1, []string{"a"})

	m.AddWarning("competitor skipped")
	m.AddError("client site unreachable")

	snap := m.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.Equal(t, []string{"client site unreachable"}, snap.Errors)
	assert.Equal(t, []string{"competitor skipped"}, snap.Warnings)
}

func TestMonitorResetBetweenRuns(t *testing.T) {
	m := NewMonitor()
	m.StartWorkflow(1, []string{"a"})
	m.AddError("boom")

	m.StartWorkflow(2, []string{"x", "y"})
	snap := m.Snapshot()
	assert.Equal(t, StatusRunning, snap.Status)
	assert.Empty(t, snap.Errors)
	assert.Equal(t, []string{"x", "y"}, snap.RemainingTasks)
}
