// Package pipeline orchestrates a proposal run: inspection, analysis,
// strategy, and document assembly, with progress tracking throughout.
package pipeline

import (
	"sync"

	"go.uber.org/zap"

	"github.com/sells-group/proposal-cli/internal/model"
)

// Workflow status values.
const (
	StatusIdle      = "idle"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusError     = "error"
)

// Monitor tracks workflow progress across phases and tasks. All methods are
// safe for concurrent use; overall progress never decreases within a run.
type Monitor struct {
	mu sync.Mutex

	currentPhase    int
	totalPhases     int
	phaseName       string
	phaseProgress   float64
	overallProgress float64
	status          string
	message         string
	errors          []string
	warnings        []string
	completed       []string
	remaining       []string
	phaseDetails    map[int]model.PhaseDetail
}

// NewMonitor returns an idle monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		status:       StatusIdle,
		phaseDetails: map[int]model.PhaseDetail{},
	}
}

// StartWorkflow resets the monitor for a new run with the given phase count
// and task list.
func (m *Monitor) StartWorkflow(totalPhases int, tasks []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.currentPhase = 1
	m.totalPhases = totalPhases
	m.phaseName = ""
	m.phaseProgress = 0
	m.overallProgress = 0
	m.status = StatusRunning
	m.message = ""
	m.errors = nil
	m.warnings = nil
	m.completed = nil
	m.remaining = append([]string(nil), tasks...)
	m.phaseDetails = map[int]model.PhaseDetail{}
}

// StartPhase marks the current phase as in progress under the given name.
func (m *Monitor) StartPhase(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.phaseName = name
	m.phaseProgress = 0
	m.phaseDetails[m.currentPhase] = model.PhaseDetail{
		Name:   name,
		Status: StatusRunning,
	}
	zap.L().Info("phase started",
		zap.Int("phase", m.currentPhase),
		zap.String("name", name))
}

// CompleteTask moves a task from remaining to completed and recomputes
// overall progress. Unknown tasks are ignored.
func (m *Monitor) CompleteTask(task string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i, t := range m.remaining {
		if t == task {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	m.remaining = append(m.remaining[:idx], m.remaining[idx+1:]...)
	m.completed = append(m.completed, task)

	total := len(m.completed) + len(m.remaining)
	if total > 0 {
		overall := float64(len(m.completed)) / float64(total) * 100
		if overall > m.overallProgress {
			m.overallProgress = overall
		}
	}
}

// UpdatePhaseProgress sets the current phase's progress percentage.
func (m *Monitor) UpdatePhaseProgress(progress float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.phaseProgress = progress
	detail := m.phaseDetails[m.currentPhase]
	detail.Progress = progress
	m.phaseDetails[m.currentPhase] = detail
}

// CompletePhase marks the current phase done and advances, or completes the
// workflow after the final phase.
func (m *Monitor) CompletePhase() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.phaseProgress = 100
	detail := m.phaseDetails[m.currentPhase]
	detail.Progress = 100
	detail.Status = StatusCompleted
	m.phaseDetails[m.currentPhase] = detail

	if m.currentPhase < m.totalPhases {
		m.currentPhase++
		m.phaseProgress = 0
		return
	}
	m.status = StatusCompleted
	if m.overallProgress < 100 {
		m.overallProgress = 100
	}
}

// AddError records an error and puts the workflow in the terminal error
// state.
func (m *Monitor) AddError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errors = append(m.errors, msg)
	m.status = StatusError
	zap.L().Warn("workflow error", zap.String("error", msg))
}

// AddWarning records a non-fatal warning.
func (m *Monitor) AddWarning(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.warnings = append(m.warnings, msg)
}

// UpdateStatus sets the status and user-facing message.
func (m *Monitor) UpdateStatus(status, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.status = status
	m.message = message
}

// Snapshot returns a copy of the current progress state.
func (m *Monitor) Snapshot() model.ProgressSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	details := make(map[int]model.PhaseDetail, len(m.phaseDetails))
	for k, v := range m.phaseDetails {
		details[k] = v
	}
	return model.ProgressSnapshot{
		CurrentPhase:    m.currentPhase,
		TotalPhases:     m.totalPhases,
		PhaseName:       m.phaseName,
		PhaseProgress:   m.phaseProgress,
		OverallProgress: m.overallProgress,
		Status:          m.status,
		Message:         m.message,
		Errors:          append([]string(nil), m.errors...),
		Warnings:        append([]string(nil), m.warnings...),
		CompletedTasks:  append([]string(nil), m.completed...),
		RemainingTasks:  append([]string(nil), m.remaining...),
		PhaseDetails:    details,
	}
}
