package model

// PhaseDetail records one phase's progress inside a snapshot.
type PhaseDetail struct {
	Name     string  `json:"name"`
	Progress float64 `json:"progress"` // 0-100
	Status   string  `json:"status"`
}

// ProgressSnapshot is a point-in-time copy of workflow progress, safe to
// serialize and hand out while the run continues.
type ProgressSnapshot struct {
	CurrentPhase    int                 `json:"current_phase"`
	TotalPhases     int                 `json:"total_phases"`
	PhaseName       string              `json:"phase_name"`
	PhaseProgress   float64             `json:"phase_progress"`   // 0-100
	OverallProgress float64             `json:"overall_progress"` // 0-100
	Status          string              `json:"status"`
	Message         string              `json:"message"`
	Errors          []string            `json:"errors"`
	Warnings        []string            `json:"warnings"`
	CompletedTasks  []string            `json:"completed_tasks"`
	RemainingTasks  []string            `json:"remaining_tasks"`
	PhaseDetails    map[int]PhaseDetail `json:"phase_details"`
}
