package domain

import "time"

// StageStatus enumerates work-stage states.
type StageStatus string

const (
	StageStatusPlanned    StageStatus = "Planned"
	StageStatusInProgress StageStatus = "InProgress"
	StageStatusCompleted  StageStatus = "Completed"
)

// ProjectStage is one phase of project work. SortOrder is a display hint
// only; stage rows keep the order in which they were created.
type ProjectStage struct {
	ID          string
	ProjectID   string
	Name        string
	Description string
	Status      StageStatus
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StageBlueprint is a template-derived description of one stage, not yet
// bound to a project.
type StageBlueprint struct {
	Name      string
	Status    StageStatus
	SortOrder int
}
