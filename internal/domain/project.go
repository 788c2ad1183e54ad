package domain

import "time"

// ProjectStatus enumerates project lifecycle states.
type ProjectStatus string

const (
	ProjectStatusPlanned    ProjectStatus = "Planned"
	ProjectStatusInProgress ProjectStatus = "InProgress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
	ProjectStatusPaused     ProjectStatus = "Paused"
	ProjectStatusCancelled  ProjectStatus = "Cancelled"
)

// ProjectMemberRole distinguishes leadership from crew assignment.
type ProjectMemberRole string

const (
	MemberRoleLeader ProjectMemberRole = "LEADER"
	MemberRoleWorker ProjectMemberRole = "WORKER"
)

// ProjectMember assigns a user to a project in a given capacity.
type ProjectMember struct {
	ProjectID string
	UserID    string
	Role      ProjectMemberRole
	CreatedAt time.Time
}

// Project is a tracked unit of customer work. Number is the unique,
// human-readable identifier (EP-<n>) and is never reassigned.
type Project struct {
	ID          string
	Number      string
	Name        string
	Description string
	Status      ProjectStatus
	CustomerID  *string
	CategoryID  *string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      float64
	Members     []ProjectMember
	Stages      []ProjectStage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasMember reports whether the user is assigned in the given capacity.
func (p *Project) HasMember(userID string, role ProjectMemberRole) bool {
	for _, m := range p.Members {
		if m.UserID == userID && m.Role == role {
			return true
		}
	}
	return false
}
