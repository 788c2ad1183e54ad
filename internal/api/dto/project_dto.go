package dto

import (
	"time"

	"github.com/epwerk/field-service/internal/domain"
)

// CreateProjectRequest is the manual project creation payload.
type CreateProjectRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      domain.ProjectStatus `json:"status"`
	CustomerID  *string              `json:"customer_id"`
	CategoryID  *string              `json:"category_id"`
	StartDate   *time.Time           `json:"start_date"`
	EndDate     *time.Time           `json:"end_date"`
	Budget      float64              `json:"budget"`
}

// UpdateProjectRequest is the mutation payload.
type UpdateProjectRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Status      *domain.ProjectStatus `json:"status"`
	CustomerID  *string               `json:"customer_id"`
	CategoryID  *string               `json:"category_id"`
	StartDate   *time.Time            `json:"start_date"`
	EndDate     *time.Time            `json:"end_date"`
	Budget      *float64              `json:"budget"`
}

// ProjectMemberRequest assigns or removes a member.
type ProjectMemberRequest struct {
	UserID string                   `json:"user_id"`
	Role   domain.ProjectMemberRole `json:"role"`
}

// StageRequest creates or updates a stage.
type StageRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Status      domain.StageStatus `json:"status"`
	SortOrder   int                `json:"sort_order"`
}

// StageResponse represents a stage.
type StageResponse struct {
	ID          string             `json:"id"`
	ProjectID   string             `json:"project_id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Status      domain.StageStatus `json:"status"`
	SortOrder   int                `json:"sort_order"`
}

// ProjectMemberResponse represents an assignment.
type ProjectMemberResponse struct {
	UserID string                   `json:"user_id"`
	Role   domain.ProjectMemberRole `json:"role"`
}

// ProjectResponse represents a project with stages and members.
type ProjectResponse struct {
	ID          string                  `json:"id"`
	Number      string                  `json:"number"`
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Status      domain.ProjectStatus    `json:"status"`
	CustomerID  *string                 `json:"customer_id"`
	CategoryID  *string                 `json:"category_id"`
	StartDate   *time.Time              `json:"start_date"`
	EndDate     *time.Time              `json:"end_date"`
	Budget      float64                 `json:"budget"`
	Members     []ProjectMemberResponse `json:"members,omitempty"`
	Stages      []StageResponse         `json:"stages,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// ProjectStatsResponse summarizes the collection.
type ProjectStatsResponse struct {
	Total      int64 `json:"total"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}
