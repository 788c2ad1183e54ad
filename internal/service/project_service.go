package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/epwerk/field-service/internal/domain"
	"github.com/epwerk/field-service/internal/events"
	"github.com/epwerk/field-service/internal/repository"
	apperrors "github.com/epwerk/field-service/pkg/util"
)

// ProjectService coordinates project reads and mutations. Listings are
// filtered through the visibility rules; deletion has its own narrower
// check.
type ProjectService struct {
	projects   repository.ProjectRepository
	stages     repository.ProjectStageRepository
	sequences  repository.SequenceRepository
	dispatcher events.Dispatcher
}

// ProjectDependencies bundles repositories for the project service.
type ProjectDependencies struct {
	ProjectRepo  repository.ProjectRepository
	StageRepo    repository.ProjectStageRepository
	SequenceRepo repository.SequenceRepository
	Dispatcher   events.Dispatcher
}

// NewProjectService constructs the service.
func NewProjectService(deps ProjectDependencies) *ProjectService {
	return &ProjectService{
		projects:   deps.ProjectRepo,
		stages:     deps.StageRepo,
		sequences:  deps.SequenceRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ProjectCreateInput describes manual project creation by office staff.
type ProjectCreateInput struct {
	Name        string
	Description string
	Status      domain.ProjectStatus
	CustomerID  *string
	CategoryID  *string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      float64
}

// ProjectUpdateInput describes mutations. Nil fields are untouched.
type ProjectUpdateInput struct {
	Name        *string
	Description *string
	Status      *domain.ProjectStatus
	CustomerID  *string
	CategoryID  *string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
}

// ListProjects returns the projects the actor may see.
func (s *ProjectService) ListProjects(ctx context.Context, actor *domain.User, filter repository.ProjectFilter) ([]domain.Project, error) {
	projects, err := s.projects.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	return VisibleProjects(actor, projects), nil
}

// GetProject fetches a project the actor may see, stages included.
func (s *ProjectService) GetProject(ctx context.Context, actor *domain.User, id string) (*domain.Project, error) {
	project, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ProjectVisible(actor, project) {
		return nil, apperrors.NewForbidden("no access to this project")
	}
	stages, err := s.stages.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	project.Stages = stages
	return project, nil
}

// CreateProject creates a project outside the conversion path. The number
// still comes from the allocator so manual and converted projects share one
// namespace.
func (s *ProjectService) CreateProject(ctx context.Context, input ProjectCreateInput) (*domain.Project, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	number, err := s.sequences.NextProjectNumber(ctx)
	if err != nil {
		return nil, err
	}
	project := &domain.Project{
		Number:      number,
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		CustomerID:  input.CustomerID,
		CategoryID:  input.CategoryID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Budget:      input.Budget,
	}
	if project.Status == "" {
		project.Status = domain.ProjectStatusPlanned
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperrors.MapStorageError("project", err)
	}
	s.publish(ctx, events.Event{
		Type: events.EventProjectCreated,
		Payload: events.ProjectCreatedPayload{
			ProjectID:     project.ID,
			ProjectNumber: project.Number,
			Status:        project.Status,
		},
	})
	return project, nil
}

// UpdateProject applies mutations to a project the actor may see.
func (s *ProjectService) UpdateProject(ctx context.Context, actor *domain.User, id string, input ProjectUpdateInput) (*domain.Project, error) {
	project, err := s.GetProject(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.CustomerID != nil {
		project.CustomerID = input.CustomerID
	}
	if input.CategoryID != nil {
		project.CategoryID = input.CategoryID
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}
	if input.Budget != nil {
		project.Budget = *input.Budget
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes a project. Only admins and project managers may
// delete, regardless of visibility.
func (s *ProjectService) DeleteProject(ctx context.Context, actor *domain.User, id string) error {
	if !CanDeleteProject(actor) {
		return apperrors.NewForbidden("only admins and project managers may delete projects")
	}
	project, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.Event{
		Type: events.EventProjectDeleted,
		Payload: events.ProjectDeletedPayload{
			ProjectID:     project.ID,
			ProjectNumber: project.Number,
		},
	})
	return nil
}

// AddMember assigns a user to the project in the given capacity.
func (s *ProjectService) AddMember(ctx context.Context, actor *domain.User, projectID, userID string, role domain.ProjectMemberRole) error {
	if _, err := s.GetProject(ctx, actor, projectID); err != nil {
		return err
	}
	return s.projects.AddMember(ctx, &domain.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	})
}

// RemoveMember unassigns a user.
func (s *ProjectService) RemoveMember(ctx context.Context, actor *domain.User, projectID, userID string, role domain.ProjectMemberRole) error {
	if _, err := s.GetProject(ctx, actor, projectID); err != nil {
		return err
	}
	if err := s.projects.RemoveMember(ctx, projectID, userID, role); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("project member", nil)
		}
		return err
	}
	return nil
}

// Stats reports collection-wide counts for the dashboard.
func (s *ProjectService) Stats(ctx context.Context) (repository.ProjectStats, error) {
	return s.projects.Stats(ctx)
}

// StageCreateInput describes a manually added stage.
type StageCreateInput struct {
	Name        string
	Description string
	Status      domain.StageStatus
	SortOrder   int
}

// CreateStage appends a stage to an existing project.
func (s *ProjectService) CreateStage(ctx context.Context, actor *domain.User, projectID string, input StageCreateInput) (*domain.ProjectStage, error) {
	if _, err := s.GetProject(ctx, actor, projectID); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	stage := &domain.ProjectStage{
		ProjectID:   projectID,
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		SortOrder:   input.SortOrder,
	}
	if stage.Status == "" {
		stage.Status = domain.StageStatusPlanned
	}
	if err := s.stages.Create(ctx, stage); err != nil {
		return nil, err
	}
	return stage, nil
}

// UpdateStage mutates a stage on a project the actor may see.
func (s *ProjectService) UpdateStage(ctx context.Context, actor *domain.User, stageID string, input StageCreateInput) (*domain.ProjectStage, error) {
	stage, err := s.stages.GetByID(ctx, stageID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("project stage", map[string]any{"id": stageID})
		}
		return nil, err
	}
	if _, err := s.GetProject(ctx, actor, stage.ProjectID); err != nil {
		return nil, err
	}
	if input.Name != "" {
		stage.Name = input.Name
	}
	if input.Description != "" {
		stage.Description = input.Description
	}
	if input.Status != "" {
		stage.Status = input.Status
	}
	stage.SortOrder = input.SortOrder
	if err := s.stages.Update(ctx, stage); err != nil {
		return nil, err
	}
	return stage, nil
}

// DeleteStage removes a stage from a project the actor may see.
func (s *ProjectService) DeleteStage(ctx context.Context, actor *domain.User, stageID string) error {
	stage, err := s.stages.GetByID(ctx, stageID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("project stage", map[string]any{"id": stageID})
		}
		return err
	}
	if _, err := s.GetProject(ctx, actor, stage.ProjectID); err != nil {
		return err
	}
	return s.stages.Delete(ctx, stageID)
}

func (s *ProjectService) fetch(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("project", map[string]any{"id": id})
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
