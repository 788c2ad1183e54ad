package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epwerk/field-service/internal/domain"
	"github.com/epwerk/field-service/internal/events"
	"github.com/epwerk/field-service/internal/repository"
	apperrors "github.com/epwerk/field-service/pkg/util"
)

func newProjectFixture() (*memState, *ProjectService) {
	state := newMemState()
	svc := NewProjectService(ProjectDependencies{
		ProjectRepo:  &memProjects{state},
		StageRepo:    &memStages{state},
		SequenceRepo: &memSequences{state},
		Dispatcher:   events.NewInMemoryDispatcher(),
	})
	return state, svc
}

func TestCreateProjectAllocatesNumber(t *testing.T) {
	_, svc := newProjectFixture()

	first, err := svc.CreateProject(context.Background(), ProjectCreateInput{Name: "Depot rewire"})
	require.NoError(t, err)
	second, err := svc.CreateProject(context.Background(), ProjectCreateInput{Name: "Hall extension"})
	require.NoError(t, err)

	assert.Equal(t, "EP-1000", first.Number)
	assert.Equal(t, "EP-1001", second.Number)
	assert.Equal(t, domain.ProjectStatusPlanned, first.Status)
}

func TestCreateProjectRequiresName(t *testing.T) {
	_, svc := newProjectFixture()
	_, err := svc.CreateProject(context.Background(), ProjectCreateInput{})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestGetProjectEnforcesVisibility(t *testing.T) {
	_, svc := newProjectFixture()
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin}

	project, err := svc.CreateProject(context.Background(), ProjectCreateInput{Name: "Fenced"})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(context.Background(), admin, project.ID, "w1", domain.MemberRoleWorker))

	worker := &domain.User{ID: "w1", Role: domain.RoleWorker}
	got, err := svc.GetProject(context.Background(), worker, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)

	outsider := &domain.User{ID: "w2", Role: domain.RoleWorker}
	_, err = svc.GetProject(context.Background(), outsider, project.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestListProjectsFiltersByVisibility(t *testing.T) {
	_, svc := newProjectFixture()
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin}

	mine, err := svc.CreateProject(context.Background(), ProjectCreateInput{Name: "Mine"})
	require.NoError(t, err)
	_, err = svc.CreateProject(context.Background(), ProjectCreateInput{Name: "Theirs"})
	require.NoError(t, err)
	require.NoError(t, svc.AddMember(context.Background(), admin, mine.ID, "w1", domain.MemberRoleWorker))

	worker := &domain.User{ID: "w1", Role: domain.RoleWorker}
	visible, err := svc.ListProjects(context.Background(), worker, repository.ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, mine.ID, visible[0].ID)
}

func TestDeleteProjectRoleGate(t *testing.T) {
	state, svc := newProjectFixture()

	project, err := svc.CreateProject(context.Background(), ProjectCreateInput{Name: "Doomed"})
	require.NoError(t, err)

	office := &domain.User{ID: "o1", Role: domain.RoleOffice}
	err = svc.DeleteProject(context.Background(), office, project.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
	assert.Len(t, state.projects, 1)

	manager := &domain.User{ID: "pm1", Role: domain.RoleProjectManager}
	require.NoError(t, svc.DeleteProject(context.Background(), manager, project.ID))
	assert.Empty(t, state.projects)
}

func TestStageLifecycle(t *testing.T) {
	_, svc := newProjectFixture()
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin}

	project, err := svc.CreateProject(context.Background(), ProjectCreateInput{Name: "Staged"})
	require.NoError(t, err)

	stage, err := svc.CreateStage(context.Background(), admin, project.ID, StageCreateInput{Name: "Kickoff", SortOrder: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.StageStatusPlanned, stage.Status)

	updated, err := svc.UpdateStage(context.Background(), admin, stage.ID, StageCreateInput{Status: domain.StageStatusCompleted, SortOrder: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.StageStatusCompleted, updated.Status)
	assert.Equal(t, "Kickoff", updated.Name)

	require.NoError(t, svc.DeleteStage(context.Background(), admin, stage.ID))
	_, err = svc.UpdateStage(context.Background(), admin, stage.ID, StageCreateInput{})
	assert.True(t, apperrors.IsNotFound(err))
}
