package service

import (
	"testing"

	"github.com/epwerk/field-service/internal/domain"
)

func TestProjectVisible(t *testing.T) {
	project := &domain.Project{
		ID: "p1",
		Members: []domain.ProjectMember{
			{ProjectID: "p1", UserID: "leader-1", Role: domain.MemberRoleLeader},
			{ProjectID: "p1", UserID: "worker-1", Role: domain.MemberRoleWorker},
		},
	}

	cases := []struct {
		name string
		user *domain.User
		want bool
	}{
		{"admin sees everything", &domain.User{ID: "x", Role: domain.RoleAdmin}, true},
		{"project manager sees everything", &domain.User{ID: "x", Role: domain.RoleProjectManager}, true},
		{"office sees everything", &domain.User{ID: "x", Role: domain.RoleOffice}, true},
		{"group leader on the project", &domain.User{ID: "leader-1", Role: domain.RoleGroupLeader}, true},
		{"group leader on another project", &domain.User{ID: "leader-2", Role: domain.RoleGroupLeader}, false},
		{"group leader assigned as worker only", &domain.User{ID: "worker-1", Role: domain.RoleGroupLeader}, false},
		{"worker on the project", &domain.User{ID: "worker-1", Role: domain.RoleWorker}, true},
		{"worker on another project", &domain.User{ID: "worker-2", Role: domain.RoleWorker}, false},
		{"warehouse has no project access", &domain.User{ID: "x", Role: domain.RoleWarehouse}, false},
		{"client has no project access", &domain.User{ID: "x", Role: domain.RoleClient}, false},
		{"nil actor", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ProjectVisible(tc.user, project); got != tc.want {
				t.Fatalf("ProjectVisible = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestVisibleProjects(t *testing.T) {
	projects := []domain.Project{
		{ID: "p1", Members: []domain.ProjectMember{{UserID: "w1", Role: domain.MemberRoleWorker}}},
		{ID: "p2"},
		{ID: "p3", Members: []domain.ProjectMember{{UserID: "w1", Role: domain.MemberRoleLeader}}},
	}

	worker := &domain.User{ID: "w1", Role: domain.RoleWorker}
	visible := VisibleProjects(worker, projects)
	if len(visible) != 1 || visible[0].ID != "p1" {
		t.Fatalf("worker should see only p1, got %v", visible)
	}

	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin}
	if got := VisibleProjects(admin, projects); len(got) != 3 {
		t.Fatalf("admin should see all projects, got %d", len(got))
	}
}

func TestCanDeleteProject(t *testing.T) {
	cases := []struct {
		role domain.UserRole
		want bool
	}{
		{domain.RoleAdmin, true},
		{domain.RoleProjectManager, true},
		{domain.RoleOffice, false},
		{domain.RoleGroupLeader, false},
		{domain.RoleWorker, false},
	}
	for _, tc := range cases {
		if got := CanDeleteProject(&domain.User{Role: tc.role}); got != tc.want {
			t.Fatalf("CanDeleteProject(%s) = %v, want %v", tc.role, got, tc.want)
		}
	}
	if CanDeleteProject(nil) {
		t.Fatal("nil actor must not delete")
	}
}
