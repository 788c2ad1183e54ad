package service

import "github.com/epwerk/field-service/internal/domain"

// visibilityRule grants project visibility to a set of roles. Rules are
// evaluated in order and the first one covering the actor's role decides;
// roles with no rule see nothing.
type visibilityRule struct {
	roles   []domain.UserRole
	matches func(actorID string, project *domain.Project) bool
}

var projectVisibilityRules = []visibilityRule{
	{
		roles:   []domain.UserRole{domain.RoleAdmin, domain.RoleProjectManager, domain.RoleOffice},
		matches: func(string, *domain.Project) bool { return true },
	},
	{
		roles:   []domain.UserRole{domain.RoleGroupLeader},
		matches: membershipMatcher(domain.MemberRoleLeader),
	},
	{
		roles:   []domain.UserRole{domain.RoleWorker},
		matches: membershipMatcher(domain.MemberRoleWorker),
	},
}

var projectDeleteRoles = map[domain.UserRole]struct{}{
	domain.RoleAdmin:          {},
	domain.RoleProjectManager: {},
}

func membershipMatcher(role domain.ProjectMemberRole) func(string, *domain.Project) bool {
	return func(actorID string, project *domain.Project) bool {
		return project.HasMember(actorID, role)
	}
}

// ProjectVisible reports whether the actor may read the project. Pure
// predicate; no writes, no side effects.
func ProjectVisible(actor *domain.User, project *domain.Project) bool {
	if actor == nil || project == nil {
		return false
	}
	for _, rule := range projectVisibilityRules {
		for _, role := range rule.roles {
			if actor.Role == role {
				return rule.matches(actor.ID, project)
			}
		}
	}
	return false
}

// VisibleProjects filters the collection down to what the actor may see.
func VisibleProjects(actor *domain.User, projects []domain.Project) []domain.Project {
	visible := make([]domain.Project, 0, len(projects))
	for i := range projects {
		if ProjectVisible(actor, &projects[i]) {
			visible = append(visible, projects[i])
		}
	}
	return visible
}

// CanDeleteProject is the narrower mutation check, separate from
// visibility.
func CanDeleteProject(actor *domain.User) bool {
	if actor == nil {
		return false
	}
	_, ok := projectDeleteRoles[actor.Role]
	return ok
}
