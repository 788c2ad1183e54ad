package domain

import "time"

// UserRole enumerates staff roles within the business.
type UserRole string

const (
	RoleAdmin          UserRole = "ADMIN"
	RoleProjectManager UserRole = "PROJECT_MANAGER"
	RoleGroupLeader    UserRole = "GROUP_LEADER"
	RoleWorker         UserRole = "WORKER"
	RoleOffice         UserRole = "OFFICE"
	RoleWarehouse      UserRole = "WAREHOUSE"
	RoleClient         UserRole = "CLIENT"
)

// ValidRole reports whether the value is a known role.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleAdmin, RoleProjectManager, RoleGroupLeader, RoleWorker, RoleOffice, RoleWarehouse, RoleClient:
		return true
	}
	return false
}

// User is a staff account that signs in and operates on records.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         UserRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
