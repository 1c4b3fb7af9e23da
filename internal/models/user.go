package models

import "time"

// UserRole represents the available roles for the RBAC system. Roles are a
// closed enumeration; the legacy system compared free-text role strings.
type UserRole string

const (
	// RoleDirector owns projects, registers helper forms and submits
	// requests to the reviewing authority.
	RoleDirector UserRole = "DIRECTOR"
	// RoleReviewer (the "Jefatura" in the legacy system) approves or
	// rejects forms and requests and manages users.
	RoleReviewer UserRole = "REVIEWER"
	// RolePlain has no workflow permissions.
	RolePlain UserRole = "PLAIN"
)

// User represents an application user stored in the users table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	Role         UserRole   `db:"role" json:"role"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role      *UserRole
	Active    *bool
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
