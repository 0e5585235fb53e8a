package user

import (
	"fmt"
	"time"
)

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleAdmin Role = "ADMIN"       // Full access
	RoleHR    Role = "RRHH"        // Human resources, manages other users' records
	RoleStaff Role = "FUNCIONARIO" // Regular staff member
)

var allRoles = []Role{RoleAdmin, RoleHR, RoleStaff}

// ParseRole rejects anything outside the closed role set.
func ParseRole(s string) (Role, error) {
	for _, r := range allRoles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// IsElevated reports whether the role may manage other users' records.
func (r Role) IsElevated() bool {
	return r == RoleAdmin || r == RoleHR
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash *string
	Status       Status
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) Ref() Ref {
	return Ref{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// Ref is the identity joined into other resources' responses.
type Ref struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Actor is the authenticated caller as resolved from the bearer token.
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) IsAuthenticated() bool {
	return a.UserID != ""
}

// Can is the single authorization predicate used by services.
func (a Actor) Can(p Permission) bool {
	return a.IsAuthenticated() && HasPermission(a.Role, p)
}

// IsSelf reports whether the actor is acting on its own resource.
func (a Actor) IsSelf(userID string) bool {
	return a.IsAuthenticated() && a.UserID == userID
}
