package user

import (
	"strings"

	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: u.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// CreateUserRequest represents request to create a new user
type CreateUserRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=120"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required,oneof=ADMIN RRHH FUNCIONARIO"`
}

// UpdateUserRequest changes only the fields that are present.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=120"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=ADMIN RRHH FUNCIONARIO"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (r *UpdateUserRequest) Validate() error {
	trim := func(s *string) {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	trim(r.FirstName)
	trim(r.LastName)
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
	}

	errs := validator.Struct(r)
	if r.FirstName != nil && *r.FirstName == "" && !errs.Has("first_name") {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name must not be empty"})
	}
	if r.LastName != nil && *r.LastName == "" && !errs.Has("last_name") {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name must not be empty"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateUserRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)

	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}
