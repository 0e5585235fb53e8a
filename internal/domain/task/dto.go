package task

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/validator"
)

const maxDescriptionLength = 2000

// Nullable tells a field that was absent from the body apart from an explicit null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// Null returns a Nullable that clears the field.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Value returns a Nullable holding v.
func Value[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// ========================================
// TASK DTOs
// ========================================

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,max=140"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	DueDate     *string `json:"due_date,omitempty"`
	AssigneeID  string  `json:"assignee_id" validate:"required,uuid"`
}

func (r *CreateTaskRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.AssigneeID = strings.ToLower(strings.TrimSpace(r.AssigneeID))
	r.Description = blankToNil(r.Description)

	errs := validator.Struct(r)
	if r.DueDate != nil {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "due_date",
				Message: "due_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateTaskRequest is a partial patch. An explicit null clears description or due_date.
type UpdateTaskRequest struct {
	Title       *string          `json:"title,omitempty" validate:"omitempty,max=140"`
	Description Nullable[string] `json:"description" validate:"-"`
	DueDate     Nullable[string] `json:"due_date" validate:"-"`
	AssigneeID  *string          `json:"assignee_id,omitempty" validate:"omitempty,uuid"`
	Status      *string          `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS DONE"`
}

func (r *UpdateTaskRequest) Validate() error {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		r.Title = &title
	}
	if r.AssigneeID != nil {
		id := strings.ToLower(strings.TrimSpace(*r.AssigneeID))
		r.AssigneeID = &id
	}
	r.Description.Value = blankToNil(r.Description.Value)

	errs := validator.Struct(r)
	if r.Title != nil && *r.Title == "" && !errs.Has("title") {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title must not be empty"})
	}
	if r.Description.Value != nil && len([]rune(*r.Description.Value)) > maxDescriptionLength {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description must be at most 2000 characters"})
	}
	if r.DueDate.Value != nil {
		if _, ok := validator.IsValidDate(*r.DueDate.Value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "due_date",
				Message: "due_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING IN_PROGRESS DONE"`
}

func (r *ChangeStatusRequest) Validate() error {
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}

type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	DueDate     *string   `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Assignee    user.Ref  `json:"assignee"`
	AssignedBy  *user.Ref `json:"assigned_by"`
}

func ToResponse(t Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Assignee:    t.Assignee,
		AssignedBy:  t.AssignedBy,
	}
}

func ToResponses(list []Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToResponse(t))
	}
	return out
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
