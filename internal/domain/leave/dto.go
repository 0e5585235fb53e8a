package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/validator"
)

// ========================================
// LEAVE REQUEST DTOs
// ========================================

type CreateLeaveRequest struct {
	Type      string `json:"type" validate:"required,oneof=VACATION HEALTH PERSONAL OTHER"`
	Reason    string `json:"reason" validate:"required,max=2000"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

func (r *CreateLeaveRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)

	errs := validator.Struct(r)

	if !errs.Has("start_date") {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if !errs.Has("end_date") {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ResolveLeaveRequest struct {
	Status string  `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Paid   *bool   `json:"paid,omitempty"`
	Note   *string `json:"note,omitempty" validate:"omitempty,max=255"`
}

func (r *ResolveLeaveRequest) Validate() error {
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveResponse struct {
	ID             string     `json:"id"`
	Type           string     `json:"type"`
	Reason         string     `json:"reason"`
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date"`
	Status         string     `json:"status"`
	Paid           bool       `json:"paid"`
	ResolutionNote *string    `json:"resolution_note"`
	CreatedAt      time.Time  `json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at"`
	Requester      user.Ref   `json:"requester"`
	Resolver       *user.Ref  `json:"resolver"`
}

func ToResponse(l LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:             l.ID,
		Type:           string(l.Type),
		Reason:         l.Reason,
		StartDate:      l.StartDate,
		EndDate:        l.EndDate,
		Status:         string(l.Status),
		Paid:           l.Paid,
		ResolutionNote: l.ResolutionNote,
		CreatedAt:      l.CreatedAt,
		ResolvedAt:     l.ResolvedAt,
		Requester:      l.Requester,
		Resolver:       l.Resolver,
	}
}

func ToResponses(list []LeaveRequest) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(list))
	for _, l := range list {
		out = append(out, ToResponse(l))
	}
	return out
}
