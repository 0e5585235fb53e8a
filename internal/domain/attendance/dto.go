package attendance

import (
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkRequest struct {
	Kind   string  `json:"kind" validate:"required,oneof=ENTRY EXIT"`
	Origin *string `json:"origin,omitempty" validate:"omitempty,oneof=web manual app"`
}

func (r *MarkRequest) Validate() error {
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}

type ManualRequest struct {
	UserID string  `json:"user_id" validate:"required,uuid"`
	Kind   string  `json:"kind" validate:"required,oneof=ENTRY EXIT"`
	Origin *string `json:"origin,omitempty" validate:"omitempty,oneof=web manual app"`
	Note   *string `json:"note,omitempty" validate:"omitempty,max=500"`
	// OccurredAt is parsed by the service so a bad value is reported as an invalid request.
	OccurredAt *string `json:"occurred_at,omitempty"`
}

func (r *ManualRequest) Validate() error {
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}

type VoidRequest struct {
	Note *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

func (r *VoidRequest) Validate() error {
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}

// SummaryFilter holds the optional local calendar bounds, both inclusive.
type SummaryFilter struct {
	From string
	To   string
}

func (f *SummaryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.From != "" {
		if _, ok := validator.IsValidDate(f.From); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be in YYYY-MM-DD format",
			})
		}
	}
	if f.To != "" {
		if _, ok := validator.IsValidDate(f.To); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventResponse struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	LocalDate  string    `json:"local_date"`
	LocalTime  string    `json:"local_time"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	Origin     string    `json:"origin"`
	SourceIP   *string   `json:"source_ip"`
	Note       *string   `json:"note"`
	RecordedAt time.Time `json:"recorded_at"`
	Owner      user.Ref  `json:"owner"`
	Reviewer   *user.Ref `json:"reviewer"`
}

func NewEventResponse(c *clock.Clock, e Event) EventResponse {
	occurred := e.OccurredAt
	return EventResponse{
		ID:         e.ID,
		OccurredAt: e.OccurredAt.UTC(),
		LocalDate:  c.LocalDateKey(occurred),
		LocalTime:  c.LocalTimeOfDay(&occurred),
		Kind:       string(e.Kind),
		Status:     string(e.Status),
		Origin:     string(e.Origin),
		SourceIP:   e.SourceIP,
		Note:       e.Note,
		RecordedAt: e.RecordedAt.UTC(),
		Owner:      e.Owner,
		Reviewer:   e.Reviewer,
	}
}

func NewEventResponses(c *clock.Clock, events []Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, NewEventResponse(c, e))
	}
	return out
}
