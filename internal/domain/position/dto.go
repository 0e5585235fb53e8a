package position

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/validator"
)

type CreatePositionRequest struct {
	Code   *string `json:"code,omitempty"`
	Name   string  `json:"name"`
	Active *bool   `json:"active,omitempty"`
}

func (r *CreatePositionRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if r.Code != nil {
		code := strings.TrimSpace(*r.Code)
		if code == "" {
			r.Code = nil
		} else {
			r.Code = &code
		}
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 120 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 120 characters",
		})
	}

	if r.Code != nil && len(*r.Code) > 30 {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must not exceed 30 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateUnitRequest struct {
	Name   string `json:"name"`
	Active *bool  `json:"active,omitempty"`
}

func (r *CreateUnitRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 120 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 120 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RegisterMovementRequest struct {
	Type       string  `json:"type" validate:"required,oneof=INITIAL PROMOTION REASSIGNMENT TERMINATION"`
	PositionID *string `json:"position_id,omitempty" validate:"omitempty,uuid"`
	UnitID     *string `json:"unit_id,omitempty" validate:"omitempty,uuid"`
	StartDate  string  `json:"start_date" validate:"required"`
	Note       *string `json:"note,omitempty" validate:"omitempty,max=255"`
}

func (r *RegisterMovementRequest) Validate() error {
	errs := validator.Struct(r)

	if !errs.Has("start_date") {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PositionResponse struct {
	ID     string  `json:"id"`
	Code   *string `json:"code"`
	Name   string  `json:"name"`
	Active bool    `json:"active"`
}

type UnitResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type MovementResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	PositionID   *string   `json:"position_id"`
	PositionName *string   `json:"position_name"`
	UnitID       *string   `json:"unit_id"`
	UnitName     *string   `json:"unit_name"`
	StartDate    string    `json:"start_date"`
	EndDate      *string   `json:"end_date"`
	Note         *string   `json:"note"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// HistoryResponse is a user's movement history with the active entry pulled out.
type HistoryResponse struct {
	UserID    string             `json:"user_id"`
	Active    *MovementResponse  `json:"active"`
	Movements []MovementResponse `json:"movements"`
}

func ToPositionResponse(p Position) PositionResponse {
	return PositionResponse{ID: p.ID, Code: p.Code, Name: p.Name, Active: p.Active}
}

func ToUnitResponse(u Unit) UnitResponse {
	return UnitResponse{ID: u.ID, Name: u.Name, Active: u.Active}
}

func ToMovementResponse(m Movement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		Type:         string(m.Type),
		PositionID:   m.PositionID,
		PositionName: m.PositionName,
		UnitID:       m.UnitID,
		UnitName:     m.UnitName,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Note:         m.Note,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}

func ToHistoryResponse(userID string, movements []Movement) HistoryResponse {
	resp := HistoryResponse{UserID: userID, Movements: make([]MovementResponse, 0, len(movements))}
	for _, m := range movements {
		mr := ToMovementResponse(m)
		resp.Movements = append(resp.Movements, mr)
		if m.IsActive() && resp.Active == nil {
			active := mr
			resp.Active = &active
		}
	}
	return resp
}
