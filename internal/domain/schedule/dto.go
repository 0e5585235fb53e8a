package schedule

import (
	"fmt"

	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/validator"
)

type DayRequest struct {
	Weekday          int    `json:"weekday" validate:"required,gte=1,lte=7"`
	StartTime        string `json:"start_time" validate:"required"`
	EndTime          string `json:"end_time" validate:"required"`
	TargetMinutes    int    `json:"target_minutes" validate:"gte=0,lte=1440"`
	ToleranceMinutes *int   `json:"tolerance_minutes,omitempty" validate:"omitempty,gte=0,lte=240"`
	Active           *bool  `json:"active,omitempty"`
}

type ReplaceScheduleRequest struct {
	Days []DayRequest `json:"days" validate:"required,min=1,dive"`
}

func (r *ReplaceScheduleRequest) Validate() error {
	errs := validator.Struct(r)

	for i, d := range r.Days {
		if _, ok := validator.IsValidClockTime(d.StartTime); d.StartTime != "" && !ok {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("days[%d].start_time", i),
				Message: "start_time must be in HH:MM format",
			})
		}
		if _, ok := validator.IsValidClockTime(d.EndTime); d.EndTime != "" && !ok {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("days[%d].end_time", i),
				Message: "end_time must be in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DayResponse struct {
	ID               string `json:"id"`
	Weekday          int    `json:"weekday"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	TargetMinutes    int    `json:"target_minutes"`
	ToleranceMinutes int    `json:"tolerance_minutes"`
	Active           bool   `json:"active"`
}

type WeekResponse struct {
	UserID string        `json:"user_id"`
	Days   []DayResponse `json:"days"`
}

func ToWeekResponse(userID string, days []WorkScheduleDay) WeekResponse {
	resp := WeekResponse{UserID: userID, Days: make([]DayResponse, 0, len(days))}
	for _, d := range days {
		resp.Days = append(resp.Days, DayResponse{
			ID:               d.ID,
			Weekday:          d.Weekday,
			StartTime:        d.StartTime,
			EndTime:          d.EndTime,
			TargetMinutes:    d.TargetMinutes,
			ToleranceMinutes: d.ToleranceMinutes,
			Active:           d.Active,
		})
	}
	return resp
}
