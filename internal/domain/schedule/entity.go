package schedule

import "time"

// WorkScheduleDay is the expected working window of one user on one weekday (1=Monday..7=Sunday).
type WorkScheduleDay struct {
	ID               string
	UserID           string
	Weekday          int
	StartTime        string // HH:MM
	EndTime          string // HH:MM
	TargetMinutes    int
	ToleranceMinutes int
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Week indexes a user's active schedule days by weekday.
type Week map[int]WorkScheduleDay

func NewWeek(days []WorkScheduleDay) Week {
	w := make(Week, len(days))
	for _, d := range days {
		if d.Active {
			w[d.Weekday] = d
		}
	}
	return w
}

// TargetMinutes is 0 when the weekday has no active row.
func (w Week) TargetMinutes(weekday int) int {
	if d, ok := w[weekday]; ok {
		return d.TargetMinutes
	}
	return 0
}
