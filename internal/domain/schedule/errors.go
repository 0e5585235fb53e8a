package schedule

import "github.com/cmlabs-hris/hr-attendance-go/internal/domain/apperror"

var (
	ErrUserNotFound     = apperror.NotFound("user not found")
	ErrDuplicateWeekday = apperror.Invalid("weekday must not repeat in a schedule")
	ErrEmptySchedule    = apperror.Invalid("schedule must contain at least one day")
	ErrInvalidWeekday   = apperror.Invalid("weekday must be between 1 and 7")
	ErrForbidden        = apperror.Forbidden("not allowed to access this schedule")
	ErrUnauthenticated  = apperror.Unauthenticated("not authenticated")
)
