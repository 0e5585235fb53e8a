package attendance

import "github.com/cmlabs-hris/hr-attendance-go/internal/domain/apperror"

// Attendance domain errors
var (
	// Marking rules
	ErrDayClosed        = apperror.Invalid("day already closed")
	ErrSameKindRepeated = apperror.Invalid("cannot repeat same kind consecutively")
	ErrExitWithoutEntry = apperror.Invalid("EXIT requires a prior ENTRY")
	ErrLeaveBlocks      = apperror.Invalid("approved leave covers this date")

	ErrInvalidKind       = apperror.Invalid("kind must be ENTRY or EXIT")
	ErrUserDoesNotExist  = apperror.Invalid("user does not exist")
	ErrInvalidOccurredAt = apperror.Invalid("occurred_at must be an RFC3339 timestamp")
	ErrInvalidDate       = apperror.Invalid("from and to must be dates in YYYY-MM-DD format")
	ErrInvalidRange      = apperror.Invalid("to must not be before from")
	ErrRangeTooLong      = apperror.Invalid("summary range must not exceed 366 days")
	ErrStatusTransition  = apperror.Invalid("only VALID attendance records can change status")

	// General errors
	ErrEventNotFound   = apperror.NotFound("attendance record not found")
	ErrUnauthenticated = apperror.Unauthenticated("not authenticated")
	ErrForbidden       = apperror.Forbidden("not allowed to access this attendance record")
)
