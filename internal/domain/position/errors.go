package position

import "github.com/cmlabs-hris/hr-attendance-go/internal/domain/apperror"

var (
	ErrPositionNotFound   = apperror.NotFound("position not found")
	ErrPositionCodeExists = apperror.Invalid("position code already exists")
	ErrUnitNotFound       = apperror.NotFound("unit not found")
	ErrUnitNameExists     = apperror.Invalid("unit already exists")
	ErrUserNotFound       = apperror.NotFound("user not found")

	ErrPositionRequired   = apperror.Invalid("position_id is required unless the movement is a TERMINATION")
	ErrUnitRequired       = apperror.Invalid("unit_id is required unless the movement is a TERMINATION")
	ErrAlreadyActive      = apperror.Invalid("user already has an active position; use PROMOTION, REASSIGNMENT or TERMINATION")
	ErrNoActivePosition   = apperror.Invalid("user has no active position; register an INITIAL movement first")
	ErrStartBeforeCurrent = apperror.Invalid("start_date cannot be before the start of the active position")

	ErrForbidden       = apperror.Forbidden("not allowed to manage positions")
	ErrUnauthenticated = apperror.Unauthenticated("not authenticated")
)
