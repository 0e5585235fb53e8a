package leave

import "github.com/cmlabs-hris/hr-attendance-go/internal/domain/apperror"

var (
	ErrLeaveRequestNotFound         = apperror.NotFound("leave request not found")
	ErrLeaveRequestAlreadyProcessed = apperror.Invalid("only PENDING leave requests can be resolved")
	ErrInvalidResolution            = apperror.Invalid("status must be APPROVED or REJECTED")
	ErrSelfResolution               = apperror.Invalid("requester cannot resolve their own leave request")
	ErrRequesterDoesNotExist        = apperror.Invalid("requester does not exist")
	ErrInvalidDates                 = apperror.Invalid("start_date and end_date must be dates in YYYY-MM-DD format")
	ErrEndBeforeStart               = apperror.Invalid("end_date cannot be before start_date")
	ErrForbidden                    = apperror.Forbidden("not allowed to resolve leave requests")
	ErrUnauthenticated              = apperror.Unauthenticated("not authenticated")
)
