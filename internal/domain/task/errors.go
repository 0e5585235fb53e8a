package task

import "github.com/cmlabs-hris/hr-attendance-go/internal/domain/apperror"

var (
	ErrTaskNotFound     = apperror.NotFound("task not found")
	ErrAssigneeNotFound = apperror.NotFound("assignee not found")
	ErrInvalidStatus    = apperror.Invalid("status must be PENDING, IN_PROGRESS or DONE")
	ErrInvalidDueDate   = apperror.Invalid("due_date must be a date in YYYY-MM-DD format")
	ErrForbidden        = apperror.Forbidden("not allowed to manage tasks")
	ErrNotAssignee      = apperror.Forbidden("only the assignee can change the status of this task")
	ErrUnauthenticated  = apperror.Unauthenticated("not authenticated")
)
