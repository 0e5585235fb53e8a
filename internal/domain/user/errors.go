package user

import "github.com/cmlabs-hris/hr-attendance-go/internal/domain/apperror"

var (
	ErrUserNotFound      = apperror.NotFound("user not found")
	ErrUserEmailExists   = apperror.Invalid("email already registered")
	ErrInvalidRole       = apperror.Invalid("invalid role")
	ErrUnauthenticated   = apperror.Unauthenticated("not authenticated")
	ErrInsufficientRole  = apperror.Forbidden("insufficient permissions for this action")
	ErrAdminRoleReserved = apperror.Forbidden("only ADMIN can grant the ADMIN role or modify an ADMIN account")
	ErrSelfDeactivation  = apperror.Invalid("cannot deactivate your own account")
)
