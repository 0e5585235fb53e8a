package auth

import "github.com/cmlabs-hris/hr-attendance-go/internal/domain/apperror"

var (
	ErrInvalidCredentials = apperror.Unauthenticated("invalid email or password")
	ErrAccountInactive    = apperror.Forbidden("account is inactive")
	ErrInvalidToken       = apperror.Unauthenticated("invalid or expired token")
)
