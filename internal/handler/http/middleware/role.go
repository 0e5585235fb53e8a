package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/handler/http/response"
)

// RequirePermission checks if the actor's role grants permission.
// Services authorize again; this only fails fast on whole route groups.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := ActorFromContext(r.Context())
			if !actor.IsAuthenticated() {
				response.HandleError(w, user.ErrUnauthenticated)
				return
			}

			if !actor.Can(permission) {
				response.Fail(w, http.StatusForbidden, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, actor.Role), nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
