package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type actorKey struct{}

// RevocationChecker reports tokens revoked by logout.
type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

// AuthRequired rejects requests without a valid, unrevoked access token and stores the
// resolved user.Actor in the request context. It must run after jwtauth.Verifier.
func AuthRequired(revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if revocations != nil {
				revoked, err := revocations.IsTokenRevoked(r.Context(), jwtauth.TokenFromHeader(r))
				if err != nil {
					response.HandleError(w, err)
					return
				}
				if revoked {
					response.HandleError(w, auth.ErrInvalidToken)
					return
				}
			}

			userID, _ := claims["user_id"].(string)
			roleStr, _ := claims["role"].(string)
			role, err := user.ParseRole(roleStr)
			if userID == "" || err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := WithActor(r.Context(), user.Actor{UserID: userID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

func WithActor(ctx context.Context, actor user.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the zero Actor when the request is not authenticated.
func ActorFromContext(ctx context.Context) user.Actor {
	actor, _ := ctx.Value(actorKey{}).(user.Actor)
	return actor
}
