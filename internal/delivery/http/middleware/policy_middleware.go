package middleware

import (
	"context"
	"net/http"

	"dental-center-management/internal/domain/entity"
	"dental-center-management/internal/policy"
	"dental-center-management/internal/store"
	"dental-center-management/pkg/response"
)

type contextKey string

const UserKey contextKey = "user"

// PolicyMiddleware gates routes with the access policy. The policy only
// decides; this layer translates its decision into HTTP responses
// carrying the redirect target the client should navigate to.
type PolicyMiddleware struct {
	sessions *store.SessionStore
	policy   policy.Policy
}

func NewPolicyMiddleware(sessions *store.SessionStore, pol policy.Policy) *PolicyMiddleware {
	return &PolicyMiddleware{
		sessions: sessions,
		policy:   pol,
	}
}

// Require builds a middleware admitting only sessions whose role is in
// the given set (any authenticated session when the set is empty). The
// admitted user is injected into the request context.
func (m *PolicyMiddleware) Require(roles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := m.sessions.CurrentUser()

			switch m.policy.Evaluate(user, roles) {
			case policy.DenyToLogin:
				response.DenyToLogin(w)
				return
			case policy.DenyToHome:
				response.DenyToHome(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authenticate admits any authenticated session.
func (m *PolicyMiddleware) Authenticate(next http.Handler) http.Handler {
	return m.Require()(next)
}

// RequireAdmin admits admin sessions only.
func (m *PolicyMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.Require(entity.RoleAdmin)(next)
}

// GetUserFromContext extracts the session user injected by Require.
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserKey).(*entity.User)
	return user, ok && user != nil
}
