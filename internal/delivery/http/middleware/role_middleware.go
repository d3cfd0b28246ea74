package middleware

import (
	"net/http"

	"see-a-doctor/internal/domain/entity"
	"see-a-doctor/pkg/response"
)

// RequireRole lets the request through only when the principal set by
// AuthMiddleware acts under one of roles.
func RequireRole(roles ...entity.RoleName) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			if decision := entity.RequireRole(principal, roles...); !decision.Allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}
