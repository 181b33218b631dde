package middleware

import (
	"net/http"

	"clinic-saas-backend/internal/domain/entity"
	"clinic-saas-backend/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles
// Role is read from context (set by AuthMiddleware from JWT claims)
func RequireRole(allowedRoleIDs ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get role ID from context (set by AuthMiddleware)
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			// Check if user's role is in allowed roles
			allowed := false
			for _, allowedRoleID := range allowedRoleIDs {
				if roleID == allowedRoleID {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSuperadmin is a convenience middleware for the superadmin panel
func RequireSuperadmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDSuperadmin)(next)
}

// RequireAdmin is a convenience middleware for clinic-admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin)(next)
}

// RequireStaff is a convenience middleware for any clinic staff member
func RequireStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin, entity.RoleIDProfessional, entity.RoleIDSecretary)(next)
}

// RequireAdminOrProfessional is a convenience middleware for billing and
// scheduling management endpoints
func RequireAdminOrProfessional(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin, entity.RoleIDProfessional)(next)
}
