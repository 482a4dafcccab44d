// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"

	"github.com/shringarlabs/shringar/pkg/middleware"
	"github.com/shringarlabs/shringar/pkg/response"
)

// HasRole returns middleware that allows access only to users with one of
// the given roles. Requires middleware.Auth to have already run.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r.Context())
			if !ok || !allowed[role] {
				response.Forbidden(w, "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Admin is shorthand for HasRole("admin"); the order management and stats
// endpoints sit behind it.
func Admin(next http.Handler) http.Handler {
	return HasRole("admin")(next)
}

// Guest blocks authenticated users (useful for login/register).
func Guest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.UserIDFromCtx(r.Context()); ok {
			response.BadRequest(w, "already authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}
