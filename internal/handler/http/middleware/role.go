package middleware

import (
	"net/http"

	"github.com/nippo-dev/nippo-backend-go/internal/domain/auth"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/authz"
	"github.com/nippo-dev/nippo-backend-go/internal/handler/http/response"
)

// RequireAdmin requires the ADMIN role. It must run after Authenticator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := AuthUserFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrTokenRequired)
			return
		}

		if err := authz.CanManageUsers(u).Err(); err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
