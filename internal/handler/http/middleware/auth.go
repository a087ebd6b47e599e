package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/auth"
	"github.com/nippo-dev/nippo-backend-go/internal/domain/user"
	"github.com/nippo-dev/nippo-backend-go/internal/handler/http/response"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/jwt"
)

type authUserContextKey struct{}

// WithAuthUser stores the authenticated user in the request context.
func WithAuthUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, authUserContextKey{}, u)
}

// AuthUserFromContext returns the user placed in the context by Authenticator.
func AuthUserFromContext(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(authUserContextKey{}).(user.User)
	return u, ok
}

// Authenticator verifies the request token and resolves the current user. The
// token is taken from the Authorization header first, then from the auth
// cookie. The user record is loaded fresh on every request so a deactivated
// account is locked out immediately, regardless of token expiry.
func Authenticator(codec jwt.Service, users user.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			tokenString := tokenFromRequest(r)
			if tokenString == "" {
				response.HandleError(w, auth.ErrTokenRequired)
				return
			}

			claims, err := codec.Verify(tokenString)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			u, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					response.HandleError(w, auth.ErrUserDisabled)
					return
				}
				response.HandleError(w, err)
				return
			}
			if !u.IsActive {
				response.HandleError(w, auth.ErrUserDisabled)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAuthUser(r.Context(), u)))
		}
		return http.HandlerFunc(hfn)
	}
}

func tokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	cookie, err := r.Cookie(jwt.AuthTokenCookieName)
	if err == nil {
		return cookie.Value
	}
	return ""
}
