package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nippo-dev/nippo-backend-go/internal/domain/auth"
	"github.com/nippo-dev/nippo-backend-go/internal/handler/http/middleware"
	"github.com/nippo-dev/nippo-backend-go/internal/handler/http/response"
	"github.com/nippo-dev/nippo-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "VALIDATION_ERROR", "Invalid request format")
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	loginResponse, expiresAt, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.AuthTokenCookie(loginResponse.Token, expiresAt))
	slog.Info("User logged in", "user_id", loginResponse.User.ID)
	response.Success(w, loginResponse)
}

// Logout implements AuthHandler. The token itself stays valid until expiry;
// logout only clears the cookie.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, a.jwtService.ClearAuthTokenCookie())
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrTokenRequired)
		return
	}

	me, err := a.authService.Me(r.Context(), u.ID)
	if err != nil {
		slog.Error("Me service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, me)
}
